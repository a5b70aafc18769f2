package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jqwang17/MediaSearch-API/internal/adapters"
	"github.com/jqwang17/MediaSearch-API/internal/adapters/agedm"
	"github.com/jqwang17/MediaSearch-API/internal/adapters/douban"
	handler "github.com/jqwang17/MediaSearch-API/internal/adapters/http"
	"github.com/jqwang17/MediaSearch-API/internal/adapters/maoyan"
	"github.com/jqwang17/MediaSearch-API/internal/adapters/tmdb"
	"github.com/jqwang17/MediaSearch-API/internal/app"
	"github.com/jqwang17/MediaSearch-API/internal/config"

	_ "github.com/jqwang17/MediaSearch-API/docs"
)

// @title			MediaSearch API
// @version		1.0
// @description	Multi-source media metadata search aggregator. Queries TMDB,
// @description	Maoyan, and two scraped sites concurrently, merges records that
// @description	describe the same title, and returns one ranked, deduplicated list.

// @contact.name	MediaSearch API Support
// @license.name	MIT

// @host		localhost:8080
// @BasePath	/
func main() {
	cfg := config.Load()

	// Create provider adapters sharing one HTTP client
	httpClient := &http.Client{}
	tmdbProvider := tmdb.NewProvider(httpClient, cfg.TMDBToken)
	agedmProvider := agedm.NewProvider(httpClient)
	maoyanProvider := maoyan.NewProvider(httpClient)
	doubanProvider := douban.NewProvider(httpClient)

	// Register providers
	registry := adapters.NewProviderRegistry()
	registry.Register(tmdbProvider)
	registry.Register(agedmProvider)
	registry.Register(maoyanProvider)
	registry.Register(doubanProvider)

	// Create application service
	searchService := app.NewService(registry, cfg.BranchTimeout)

	// Setup HTTP server
	r := gin.Default()
	h := handler.NewHandler(searchService)
	h.RegisterRoutes(r)

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.TMDBToken == "" {
		log.Printf("TMDB_API_TOKEN not set, tmdb provider will return no results")
	}

	addr := ":" + cfg.Port
	log.Printf("Starting MediaSearch API on %s", addr)
	log.Printf("Branch timeout: %s", cfg.BranchTimeout)
	log.Printf("Registered providers: %v", registry.Available())
	log.Printf("Swagger UI: http://localhost%s/swagger/index.html", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
