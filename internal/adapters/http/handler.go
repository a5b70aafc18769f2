package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jqwang17/MediaSearch-API/internal/domain"
	"github.com/jqwang17/MediaSearch-API/internal/ports"
)

// Handler holds the HTTP handlers for the search API.
type Handler struct {
	service ports.SearchService
}

// NewHandler creates a new HTTP handler with the given search service.
func NewHandler(service ports.SearchService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up all API routes on the given Gin engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(corsMiddleware())

	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		api.POST("/search", h.Search)
	}
}

// Health returns a simple health check response.
//
//	@Summary		Health check
//	@Description	Returns the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Search runs an aggregated media search across the configured providers.
//
//	@Summary		Aggregated media search
//	@Description	Queries every provider selected by the type hint concurrently, merges records
//	@Description	describing the same title across sources, and returns one deduplicated list
//	@Description	ranked by relevance to the query. A single provider outage degrades the result
//	@Description	set instead of failing the request.
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			request	body		domain.SearchRequest	true	"Search query and type hint (anime, movie, or anything else for all providers)"
//	@Success		200		{object}	domain.SearchResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/v1/search [post]
func (h *Handler) Search(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "query is required",
		})
		return
	}

	results, err := h.service.Search(c.Request.Context(), query, req.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, domain.SearchResponse{Results: results})
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// corsMiddleware permits cross-origin requests from any origin. Pre-flight
// OPTIONS requests are acknowledged with a bare 200.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
