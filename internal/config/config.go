package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port          string
	TMDBToken     string
	BranchTimeout time.Duration
	LogLevel      string
}

// Load reads configuration from .env file (if present) and environment
// variables. A missing TMDB token is not fatal: the TMDB adapter degrades to
// returning no results.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	seconds, err := strconv.Atoi(getEnv("SEARCH_TIMEOUT_SECONDS", "8"))
	if err != nil || seconds < 1 {
		seconds = 8
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		TMDBToken:     getEnv("TMDB_API_TOKEN", ""),
		BranchTimeout: time.Duration(seconds) * time.Second,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
