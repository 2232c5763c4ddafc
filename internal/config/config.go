// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// data.go.kr open-data portal credential. Optional for the API server
	// (quotes come from the polling source), required for cmd/sync.
	DataGoKrServiceKey string

	// Asset list cache TTL
	CacheTTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "wondex"),
		DBPassword: getEnv("DB_PASSWORD", "wondex"),
		DBName:     getEnv("DB_NAME", "wondex"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		DataGoKrServiceKey: os.Getenv("DATA_GO_KR_API_KEY"),
	}

	// Parse cache TTL
	ttlStr := getEnv("ASSET_CACHE_TTL", "5m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid ASSET_CACHE_TTL value '%s', falling back to 5m\n", ttlStr)
		ttl = 5 * time.Minute
	}
	config.CacheTTL = ttl

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
