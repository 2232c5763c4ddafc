package main

import (
	"fmt"
	"net/http"
	"os"

	"wondex/internal/config"
	"wondex/internal/database"
	"wondex/internal/dividend"
	"wondex/internal/handlers"
	"wondex/internal/logger"
	"wondex/internal/middleware"
	"wondex/internal/provider"
	"wondex/internal/services"
	"wondex/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize providers. A nil http.Client gives each one its own with
	// the right timeout.
	quotes := provider.NewQuoteClient(nil)
	scraper := provider.NewScraper(nil)
	dividendAPI := provider.NewDividendClient(nil, appConfig.DataGoKrServiceKey)
	resolver := dividend.NewResolver(dividendAPI, scraper)

	// Initialize services
	assetService := services.NewAssetService(dbManager.DB(), quotes, scraper, resolver, appConfig.CacheTTL)

	// Initialize handlers
	assetHandler := handlers.NewAssetHandler(assetService)

	// Register custom validations
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")
	v1.GET("/assets", assetHandler.ListAssets)
	v1.GET("/assets/:ticker", assetHandler.GetAsset)
	v1.GET("/assets/:ticker/price-history", assetHandler.GetPriceHistory)
	v1.GET("/assets/:ticker/holdings", assetHandler.GetHoldings)
	v1.GET("/dividend/:ticker", assetHandler.GetDividend)
	v1.GET("/search", assetHandler.Search)

	log.Infof("Starting server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
