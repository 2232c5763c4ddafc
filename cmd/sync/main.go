// Command sync performs one full-market listing sync into assets_master.
// It is intended to run on a daily schedule (cron or CI job).
package main

import (
	"context"
	"fmt"
	"os"

	"wondex/internal/collector"
	"wondex/internal/config"
	"wondex/internal/database"
	"wondex/internal/logger"
	"wondex/internal/provider"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Sync error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.DataGoKrServiceKey == "" {
		return fmt.Errorf("DATA_GO_KR_API_KEY is required")
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	listings := provider.NewListingsClient(nil, appConfig.DataGoKrServiceKey)
	c := collector.New(listings, dbManager.DB())

	result, err := c.Run(context.Background())
	if err != nil {
		return err
	}

	log.Infow("sync complete",
		"latest_date", result.LatestDate,
		"collected", result.Collected,
		"upserted", result.Upserted,
		"duration", result.Duration.String(),
	)
	for _, market := range result.SortedMarkets() {
		log.Infof("  %s: %d instruments", market, result.ByMarket[market])
	}
	return nil
}
