package main

import (
	"context"
	"log"

	"github.com/alexivanou/composer-atlas/internal/config"
	"github.com/alexivanou/composer-atlas/internal/database"
	"github.com/alexivanou/composer-atlas/internal/repository"
	"github.com/alexivanou/composer-atlas/internal/seeder"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))
	logger.Info("Starting data import...", zap.String("data_dir", cfg.Seeder.DataDir))

	repos := repository.NewRepositories(db, cfg.DB.Type, cfg.Seeder.BatchSize)
	s := seeder.NewSeeder(
		seeder.NewParser(cfg.Seeder),
		repos,
		database.NewMigrator(db, cfg.DB),
		cfg.Seeder.BcryptCost,
		logger,
	)

	result, err := s.Run(ctx)
	if err != nil {
		logger.Fatal("Data import failed", zap.Error(err))
	}

	logger.Info("Data import completed successfully!",
		zap.Int("users", result.Users),
		zap.Int("cities", result.Cities),
		zap.Int("composers", result.Composers),
		zap.Int("locations", result.Locations),
	)
}
