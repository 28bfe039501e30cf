package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/composer-atlas/internal/api"
	"github.com/alexivanou/composer-atlas/internal/config"
	"github.com/alexivanou/composer-atlas/internal/database"
	"github.com/alexivanou/composer-atlas/internal/repository"
	"github.com/alexivanou/composer-atlas/internal/seeder"
	"github.com/alexivanou/composer-atlas/internal/service"
	"github.com/alexivanou/composer-atlas/internal/stats"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

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

	migrator := database.NewMigrator(db, cfg.DB)
	if err := migrator.Up(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := repository.NewRepositories(db, cfg.DB.Type, cfg.Seeder.BatchSize)
	parser := seeder.NewParser(cfg.Seeder)
	dataSeeder := seeder.NewSeeder(parser, repos, migrator, cfg.Seeder.BcryptCost, logger)

	if cfg.Seeder.OnStart {
		isEmpty, err := repository.IsDatabaseEmpty(ctx, db)
		if err != nil {
			logger.Warn("Failed to check if database is empty", zap.Error(err))
		} else if isEmpty {
			logger.Info("Database is empty, auto-seeding data...")
			result, err := dataSeeder.Run(ctx)
			if err != nil {
				// A missing export should not keep the app from serving
				logger.Error("Failed to auto-seed database", zap.Error(err))
			} else {
				logger.Info("Database seeded successfully",
					zap.Int("cities", result.Cities),
					zap.Int("composers", result.Composers),
					zap.Int("locations", result.Locations),
				)
			}
		}
	}

	svc := service.NewService(repos.Composer, repos.City, repos.Location, logger)
	router, err := api.NewRouter(api.Options{
		Service:     svc,
		Stats:       stats.NewCollector(db, cfg.DB),
		Seeder:      dataSeeder,
		SeedEnabled: cfg.Seeder.Enabled,
		DB:          db,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
