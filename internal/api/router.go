package api

import (
	"context"
	"net/http"

	"github.com/alexivanou/composer-atlas/internal/service"
	"github.com/alexivanou/composer-atlas/internal/stats"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger reports whether the store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options carries the collaborators of the router
type Options struct {
	Service     service.ServiceInterface
	Stats       *stats.Collector
	Seeder      SeedRunner
	SeedEnabled bool
	DB          Pinger
	Logger      *zap.Logger
}

// NewRouter creates a new HTTP router
func NewRouter(opts Options) (*mux.Router, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := NewHandler(opts.Service, logger)
	pageHandler, err := NewPageHandler(opts.Service, logger)
	if err != nil {
		return nil, err
	}
	seedHandler := NewSeedHandler(opts.Seeder, opts.SeedEnabled, logger)

	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, LoggingMiddleware(logger), MetricsMiddleware)

	// Operations
	router.HandleFunc("/health", healthCheck(opts.DB, handler)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/seed", seedHandler.Seed).Methods("GET")

	// Pages
	router.HandleFunc("/", pageHandler.Home).Methods("GET")
	router.HandleFunc("/database", pageHandler.Composers).Methods("GET")
	router.HandleFunc("/database/composer/{id}", pageHandler.Composer).Methods("GET")
	router.HandleFunc("/database/composer/{id}/locations", pageHandler.AddLocation).Methods("POST")
	router.HandleFunc("/database/city/add/{redirect}", pageHandler.AddCityForm).Methods("GET")
	router.HandleFunc("/database/city/add/{redirect}", pageHandler.AddCity).Methods("POST")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/composers", handler.ListComposers).Methods("GET")
	v1.HandleFunc("/composers/{id}", handler.GetComposer).Methods("GET")
	v1.HandleFunc("/composers/{id}/locations", handler.ListComposerLocations).Methods("GET")
	v1.HandleFunc("/cities", handler.ListCities).Methods("GET")
	v1.HandleFunc("/cities", handler.CreateCity).Methods("POST")
	v1.HandleFunc("/locations", handler.CreateLocation).Methods("POST")
	if opts.Stats != nil {
		statsHandler := NewStatsHandler(opts.Stats, logger)
		v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	}

	return router, nil
}

// healthCheck answers 503 when the store cannot be reached
func healthCheck(db Pinger, handler *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				handler.logger.Warn("Health check failed", zap.Error(err))
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		handler.HealthCheck(w, r)
	}
}
