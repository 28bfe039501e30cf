package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/alexivanou/composer-atlas/internal/seeder"
	"go.uber.org/zap"
)

// SeedRunner performs a full import
type SeedRunner interface {
	Run(ctx context.Context) (*seeder.Result, error)
}

// SeedHandler exposes the one-off import
type SeedHandler struct {
	runner  SeedRunner
	enabled bool
	logger  *zap.Logger
}

// NewSeedHandler creates a seed handler. With enabled false the endpoint only
// answers with a guard message.
func NewSeedHandler(runner SeedRunner, enabled bool, logger *zap.Logger) *SeedHandler {
	return &SeedHandler{runner: runner, enabled: enabled, logger: logger}
}

// Seed handles GET /seed
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if !h.enabled || h.runner == nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Seeding is disabled. Set SEED_ENABLED=true to run the import.",
		})
		return
	}

	result, err := h.runner.Run(r.Context())
	if err != nil {
		h.logger.Error("Seeding failed", zap.Error(err))
		http.Error(w, "seeding failed", http.StatusInternalServerError)
		return
	}
	h.logger.Info("Database seeded",
		zap.Int("users", result.Users),
		zap.Int("cities", result.Cities),
		zap.Int("composers", result.Composers),
		zap.Int("locations", result.Locations),
	)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Database seeded successfully",
		"result":  result,
	}); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
	}
}
