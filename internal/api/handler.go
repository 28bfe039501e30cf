package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexivanou/composer-atlas/internal/service"
	"github.com/alexivanou/composer-atlas/internal/validation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler handles JSON API requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields validation.Errors `json:"fields,omitempty"`
}

// ListComposers handles GET /api/v1/composers
func (h *Handler) ListComposers(w http.ResponseWriter, r *http.Request) {
	composers, err := h.service.ListComposers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"composers": composers,
		"count":     len(composers),
	})
}

// GetComposer handles GET /api/v1/composers/{id}
func (h *Handler) GetComposer(w http.ResponseWriter, r *http.Request) {
	composer, err := h.service.GetComposerByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, composer)
}

// ListComposerLocations handles GET /api/v1/composers/{id}/locations
func (h *Handler) ListComposerLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.ListLocationsByComposer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"locations": locations,
		"count":     len(locations),
	})
}

// ListCities handles GET /api/v1/cities
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.ListCities(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"cities": cities,
		"count":  len(cities),
	})
}

// CreateCity handles POST /api/v1/cities (form encoded)
func (h *Handler) CreateCity(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid form body"})
		return
	}

	city, err := h.service.AddCity(r.Context(), r.PostForm)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, city)
}

// CreateLocation handles POST /api/v1/locations (form encoded)
func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid form body"})
		return
	}

	location, err := h.service.AddLocation(r.Context(), r.PostForm)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, location)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// writeServiceError maps service errors to status codes. Store faults are
// already logged by the service and only surface as a generic message.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		h.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: verrs})
	case errors.Is(err, service.ErrComposerNotFound):
		h.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "composer not found"})
	default:
		h.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.String("request_id", RequestIDFromContext(r.Context())), zap.Error(err))
		h.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error encoding response", zap.String("path", r.URL.Path), zap.Error(err))
	}
}
