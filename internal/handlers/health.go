package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger   *slog.Logger
	instance string
}

// NewHealthHandler creates a new health handler with a per-process instance ID
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:   logger,
		instance: uuid.New().String(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Instance  string    `json:"instance"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Instance:  h.instance,
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
