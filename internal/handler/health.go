package handler

import (
	"net/http"

	"github.com/rs/zerolog"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	logger zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		logger: logger.With().Str("handler", "health").Logger(),
	}
}

// ServeHTTP handles GET /health-check requests.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		h.logger.Error().Err(err).Msg("failed to write health response")
	}
}
