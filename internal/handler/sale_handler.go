package handler

import (
	"net/http"

	"veggie-market/internal/model"
	"veggie-market/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SaleHandler handles sale-related HTTP requests.
type SaleHandler struct {
	service service.SaleService
	logger  zerolog.Logger
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(service service.SaleService, logger zerolog.Logger) *SaleHandler {
	return &SaleHandler{
		service: service,
		logger:  logger.With().Str("handler", "sale").Logger(),
	}
}

// Register handles POST /api/sales requests.
func (h *SaleHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.SaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	sale, err := h.service.RegisterSale(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to register sale", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, sale)
}

// FindAll handles GET /api/sales requests.
func (h *SaleHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.FindAll(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve sales", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sales)
}

// FindByID handles GET /api/sales/{id} requests.
func (h *SaleHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	sale, err := h.service.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve sale", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}
