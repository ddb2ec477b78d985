package handler

import (
	"net/http"

	"veggie-market/internal/model"
	"veggie-market/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// VegetableHandler handles vegetable-related HTTP requests.
type VegetableHandler struct {
	service service.VegetableService
	logger  zerolog.Logger
}

// NewVegetableHandler creates a new vegetable handler.
func NewVegetableHandler(service service.VegetableService, logger zerolog.Logger) *VegetableHandler {
	return &VegetableHandler{
		service: service,
		logger:  logger.With().Str("handler", "vegetable").Logger(),
	}
}

// FindAll handles GET /api/vegetables requests.
func (h *VegetableHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	vegetables, err := h.service.FindAll(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve vegetables", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vegetables)
}

// Register handles POST /api/vegetables requests.
func (h *VegetableHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.UpsertVegetableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	vegetable, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to register vegetable", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, vegetable)
}

// FindByID handles GET /api/vegetables/{id} requests.
func (h *VegetableHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	vegetable, err := h.service.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve vegetable", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vegetable)
}

// Update handles PUT /api/vegetables/{id} requests.
func (h *VegetableHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpsertVegetableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	vegetable, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, err, "failed to update vegetable", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vegetable)
}

// PartialUpdate handles PATCH /api/vegetables/{id} requests.
func (h *VegetableHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.PartialVegetableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, "invalid request body", h.logger)
		return
	}

	vegetable, err := h.service.PartialUpdate(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, err, "failed to update vegetable", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vegetable)
}

// Delete handles DELETE /api/vegetables/{id} requests.
// Deleting a vegetable that does not exist responds 404.
func (h *VegetableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	affected, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "failed to delete vegetable", h.logger)
		return
	}

	if affected == 0 {
		writeServiceError(w, model.ErrVegetableNotFound, "vegetable not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteResponse{RowsAffected: affected})
}
