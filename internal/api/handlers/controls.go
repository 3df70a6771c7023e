package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pqcguard/internal/catalog"
	"pqcguard/pkg/logger"
)

// ControlsHandler serves catalog lookups
type ControlsHandler struct {
	catalog catalog.Catalog
	logger  *logger.Logger
}

// NewControlsHandler creates a new ControlsHandler
func NewControlsHandler(cat catalog.Catalog, log *logger.Logger) *ControlsHandler {
	return &ControlsHandler{
		catalog: cat,
		logger:  log.WithComponent("controls-handler"),
	}
}

// List handles GET /api/v1/controls
func (h *ControlsHandler) List(w http.ResponseWriter, r *http.Request) {
	controls, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list controls")
		respondError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"controls": controls,
		"count":    len(controls),
	})
}

// Get handles GET /api/v1/controls/{id}
func (h *ControlsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	control, err := h.catalog.Lookup(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "control not found")
			return
		}
		h.logger.Error().Err(err).Str("control_id", id).Msg("catalog lookup failed")
		respondError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	respondJSON(w, http.StatusOK, control)
}
