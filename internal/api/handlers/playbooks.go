package handlers

import (
	"net/http"

	"pqcguard/internal/playbooks"
	"pqcguard/pkg/logger"
)

// PlaybooksHandler serves the playbook registry
type PlaybooksHandler struct {
	registry *playbooks.Registry
	logger   *logger.Logger
}

// NewPlaybooksHandler creates a new PlaybooksHandler
func NewPlaybooksHandler(registry *playbooks.Registry, log *logger.Logger) *PlaybooksHandler {
	return &PlaybooksHandler{
		registry: registry,
		logger:   log.WithComponent("playbooks-handler"),
	}
}

// List handles GET /api/v1/playbooks
func (h *PlaybooksHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.registry.List()
	respondJSON(w, http.StatusOK, map[string]any{
		"playbooks": list,
		"count":     len(list),
	})
}
