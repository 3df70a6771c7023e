package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"pqcguard/internal/domain/models"
	"pqcguard/internal/domain/services"
	"pqcguard/pkg/logger"
)

// AssetsHandler serves asset extraction, scoring, and algorithm reference data
type AssetsHandler struct {
	inventory *services.Inventory
	scorer    *services.Scorer
	logger    *logger.Logger
}

// NewAssetsHandler creates a new AssetsHandler
func NewAssetsHandler(inventory *services.Inventory, scorer *services.Scorer, log *logger.Logger) *AssetsHandler {
	return &AssetsHandler{
		inventory: inventory,
		scorer:    scorer,
		logger:    log.WithComponent("assets-handler"),
	}
}

// ExtractRequest is the request body for asset extraction.
type ExtractRequest struct {
	Scenario string `json:"scenario"`
}

// Extract handles POST /api/v1/assets/extract
func (h *AssetsHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Scenario == "" {
		respondError(w, http.StatusBadRequest, "scenario is required")
		return
	}

	now := time.Now().UTC()
	assets := h.inventory.ExtractAssets(req.Scenario, now)
	inventory := h.inventory.BuildComponentInventory(assets, now)

	respondJSON(w, http.StatusOK, map[string]any{
		"assets":    assets,
		"inventory": inventory,
	})
}

// ScoreRequest is the request body for asset scoring.
type ScoreRequest struct {
	Assets []models.Asset `json:"assets"`
}

// Score handles POST /api/v1/assets/score
func (h *AssetsHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assessment := h.scorer.Assess(req.Assets, time.Now().UTC())
	respondJSON(w, http.StatusOK, assessment)
}

// Algorithms handles GET /api/v1/assets/algorithms
func (h *AssetsHandler) Algorithms(w http.ResponseWriter, r *http.Request) {
	profiles := h.inventory.AlgorithmProfiles()
	respondJSON(w, http.StatusOK, map[string]any{
		"algorithms": profiles,
		"count":      len(profiles),
	})
}
