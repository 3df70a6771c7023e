package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pqcguard/internal/domain/services"
	"pqcguard/internal/infrastructure/archive"
	"pqcguard/internal/infrastructure/database/repository"
	"pqcguard/pkg/logger"
)

// AssessmentsHandler handles assessment pipeline endpoints
type AssessmentsHandler struct {
	engine  *services.Engine
	repo    *repository.AssessmentRepository
	archive *archive.ReportArchive
	logger  *logger.Logger
}

// NewAssessmentsHandler creates a new AssessmentsHandler
func NewAssessmentsHandler(engine *services.Engine, repo *repository.AssessmentRepository, arch *archive.ReportArchive, log *logger.Logger) *AssessmentsHandler {
	return &AssessmentsHandler{
		engine:  engine,
		repo:    repo,
		archive: arch,
		logger:  log.WithComponent("assessments-handler"),
	}
}

// AssessmentRequest is the request body for analyze and run.
type AssessmentRequest struct {
	Scenario     string `json:"scenario"`
	Organization string `json:"organization,omitempty"`
	Title        string `json:"title,omitempty"`
}

// Analyze handles POST /api/v1/assessments/analyze. It runs the pipeline up
// to the assessment plan without executing playbooks.
func (h *AssessmentsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	run, err := h.engine.Analyze(r.Context(), req.Scenario)
	if err != nil {
		if errors.Is(err, services.ErrEmptyScenario) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("analysis failed")
		respondError(w, http.StatusBadGateway, "analysis failed: "+err.Error())
		return
	}

	h.persist(r, run.ID, func() error { return h.repo.Save(r.Context(), run) })
	respondJSON(w, http.StatusOK, run)
}

// Run handles POST /api/v1/assessments/run: the full pipeline including
// playbook execution, OSCAL results, and the auditor report.
func (h *AssessmentsHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	run, err := h.engine.Run(r.Context(), req.Scenario, services.ReportOptions{
		Title:        req.Title,
		Organization: req.Organization,
	})
	if err != nil {
		// Persist failed runs too; their terminal state is part of the record.
		h.persist(r, run.ID, func() error { return h.repo.Save(r.Context(), run) })
		if errors.Is(err, services.ErrEmptyScenario) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("run_id", run.ID).Msg("assessment run failed")
		respondError(w, http.StatusBadGateway, "assessment run failed: "+err.Error())
		return
	}

	h.persist(r, run.ID, func() error { return h.repo.Save(r.Context(), run) })

	if h.archive != nil {
		if _, err := h.archive.StoreRun(r.Context(), run); err != nil {
			h.logger.Warn().Err(err).Str("run_id", run.ID).Msg("failed to archive run")
		}
		if run.Report != nil {
			if _, err := h.archive.StoreReport(r.Context(), run.ID, *run.Report); err != nil {
				h.logger.Warn().Err(err).Str("run_id", run.ID).Msg("failed to archive report")
			}
		}
	}

	respondJSON(w, http.StatusOK, run)
}

// List handles GET /api/v1/assessments
func (h *AssessmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	runs, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list runs")
		respondError(w, http.StatusInternalServerError, "failed to list assessment runs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}

// Get handles GET /api/v1/assessments/{id}
func (h *AssessmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	id := chi.URLParam(r, "id")
	run, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			respondError(w, http.StatusNotFound, "assessment run not found")
			return
		}
		h.logger.Error().Err(err).Str("run_id", id).Msg("failed to fetch run")
		respondError(w, http.StatusInternalServerError, "failed to fetch assessment run")
		return
	}

	respondJSON(w, http.StatusOK, run)
}

// persist saves best-effort: a storage failure is logged, never surfaced.
func (h *AssessmentsHandler) persist(r *http.Request, runID string, save func() error) {
	if h.repo == nil {
		return
	}
	if err := save(); err != nil {
		h.logger.Warn().Err(err).Str("run_id", runID).Msg("failed to persist run")
	}
}
