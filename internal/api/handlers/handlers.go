package handlers

import (
	"pqcguard/internal/catalog"
	"pqcguard/internal/domain/services"
	"pqcguard/internal/infrastructure/archive"
	"pqcguard/internal/infrastructure/cache"
	"pqcguard/internal/infrastructure/database/repository"
	"pqcguard/internal/playbooks"
	"pqcguard/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health      *HealthHandler
	Assessments *AssessmentsHandler
	Controls    *ControlsHandler
	Playbooks   *PlaybooksHandler
	Assets      *AssetsHandler
}

// Dependencies holds dependencies for handlers. Repo and Archive may be nil;
// persistence and archival are best-effort and never fail a run.
type Dependencies struct {
	Engine    *services.Engine
	Inventory *services.Inventory
	Scorer    *services.Scorer
	Catalog   catalog.Catalog
	Registry  *playbooks.Registry
	Cache     *cache.RedisCache
	Repo      *repository.AssessmentRepository
	Archive   *archive.ReportArchive
	Logger    *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(deps.Cache, deps.Repo, deps.Logger),
		Assessments: NewAssessmentsHandler(deps.Engine, deps.Repo, deps.Archive, deps.Logger),
		Controls:    NewControlsHandler(deps.Catalog, deps.Logger),
		Playbooks:   NewPlaybooksHandler(deps.Registry, deps.Logger),
		Assets:      NewAssetsHandler(deps.Inventory, deps.Scorer, deps.Logger),
	}
}
