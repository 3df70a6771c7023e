package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pqcguard/internal/api"
	"pqcguard/internal/api/handlers"
	"pqcguard/internal/catalog"
	"pqcguard/internal/config"
	"pqcguard/internal/domain/services"
	"pqcguard/internal/executor"
	"pqcguard/internal/infrastructure/archive"
	"pqcguard/internal/infrastructure/cache"
	"pqcguard/internal/infrastructure/database"
	"pqcguard/internal/infrastructure/database/repository"
	"pqcguard/internal/playbooks"
	"pqcguard/pkg/logger"
)

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("starting pqcguard")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure (degrades gracefully when unavailable)
	db, redisCache := initInfrastructure(ctx, cfg, log)
	if db != nil {
		defer db.Close()
	}
	if redisCache != nil {
		defer redisCache.Close()
	}

	// Control catalog
	cat, err := buildCatalog(cfg, redisCache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize control catalog")
	}

	// Playbook registry
	registry := playbooks.NewDefault(log)
	if cfg.Playbooks.ManifestPath != "" {
		registry = playbooks.NewRegistry(log)
		if err := registry.LoadManifest(cfg.Playbooks.ManifestPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.Playbooks.ManifestPath).Msg("failed to load playbook manifest")
		}
	}
	log.Info().Int("playbooks", registry.Len()).Msg("playbook registry ready")

	// Domain services
	classifier := services.NewClassifier(log)
	resolver := services.NewResolver(cat, registry, log)
	inventory := services.NewInventory(log)
	scorer := services.NewScorer(cfg.Scoring, log)
	roadmap := services.NewRoadmapBuilder(log)
	documents := services.NewDocumentBuilder(cfg.Catalog.ProfileHref, log)
	reporter := services.NewReporter(log)
	exec := executor.NewHTTP(cfg.Executor, log)

	engine := services.NewEngine(
		classifier,
		resolver,
		inventory,
		scorer,
		roadmap,
		documents,
		reporter,
		registry,
		exec,
		log,
	)

	// Persistence (optional)
	var repo *repository.AssessmentRepository
	if db != nil {
		repo = repository.NewAssessmentRepository(db.Pool(), log)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure assessment schema, continuing without persistence")
			repo = nil
		}
	}

	// Report archive (optional)
	var reportArchive *archive.ReportArchive
	if cfg.Archive.Enabled {
		reportArchive, err = archive.NewMinio(ctx, cfg.Archive, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to report archive, continuing without archival")
			reportArchive = nil
		}
	}

	h := handlers.NewHandlers(handlers.Dependencies{
		Engine:    engine,
		Inventory: inventory,
		Scorer:    scorer,
		Catalog:   cat,
		Registry:  registry,
		Cache:     redisCache,
		Repo:      repo,
		Archive:   reportArchive,
		Logger:    log,
	})

	router := api.NewRouter(*cfg, h, redisCache, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// initInfrastructure connects to PostgreSQL and Redis. Both are optional:
// the engine runs stateless without them, so a connection failure is logged
// and the server continues with the corresponding feature disabled.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache) {
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without persistence")
		db = nil
	}

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache and rate limiting")
		redisCache = nil
	}

	return db, redisCache
}

// buildCatalog assembles the control catalog: an OSCAL catalog file when
// configured, the built-in NIST 800-53 subset otherwise, with a Redis
// read-through layer when a cache connection is available.
func buildCatalog(cfg *config.Config, redisCache *cache.RedisCache, log *logger.Logger) (catalog.Catalog, error) {
	var cat catalog.Catalog
	if cfg.Catalog.Path != "" {
		fileCat, err := catalog.NewFromFile(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog from %s: %w", cfg.Catalog.Path, err)
		}
		log.Info().Str("path", cfg.Catalog.Path).Msg("loaded OSCAL control catalog")
		cat = fileCat
	} else {
		cat = catalog.NewStatic()
		log.Info().Msg("using built-in control catalog")
	}

	if redisCache != nil {
		cat = catalog.NewCached(cat, redisCache, cfg.Catalog.CacheTTL, log)
	}

	return cat, nil
}
