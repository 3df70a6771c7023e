package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pqcguard/internal/api/handlers"
	apimiddleware "pqcguard/internal/api/middleware"
	"pqcguard/internal/config"
	"pqcguard/internal/infrastructure/cache"
	"pqcguard/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(120 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Public routes
	router.Group(func(pub chi.Router) {
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)
	})

	// API v1 routes (authenticated)
	router.Route("/api/v1", func(api chi.Router) {
		api.Use(apimiddleware.APIKeyAuth(r.config.API.Key))

		api.Route("/assessments", func(assess chi.Router) {
			assess.Post("/analyze", r.handlers.Assessments.Analyze)
			assess.Post("/run", r.handlers.Assessments.Run)
			assess.Get("/", r.handlers.Assessments.List)
			assess.Get("/{id}", r.handlers.Assessments.Get)
		})

		api.Route("/controls", func(controls chi.Router) {
			controls.Get("/", r.handlers.Controls.List)
			controls.Get("/{id}", r.handlers.Controls.Get)
		})

		api.Get("/playbooks", r.handlers.Playbooks.List)

		api.Route("/assets", func(assets chi.Router) {
			assets.Post("/extract", r.handlers.Assets.Extract)
			assets.Post("/score", r.handlers.Assets.Score)
			assets.Get("/algorithms", r.handlers.Assets.Algorithms)
		})
	})

	return router
}
