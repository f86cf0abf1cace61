package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/api/handlers"
	"github.com/jobhunter/backend/internal/config"
	"github.com/jobhunter/backend/internal/sources"
)

// Dependencies holds the wired services the handlers need. Cache, Store,
// and Drafter are optional and may be left nil.
type Dependencies struct {
	Discovery handlers.DiscoveryService
	Cache     handlers.ResultCache
	Store     handlers.JobStore
	Drafter   handlers.AnswerDrafter
	Registry  *sources.Registry
	Logger    *zap.Logger
}

// SetupRoutes configures all API routes. The jobs handler is returned so
// the caller can drain its background persists on shutdown.
func SetupRoutes(app *fiber.App, cfg *config.Config, deps *Dependencies) *handlers.JobsHandler {
	// Health check routes (no prefix)
	app.Get("/health", handlers.HealthCheck(handlers.Probes{
		CacheEnabled: deps.Cache != nil,
		StoreEnabled: deps.Store != nil,
		LLMEnabled:   deps.Drafter != nil && deps.Drafter.Available(),
	}))
	app.Get("/ready", handlers.ReadinessCheck(deps.Discovery))
	app.Get("/", handlers.Root(cfg))

	// API routes
	api := app.Group("/api")

	// Job discovery routes
	jobs := api.Group("/jobs")
	jobsHandler := handlers.NewJobsHandler(deps.Discovery, deps.Cache, deps.Store, deps.Registry, deps.Logger)
	jobs.Post("/discover", jobsHandler.Discover)
	jobs.Get("/categories", jobsHandler.Categories)
	jobs.Get("/countries", jobsHandler.Countries)
	jobs.Get("/sources/stats", jobsHandler.SourceStats)

	// Application answer routes
	answersGroup := api.Group("/answers")
	answersHandler := handlers.NewAnswersHandler(deps.Drafter)
	answersGroup.Post("/generate", answersHandler.Generate)

	return jobsHandler
}
