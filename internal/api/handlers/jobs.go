package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/domain"
	"github.com/jobhunter/backend/internal/sources"
)

// DiscoveryService runs a discovery pipeline pass.
type DiscoveryService interface {
	Discover(ctx context.Context, prefs domain.SearchPreferences) domain.DiscoveryResult
}

// ResultCache caches discovery results. Optional dependency.
type ResultCache interface {
	Get(ctx context.Context, prefs domain.SearchPreferences) (domain.DiscoveryResult, bool)
	Put(ctx context.Context, prefs domain.SearchPreferences, result domain.DiscoveryResult)
}

// JobStore persists discovered jobs. Optional dependency.
type JobStore interface {
	SaveJobs(ctx context.Context, records []domain.JobRecord) (int, error)
}

// JobsHandler handles job discovery API requests.
type JobsHandler struct {
	service  DiscoveryService
	cache    ResultCache
	store    JobStore
	registry *sources.Registry
	logger   *zap.Logger

	// persists tracks in-flight background writes so shutdown can
	// drain them instead of dropping them.
	persists sync.WaitGroup
}

// NewJobsHandler creates a new jobs handler. Cache and store may be nil.
func NewJobsHandler(service DiscoveryService, cache ResultCache, store JobStore, registry *sources.Registry, logger *zap.Logger) *JobsHandler {
	return &JobsHandler{
		service:  service,
		cache:    cache,
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// Discover handles POST /api/jobs/discover
func (h *JobsHandler) Discover(c *fiber.Ctx) error {
	var prefs domain.SearchPreferences
	if err := c.BodyParser(&prefs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": "Invalid request body",
		})
	}

	if prefs.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": "Job title is required",
		})
	}

	if h.cache != nil {
		if result, ok := h.cache.Get(c.Context(), prefs); ok {
			return c.JSON(result)
		}
	}

	result := h.service.Discover(c.Context(), prefs)

	if h.cache != nil {
		h.cache.Put(c.Context(), prefs, result)
	}
	if h.store != nil && !result.Synthetic && len(result.Jobs) > 0 {
		h.persists.Add(1)
		go h.persist(result.Jobs)
	}

	return c.JSON(result)
}

// Drain blocks until in-flight background persists finish or the context
// expires. Called from the shutdown path.
func (h *JobsHandler) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.persists.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// persist writes results in the background so the response is not held
// up by the database.
func (h *JobsHandler) persist(records []domain.JobRecord) {
	defer h.persists.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	inserted, err := h.store.SaveJobs(ctx, records)
	if err != nil {
		h.logger.Warn("persisting discovered jobs failed", zap.Error(err))
		return
	}
	h.logger.Debug("discovered jobs persisted", zap.Int("inserted", inserted))
}

// Categories handles GET /api/jobs/categories
func (h *JobsHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": h.registry.AllCategories(),
	})
}

// Countries handles GET /api/jobs/countries
func (h *JobsHandler) Countries(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"countries": h.registry.AllCountries(),
	})
}

// SourceStats handles GET /api/jobs/sources/stats
func (h *JobsHandler) SourceStats(c *fiber.Ctx) error {
	return c.JSON(h.registry.Stats())
}
