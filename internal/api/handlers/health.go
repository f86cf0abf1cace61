package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobhunter/backend/internal/config"
)

const version = "1.0.0"

// Probes reports the availability of optional backends.
type Probes struct {
	CacheEnabled bool
	StoreEnabled bool
	LLMEnabled   bool
}

// HealthCheck returns the health status
func HealthCheck(probes Probes) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := func(enabled bool) string {
			if enabled {
				return "healthy"
			}
			return "disabled"
		}
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": version,
			"cache":   status(probes.CacheEnabled),
			"store":   status(probes.StoreEnabled),
			"llm":     status(probes.LLMEnabled),
		})
	}
}

// ReadinessCheck returns whether the service is ready to accept traffic.
// Discovery works without cache, store, or LLM, so readiness only needs
// the pipeline itself.
func ReadinessCheck(service DiscoveryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if service == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not_ready",
				"reason": "Discovery pipeline not initialized",
			})
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}

// Root returns basic API info
func Root(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "JobHunter Discovery API",
			"version": version,
			"health":  "/health",
			"ready":   "/ready",
		})
	}
}
