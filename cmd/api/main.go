package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/answers"
	"github.com/jobhunter/backend/internal/api"
	"github.com/jobhunter/backend/internal/api/middleware"
	"github.com/jobhunter/backend/internal/cache"
	"github.com/jobhunter/backend/internal/config"
	"github.com/jobhunter/backend/internal/discovery"
	"github.com/jobhunter/backend/internal/extract"
	"github.com/jobhunter/backend/internal/fetch"
	"github.com/jobhunter/backend/internal/sources"
	"github.com/jobhunter/backend/internal/store"
	"github.com/jobhunter/backend/pkg/logger"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Server.Debug)
	defer logger.Sync()

	logger.Info("Starting JobHunter Discovery API",
		zap.Bool("debug", cfg.Server.Debug),
		zap.Bool("browser", cfg.Fetch.BrowserEnabled),
	)

	log := logger.Get()

	// Core pipeline
	registry := sources.NewRegistry()
	selector := sources.NewSelector(registry, sources.SelectorConfig{
		MaxSourcesPerGroup: cfg.Discovery.MaxSourcesPerGroup,
		MaxGroups:          cfg.Discovery.MaxGroups,
	})
	fetcher := fetch.New(cfg.Fetch, log.Named("fetch"))
	extractor := extract.New(log.Named("extract"))

	var renderer discovery.Renderer
	if cfg.Fetch.BrowserEnabled {
		browser, err := fetch.NewBrowser(cfg.Fetch, log.Named("browser"))
		if err != nil {
			logger.Warn("Browser unavailable, rendered sources will use plain HTTP", zap.Error(err))
		} else {
			defer browser.Close()
			renderer = browser
		}
	}

	svc := discovery.New(selector, fetcher, renderer, extractor, cfg.Discovery, log.Named("discovery"))

	deps := &api.Dependencies{
		Discovery: svc,
		Registry:  registry,
		Logger:    log.Named("api"),
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Optional result cache
	if cfg.Cache.Enabled {
		resultCache, err := cache.New(startupCtx, cfg.Cache.RedisURL, cfg.Cache.TTL, log.Named("cache"))
		if err != nil {
			logger.Warn("Cache unavailable, continuing without it", zap.Error(err))
		} else {
			defer resultCache.Close()
			deps.Cache = resultCache
		}
	}

	// Optional job store
	if cfg.Store.Enabled {
		jobStore, err := store.New(startupCtx, cfg.Store.DatabaseURL, log.Named("store"))
		if err != nil {
			logger.Warn("Job store unavailable, continuing without it", zap.Error(err))
		} else {
			defer jobStore.Close()
			deps.Store = jobStore
		}
	}

	// Optional answer drafting
	drafter, err := answers.New(cfg.LLM, log.Named("answers"))
	switch {
	case errors.Is(err, answers.ErrNotConfigured):
		logger.Info("Answer drafting disabled, no API key configured")
	case err != nil:
		logger.Warn("Answer drafting unavailable", zap.Error(err))
	default:
		deps.Drafter = drafter
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:               "JobHunter Discovery API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		DisableStartupMessage: !cfg.Server.Debug,
		ErrorHandler:          errorHandler,
	})

	middleware.Setup(app, cfg)
	jobsHandler := api.SetupRoutes(app, cfg, deps)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Shutting down gracefully...")
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", zap.String("address", addr))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("Server failed to start", zap.Error(err))
	}

	// Listen returns once Shutdown completes. Let in-flight background
	// persists finish before the store connection goes away.
	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := jobsHandler.Drain(drainCtx); err != nil {
		logger.Warn("Background persists not drained", zap.Error(err))
	}
}

// errorHandler handles errors globally
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	logger.Error("Request error",
		zap.Int("status", code),
		zap.String("path", c.Path()),
		zap.Error(err),
	)

	return c.Status(code).JSON(fiber.Map{
		"error":   "request_failed",
		"message": message,
		"path":    c.Path(),
	})
}
