package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/domain"
	"github.com/jobhunter/backend/internal/sources"
)

type stubDiscovery struct {
	result domain.DiscoveryResult
	calls  int
}

func (s *stubDiscovery) Discover(_ context.Context, _ domain.SearchPreferences) domain.DiscoveryResult {
	s.calls++
	return s.result
}

type stubCache struct {
	entry  *domain.DiscoveryResult
	stored int
}

func (s *stubCache) Get(_ context.Context, _ domain.SearchPreferences) (domain.DiscoveryResult, bool) {
	if s.entry == nil {
		return domain.DiscoveryResult{}, false
	}
	out := *s.entry
	out.Cached = true
	return out, true
}

func (s *stubCache) Put(_ context.Context, _ domain.SearchPreferences, _ domain.DiscoveryResult) {
	s.stored++
}

type stubStore struct {
	started chan struct{}
	release chan struct{}
	saved   int
}

func (s *stubStore) SaveJobs(_ context.Context, records []domain.JobRecord) (int, error) {
	close(s.started)
	<-s.release
	s.saved = len(records)
	return len(records), nil
}

func discoverApp(svc DiscoveryService, cache ResultCache) *fiber.App {
	app := fiber.New()
	h := NewJobsHandler(svc, cache, nil, sources.NewRegistry(), zap.NewNop())
	app.Post("/api/jobs/discover", h.Discover)
	app.Get("/api/jobs/categories", h.Categories)
	app.Get("/api/jobs/sources/stats", h.SourceStats)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestDiscover_RequiresTitle(t *testing.T) {
	app := discoverApp(&stubDiscovery{}, nil)

	resp := postJSON(t, app, "/api/jobs/discover", `{"location": "Brooklyn"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDiscover_ReturnsPipelineResult(t *testing.T) {
	svc := &stubDiscovery{result: domain.DiscoveryResult{
		Jobs: []domain.JobRecord{{
			Title: "Forklift Operator",
			URL:   "https://example.com/jobs/1",
		}},
		Total: 1,
	}}
	app := discoverApp(svc, nil)

	resp := postJSON(t, app, "/api/jobs/discover", `{"title": "Forklift Operator"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result domain.DiscoveryResult
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &result))

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "Forklift Operator", result.Jobs[0].Title)
	assert.Equal(t, 1, svc.calls)
}

func TestDiscover_CacheHitSkipsPipeline(t *testing.T) {
	svc := &stubDiscovery{}
	cached := domain.DiscoveryResult{Total: 3}
	app := discoverApp(svc, &stubCache{entry: &cached})

	resp := postJSON(t, app, "/api/jobs/discover", `{"title": "Cleaner"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result domain.DiscoveryResult
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &result))

	assert.True(t, result.Cached)
	assert.Equal(t, 0, svc.calls)
}

func TestDiscover_MissStoresResult(t *testing.T) {
	cache := &stubCache{}
	app := discoverApp(&stubDiscovery{}, cache)

	resp := postJSON(t, app, "/api/jobs/discover", `{"title": "Cleaner"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, cache.stored)
}

func TestDiscover_DrainWaitsForBackgroundPersist(t *testing.T) {
	svc := &stubDiscovery{result: domain.DiscoveryResult{
		Jobs: []domain.JobRecord{{
			Title: "Forklift Operator",
			URL:   "https://example.com/jobs/1",
		}},
		Total: 1,
	}}
	store := &stubStore{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	app := fiber.New()
	h := NewJobsHandler(svc, nil, store, sources.NewRegistry(), zap.NewNop())
	app.Post("/api/jobs/discover", h.Discover)

	resp := postJSON(t, app, "/api/jobs/discover", `{"title": "Forklift Operator"}`)
	resp.Body.Close()
	<-store.started

	// The write is still in flight, so a short drain budget expires.
	shortCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.Drain(shortCtx), context.DeadlineExceeded)

	close(store.release)
	require.NoError(t, h.Drain(context.Background()))
	assert.Equal(t, 1, store.saved)
}

func TestCategories(t *testing.T) {
	app := discoverApp(&stubDiscovery{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/categories", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Categories []string `json:"categories"`
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload.Categories, "blue-collar")
}

func TestSourceStats(t *testing.T) {
	app := discoverApp(&stubDiscovery{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/sources/stats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats sources.Statistics
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Greater(t, stats.TotalSources, 0)
}
