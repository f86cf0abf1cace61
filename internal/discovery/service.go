// Package discovery drives the end-to-end job discovery run: source
// selection, tiered fetching under a global time budget, extraction,
// and final filtering. It never propagates an error to the caller;
// per-source failures degrade to zero results from that source.
package discovery

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/config"
	"github.com/jobhunter/backend/internal/domain"
	"github.com/jobhunter/backend/internal/extract"
	"github.com/jobhunter/backend/internal/fetch"
	"github.com/jobhunter/backend/internal/sources"
)

// Fetcher is the plain-HTTP dependency. *fetch.Fetcher satisfies it;
// tests inject stubs.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts fetch.Options) (string, error)
}

// Renderer fetches JavaScript-rendered pages. Optional; when nil,
// RenderJS sources fall back to the plain fetcher.
type Renderer interface {
	FetchRendered(ctx context.Context, url, waitSelector string, timeout time.Duration) (string, error)
}

// Service orchestrates discovery runs. All state is per-call; the service
// itself is immutable after construction and safe for concurrent use.
type Service struct {
	selector  *sources.Selector
	fetcher   Fetcher
	renderer  Renderer
	extractor *extract.Extractor
	cfg       config.DiscoveryConfig
	logger    *zap.Logger
}

// New wires a discovery service.
func New(selector *sources.Selector, fetcher Fetcher, renderer Renderer, extractor *extract.Extractor, cfg config.DiscoveryConfig, logger *zap.Logger) *Service {
	return &Service{
		selector:  selector,
		fetcher:   fetcher,
		renderer:  renderer,
		extractor: extractor,
		cfg:       cfg,
		logger:    logger,
	}
}

// Discover runs the pipeline for one preference set. The returned result
// is possibly empty but never an error; a synthetic placeholder set is
// served only when the pipeline fails wholesale and the fallback toggle
// is on.
func (s *Service) Discover(ctx context.Context, prefs domain.SearchPreferences) domain.DiscoveryResult {
	start := time.Now()

	records, failed := s.runSafely(ctx, prefs)

	result := domain.DiscoveryResult{}
	if failed && s.cfg.AllowSyntheticFallback {
		s.logger.Warn("discovery failed, serving synthetic fallback")
		result.Jobs = syntheticRecords(prefs)
		result.Synthetic = true
	} else {
		result.Jobs = records
	}
	result.Total = len(result.Jobs)
	result.Elapsed = time.Since(start).Round(time.Millisecond).String()

	s.logger.Info("discovery run complete",
		zap.Int("jobs", result.Total),
		zap.Bool("synthetic", result.Synthetic),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result
}

// runSafely guards the pipeline against panics so the caller always gets
// a well-formed response.
func (s *Service) runSafely(ctx context.Context, prefs domain.SearchPreferences) (records []domain.JobRecord, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("discovery pipeline panicked", zap.Any("panic", r))
			records, failed = nil, true
		}
	}()
	return s.run(ctx, prefs), false
}

// run executes the tier state machine: fast fan-out, then medium, then
// slow, with an early-exit check after each tier and a hard wall-clock
// budget over the whole run.
func (s *Service) run(ctx context.Context, prefs domain.SearchPreferences) []domain.JobRecord {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	sel := s.selector.Select(prefs)
	s.logger.Info("sources selected",
		zap.Int("fast", len(sel.Fast)),
		zap.Int("medium", len(sel.Medium)),
		zap.Int("slow", len(sel.Slow)),
	)

	collected := s.fastTier(ctx, sel.Fast, prefs)

	if !s.enough(collected) && ctx.Err() == nil {
		collected = append(collected, s.sequentialTier(ctx, domain.TierMedium, sel.Medium, prefs, len(collected))...)
	}
	if !s.enough(collected) && ctx.Err() == nil {
		collected = append(collected, s.sequentialTier(ctx, domain.TierSlow, sel.Slow, prefs, len(collected))...)
	}

	collected = dedupByURL(collected)
	collected = applyCriteria(collected, prefs, time.Now())
	if s.cfg.MaxResults > 0 && len(collected) > s.cfg.MaxResults {
		collected = collected[:s.cfg.MaxResults]
	}
	return collected
}

func (s *Service) enough(records []domain.JobRecord) bool {
	return s.cfg.TargetResults > 0 && len(records) >= s.cfg.TargetResults
}

// fastTier fans out the API and feed sources with bounded concurrency and
// short per-fetch timeouts. Results are merged under a mutex; failures
// are isolated per source.
func (s *Service) fastTier(ctx context.Context, srcs []domain.SourceDefinition, prefs domain.SearchPreferences) []domain.JobRecord {
	if len(srcs) == 0 {
		return nil
	}

	limit := s.cfg.FastConcurrency
	if limit <= 0 {
		limit = 10
	}
	sem := make(chan struct{}, limit)

	var (
		mu        sync.Mutex
		collected []domain.JobRecord
		wg        sync.WaitGroup
	)
	for _, src := range srcs {
		wg.Add(1)
		go func(src domain.SourceDefinition) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("fast tier source panicked",
						zap.String("source", src.Name),
						zap.Any("panic", r),
					)
				}
			}()
			sem <- struct{}{}
			defer func() { <-sem }()

			records := s.fetchSource(ctx, src, prefs, fetch.Options{
				Class:   src.Type,
				Timeout: s.cfg.FastFetchTimeout,
				Retries: 1,
				Accept:  acceptFor(src.Kind),
			})

			mu.Lock()
			collected = append(collected, records...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()
	return collected
}

// sequentialTier visits sources one at a time with a politeness delay,
// stopping as soon as the run budget expires or enough records have
// accumulated across the whole run.
func (s *Service) sequentialTier(ctx context.Context, tier domain.Tier, srcs []domain.SourceDefinition, prefs domain.SearchPreferences, already int) []domain.JobRecord {
	var collected []domain.JobRecord
	for i, src := range srcs {
		if ctx.Err() != nil {
			s.logger.Warn("run budget exceeded, abandoning tier",
				zap.String("tier", tier.String()),
				zap.Int("remaining", len(srcs)-i),
			)
			break
		}
		if s.cfg.TargetResults > 0 && already+len(collected) >= s.cfg.TargetResults {
			break
		}

		collected = append(collected, s.fetchSource(ctx, src, prefs, fetch.Options{
			Class:  src.Type,
			Accept: acceptFor(src.Kind),
		})...)

		if i < len(srcs)-1 {
			if err := politePause(ctx, s.cfg.PolitenessDelay); err != nil {
				break
			}
		}
	}
	return collected
}

// fetchSource retrieves one source and extracts its candidates. Every
// failure is logged with the source context and swallowed.
func (s *Service) fetchSource(ctx context.Context, src domain.SourceDefinition, prefs domain.SearchPreferences, opts fetch.Options) []domain.JobRecord {
	url := src.FetchURL()

	var (
		payload string
		err     error
	)
	if src.RenderJS && s.renderer != nil {
		waitFor := ""
		if src.Template != nil {
			waitFor = src.Template.Jobs
		}
		payload, err = s.renderer.FetchRendered(ctx, url, waitFor, opts.Timeout)
	} else {
		payload, err = s.fetcher.Fetch(ctx, url, opts)
	}
	if err != nil {
		s.logger.Warn("source fetch failed",
			zap.String("source", src.Name),
			zap.String("url", url),
			zap.Error(err),
		)
		return nil
	}

	cands := s.extractor.Extract(payload, src, prefs.Title)
	cands = matchTitle(cands, src, prefs.Title)

	records := extract.Promote(cands, src)
	s.logger.Debug("source extracted",
		zap.String("source", src.Name),
		zap.Int("jobs", len(records)),
	)
	return records
}

// matchTitle keeps scraped candidates whose title mentions the query.
// Feed items were already relevance-checked during extraction.
func matchTitle(cands []extract.Candidate, src domain.SourceDefinition, query string) []extract.Candidate {
	if query == "" || src.Kind == domain.ContentKindRSS {
		return cands
	}
	query = strings.ToLower(query)
	out := cands[:0]
	for _, c := range cands {
		if strings.Contains(strings.ToLower(c.Title), query) {
			out = append(out, c)
		}
	}
	return out
}

func acceptFor(kind domain.ContentKind) string {
	switch kind {
	case domain.ContentKindJSON:
		return "application/json"
	case domain.ContentKindRSS:
		return "application/rss+xml, application/xml"
	default:
		return ""
	}
}

func politePause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func dedupByURL(records []domain.JobRecord) []domain.JobRecord {
	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	for _, r := range records {
		if _, ok := seen[r.URL]; ok {
			continue
		}
		seen[r.URL] = struct{}{}
		out = append(out, r)
	}
	return out
}
