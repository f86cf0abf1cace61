// Package fetch performs polite HTTP retrieval of job-source pages with
// bounded retry, per-source-class backoff and user-agent rotation.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/config"
	"github.com/jobhunter/backend/internal/domain"
)

// ErrorKind classifies a fetch failure. The orchestrator reacts
// differently to each kind.
type ErrorKind string

const (
	KindNotFound    ErrorKind = "not_found"
	KindRateLimited ErrorKind = "rate_limited"
	KindNetwork     ErrorKind = "network"
	KindExhausted   ErrorKind = "exhausted"
)

// FetchError carries the failure kind plus enough context to diagnose a
// misbehaving source.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s (status %d)", e.URL, e.Kind, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Options tune a single Fetch call.
type Options struct {
	// Class selects the politeness delay table entry (the source type).
	Class domain.SourceType
	// Timeout overrides the per-request network timeout when positive.
	Timeout time.Duration
	// Retries overrides the attempt budget when positive.
	Retries int
	// Accept overrides the Accept header for API and feed endpoints.
	Accept string
}

// Fetcher retrieves pages over plain HTTP. It is safe for concurrent use.
type Fetcher struct {
	client *http.Client
	cfg    config.FetchConfig
	logger *zap.Logger
}

// New constructs a Fetcher with a shared HTTP client.
func New(cfg config.FetchConfig, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch GETs the URL, retrying up to the attempt budget. HTTP 2xx/3xx is
// success. 404 aborts immediately (permanent failure). 403/429 waits the
// aggressive delay before the next attempt. Everything else backs off
// linearly, scaled by the source-class delay. Exhausting the budget yields
// KindExhausted carrying the last underlying error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, opts Options) (string, error) {
	retries := opts.Retries
	if retries <= 0 {
		retries = f.cfg.MaxRetries
	}
	baseDelay := f.classDelay(opts.Class)

	var lastErr error
	var nextDelay time.Duration

	for attempt := 1; attempt <= retries; attempt++ {
		if nextDelay > 0 {
			if err := sleep(ctx, nextDelay); err != nil {
				return "", &FetchError{Kind: KindNetwork, URL: rawURL, Err: err}
			}
		}

		f.logger.Debug("fetch attempt",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Int("retries", retries),
		)

		body, status, err := f.do(ctx, rawURL, opts)
		if err == nil && status < 400 {
			return body, nil
		}

		switch {
		case status == http.StatusNotFound:
			// Permanent; not worth retrying.
			return "", &FetchError{Kind: KindNotFound, URL: rawURL, StatusCode: status}
		case status == http.StatusForbidden || status == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("blocked with status %d", status)
			nextDelay = f.cfg.AggressiveDelay
			f.logger.Warn("rate limited, backing off",
				zap.String("url", rawURL),
				zap.Int("status", status),
				zap.Duration("delay", nextDelay),
			)
		case err != nil:
			lastErr = err
			nextDelay = baseDelay * time.Duration(attempt)
		default:
			lastErr = fmt.Errorf("unexpected status %d", status)
			nextDelay = baseDelay * time.Duration(attempt)
		}

		if ctx.Err() != nil {
			return "", &FetchError{Kind: KindNetwork, URL: rawURL, Err: ctx.Err()}
		}
	}

	return "", &FetchError{Kind: KindExhausted, URL: rawURL, Err: lastErr}
}

// do performs one GET attempt and returns body text and status code.
func (f *Fetcher) do(ctx context.Context, rawURL string, opts Options) (string, int, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, err
	}

	accept := opts.Accept
	if accept == "" {
		accept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	}
	req.Header.Set("User-Agent", f.userAgent())
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", "https://www.google.com/")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return "", resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(body), resp.StatusCode, nil
}

// userAgent picks a random identity from the configured pool.
func (f *Fetcher) userAgent() string {
	if len(f.cfg.UserAgents) == 0 {
		return "JobHunter/1.0"
	}
	return f.cfg.UserAgents[rand.Intn(len(f.cfg.UserAgents))]
}

func (f *Fetcher) classDelay(class domain.SourceType) time.Duration {
	if d, ok := f.cfg.ClassDelays[string(class)]; ok {
		return d
	}
	if d, ok := f.cfg.ClassDelays[string(domain.SourceTypeNiche)]; ok {
		return d
	}
	return 2 * time.Second
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
