package fetch

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/config"
)

// Browser renders JavaScript-heavy career pages through headless Chrome.
// Sources flagged RenderJS route through here instead of the plain
// Fetcher; the markup handed back feeds the same extractor.
type Browser struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	logger   *zap.Logger
}

// NewBrowser starts a shared Chrome allocator. The user agent is drawn
// from the same pool the plain fetcher rotates through.
func NewBrowser(cfg config.FetchConfig, logger *zap.Logger) (*Browser, error) {
	ua := "JobHunter/1.0"
	if len(cfg.UserAgents) > 0 {
		ua = cfg.UserAgents[rand.Intn(len(cfg.UserAgents))]
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
		chromedp.UserAgent(ua),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Browser{allocCtx: allocCtx, cancel: cancel, logger: logger}, nil
}

// Close shuts down the allocator and any remaining browser processes.
func (b *Browser) Close() {
	b.cancel()
}

// FetchRendered navigates to the URL, waits for the body (or the given
// selector) to appear, and returns the rendered outer HTML.
func (b *Browser) FetchRendered(ctx context.Context, url, waitSelector string, timeout time.Duration) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.allocCtx)
	defer cancelTab()
	if timeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, timeout)
		defer cancel()
	}

	// Honor the caller's deadline as well as the tab's own.
	go func() {
		select {
		case <-ctx.Done():
			cancelTab()
		case <-tabCtx.Done():
		}
	}()

	if waitSelector == "" {
		waitSelector = "body"
	}

	var html string
	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady(waitSelector, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			node, err := dom.GetDocument().Do(ctx)
			if err != nil {
				return err
			}
			html, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
			return err
		}),
	}

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	b.logger.Debug("page rendered", zap.String("url", url), zap.Int("length", len(html)))
	return html, nil
}
