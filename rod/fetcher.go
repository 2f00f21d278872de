// Package rod provides a harvest.Fetcher backed by headless Chrome for
// sources that render their listings with JavaScript or block plain HTTP
// clients.
package rod

import (
	"context"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/startuppulse/harvest"
)

// DefaultUserAgent masks browser automation from sources that inspect it.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Ensure Fetcher implements harvest.Fetcher at compile time.
var _ harvest.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager        *BrowserManager
	userAgent      string
	blockResources bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent overrides the User-Agent reported by the browser.
// Defaults to DefaultUserAgent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithResourceBlocking controls whether image and stylesheet requests are
// aborted. Blocking them speeds up page loads considerably on image-heavy
// news sites. Enabled by default.
func WithResourceBlocking(enabled bool) FetcherOption {
	return func(f *Fetcher) {
		f.blockResources = enabled
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// The browser is recycled periodically by the BrowserManager to keep
// memory in check over long scrape runs. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{
		userAgent:      DefaultUserAgent,
		blockResources: true,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.manager.Browser()
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
		return "", err
	}

	if f.blockResources {
		router := page.HijackRequests()
		abort := func(h *rod.Hijack) {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		}
		if err := router.Add("*", proto.NetworkResourceTypeImage, abort); err != nil {
			return "", err
		}
		if err := router.Add("*", proto.NetworkResourceTypeStylesheet, abort); err != nil {
			return "", err
		}
		go router.Run()
		defer func() { _ = router.Stop() }()
	}

	// Navigate to URL
	if err := page.Navigate(url); err != nil {
		return "", err
	}

	// Wait for page to load
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Get rendered HTML
	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
