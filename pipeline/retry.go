package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/startuppulse/harvest"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure RetryFetcher implements harvest.Fetcher.
var _ harvest.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher wraps a Fetcher with exponential backoff retries. News
// feeds fail transiently often enough that a single attempt would lose
// whole sources to momentary blips.
type RetryFetcher struct {
	next   harvest.Fetcher
	logger *slog.Logger
	delays []time.Duration
}

// NewRetryFetcher creates a RetryFetcher. Passing no delays uses
// DefaultRetryDelays.
func NewRetryFetcher(next harvest.Fetcher, logger *slog.Logger, delays ...time.Duration) *RetryFetcher {
	if len(delays) == 0 {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{next: next, logger: logger, delays: delays}
}

// Fetch attempts the fetch, retrying after each configured delay.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		content, err := f.next.Fetch(ctx, url)
		if err == nil {
			return content, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		f.logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "error", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
