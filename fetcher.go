package harvest

import "context"

// Fetcher retrieves raw content from URLs. Implementations may use plain
// HTTP for feed endpoints or browser automation for pages that require
// JavaScript rendering; callers cannot tell the difference.
type Fetcher interface {
	// Fetch retrieves the content at the URL. For browser-backed
	// implementations this is the rendered HTML after scripts have run.
	// The context controls timeout and cancellation; a timeout is treated
	// by callers as a source/item failure, never a run failure.
	Fetch(ctx context.Context, url string) (content string, err error)

	// Close releases any underlying resources (browser processes,
	// connection pools). Must be called when the Fetcher is no longer
	// needed.
	Close() error
}
