package harvest

// ExtractResult holds the outcome of main-content extraction from a page.
type ExtractResult struct {
	Title string
	Text  string
}

// ContentExtractor pulls the main article text out of raw page HTML.
// Implementations return plain text, not markup.
type ContentExtractor interface {
	Extract(rawHTML string) (*ExtractResult, error)
}
