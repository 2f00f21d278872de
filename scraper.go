package harvest

import "context"

// Scraper retrieves and extracts articles for one source. Each source
// family (feed XML, pattern-scraped markup, rendered DOM, multi-page)
// provides its own implementation; new sources are added by implementing
// this interface, not by extending a shared base.
type Scraper interface {
	// Name returns the fixed source identifier stored on every Article
	// this scraper produces (e.g. "techcrunch").
	Name() string

	// Scrape fetches the source and returns normalized articles in
	// feed/page order. Item-level failures are skipped internally; an
	// error return means the whole source failed this run.
	Scrape(ctx context.Context) ([]*Article, error)
}

// SourceResult aggregates one source's outcome within a run.
type SourceResult struct {
	Source  string `json:"source"`
	Fetched int    `json:"fetched"`
	Saved   int    `json:"saved"`
	Skipped int    `json:"skipped"`
	Err     error  `json:"-"`
}

// Failed reports whether the source failed at the source boundary
// (as opposed to item-level skips, which are normal).
func (r SourceResult) Failed() bool {
	return r.Err != nil
}

// RunSummary aggregates a whole pipeline invocation. It is returned by
// value from the orchestrator and logged; it is never persisted.
type RunSummary struct {
	Results []SourceResult `json:"results"`
}

// TotalFetched returns the number of articles extracted across sources.
func (s RunSummary) TotalFetched() int {
	n := 0
	for _, r := range s.Results {
		n += r.Fetched
	}
	return n
}

// TotalSaved returns the number of rows actually written across sources.
func (s RunSummary) TotalSaved() int {
	n := 0
	for _, r := range s.Results {
		n += r.Saved
	}
	return n
}

// TotalSkipped returns the number of articles skipped as duplicates or
// rejected during normalization.
func (s RunSummary) TotalSkipped() int {
	n := 0
	for _, r := range s.Results {
		n += r.Skipped
	}
	return n
}

// FailedSources returns the names of sources that failed at the source
// boundary this run.
func (s RunSummary) FailedSources() []string {
	var names []string
	for _, r := range s.Results {
		if r.Failed() {
			names = append(names, r.Source)
		}
	}
	return names
}
