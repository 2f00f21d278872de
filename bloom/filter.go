// Package bloom provides article URL deduplication using Bloom filters.
// Multi-page scrapers use it to avoid re-fetching detail pages that
// already appeared on an earlier listing page.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter tracking article URLs seen during a run.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL in the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might have been seen already.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// Seen reports whether the URL was already recorded and, if not,
// records it. A true result may rarely be a false positive, which
// for deduplication only means an article is skipped.
func (f *Filter) Seen(url string) bool {
	if f.f.TestString(url) {
		return true
	}
	f.f.AddString(url)
	return false
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
