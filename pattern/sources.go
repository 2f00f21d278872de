package pattern

import (
	"log/slog"

	"github.com/startuppulse/harvest"
)

// Feed URLs for the pattern-scraped sources.
const (
	TechCrunchFeedURL  = "https://techcrunch.com/feed/"
	FastCompanyFeedURL = "https://www.fastcompany.com/technology/rss"
)

// startupKeywords is the relevance filter for the TechCrunch firehose:
// only items touching startup or venture activity are kept.
var startupKeywords = []string{
	"startup",
	"funding",
	"raises",
	"raised",
	"venture",
	"series a",
	"series b",
	"series c",
	"seed round",
	"vc",
	"acquisition",
	"acquires",
	"valuation",
	"founder",
	"ipo",
}

// NewTechCrunch returns the TechCrunch startup-news extractor.
func NewTechCrunch(fetcher harvest.Fetcher, logger *slog.Logger) *Extractor {
	return New(fetcher, logger, FeedConfig{
		Source:   "techcrunch",
		URL:      TechCrunchFeedURL,
		Keywords: startupKeywords,
	})
}

// NewFastCompany returns the Fast Company technology extractor. The feed
// is already topical so no keyword filter applies.
func NewFastCompany(fetcher harvest.Fetcher, logger *slog.Logger) *Extractor {
	return New(fetcher, logger, FeedConfig{
		Source: "fastcompany",
		URL:    FastCompanyFeedURL,
	})
}
