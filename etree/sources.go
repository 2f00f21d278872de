package etree

import (
	"log/slog"
	"strings"

	"github.com/startuppulse/harvest"
)

// Feed endpoints for the RSS-backed sources.
const (
	strictlyVCFeedURL    = "https://strictlyvc.com/feed/"
	ventureBeatFeedURL   = "https://venturebeat.com/feed/"
	techReviewFeedURL    = "https://www.technologyreview.com/feed/"
	crunchbaseFeedURL    = "https://news.crunchbase.com/feed/"
	coinDeskFeedURL      = "https://www.coindesk.com/arc/outboundfeeds/rss"
	cointelegraphFeedURL = "https://cointelegraph.com/rss"
	chinaTechNewsFeedURL = "https://www.chinatechnews.com/feed"
	hackerNewsShowURL    = "https://hnrss.org/show"
)

// NewStrictlyVC extracts the StrictlyVC newsletter feed. Its issues carry
// funding roundup sections that are parsed into structured metadata.
func NewStrictlyVC(fetcher harvest.Fetcher, logger *slog.Logger) *Extractor {
	return New(fetcher, logger, FeedConfig{
		Source:        "strictlyvc",
		URL:           strictlyVCFeedURL,
		DefaultAuthor: "StrictlyVC",
		Enrich: func(a *harvest.Article) {
			if data := harvest.ExtractFundingData(a.Content); data != nil {
				setMetadata(a, "fundingData", data)
			}
		},
	})
}

// NewVentureBeat extracts the VentureBeat feed, tagging each article with
// a coarse type and topic derived from its categories.
func NewVentureBeat(fetcher harvest.Fetcher, logger *slog.Logger) *Extractor {
	return New(fetcher, logger, FeedConfig{
		Source: "venturebeat",
		URL:    ventureBeatFeedURL,
		Enrich: func(a *harvest.Article) {
			setMetadata(a, "articleType", articleType(a.Categories))
			if len(a.Categories) > 0 {
				setMetadata(a, "topic", a.Categories[0])
			}
		},
	})
}

// NewTechReview extracts the MIT Technology Review feed.
func NewTechReview(fetcher harvest.Fetcher, logger *slog.Logger) *Extractor {
	return New(fetcher, logger, FeedConfig{
		Source: "techreview",
		URL:    techReviewFeedURL,
	})
}

// NewCrunchbase extracts the Crunchbase News feed.
func NewCrunchbase(fetcher harvest.Fetcher, logger *slog.Logger) *Extractor {
	return New(fetcher, logger, FeedConfig{
		Source: "crunchbase",
		URL:    crunchbaseFeedURL,
	})
}

// NewCoinDesk extracts the CoinDesk feed.
func NewCoinDesk(fetcher harvest.Fetcher, logger *slog.Logger) *Extractor {
	return New(fetcher, logger, FeedConfig{
		Source: "coindesk",
		URL:    coinDeskFeedURL,
	})
}

// NewCointelegraph extracts the Cointelegraph feed. Bylines arrive as
// "Cointelegraph by <author>".
func NewCointelegraph(fetcher harvest.Fetcher, logger *slog.Logger) *Extractor {
	return New(fetcher, logger, FeedConfig{
		Source:       "cointelegraph",
		URL:          cointelegraphFeedURL,
		AuthorPrefix: "Cointelegraph by ",
	})
}

// NewChinaTechNews extracts the ChinaTechNews feed, trimming the footer
// the feed injects into every description.
func NewChinaTechNews(fetcher harvest.Fetcher, logger *slog.Logger) *Extractor {
	return New(fetcher, logger, FeedConfig{
		Source:        "chinatechnews",
		URL:           chinaTechNewsFeedURL,
		ContentSuffix: "comes via ChinaTechNews.com.",
	})
}

// NewHackerNewsShow extracts the Show HN feed (hnrss.org). Titles carry a
// "Show HN: " prefix that is stripped.
func NewHackerNewsShow(fetcher harvest.Fetcher, logger *slog.Logger) *Extractor {
	return New(fetcher, logger, FeedConfig{
		Source:      "hackernews",
		URL:         hackerNewsShowURL,
		TitlePrefix: "Show HN:",
	})
}

// articleType maps feed categories to a coarse article type.
func articleType(categories []string) string {
	typeMapping := []struct{ key, value string }{
		{"games", "gaming"},
		{"game-development", "gaming"},
		{"artificial-intelligence", "ai"},
		{"ai", "ai"},
		{"enterprise", "enterprise"},
		{"security", "security"},
		{"cloud", "cloud"},
		{"mobile", "mobile"},
	}
	for _, cat := range categories {
		normalized := strings.ToLower(cat)
		for _, m := range typeMapping {
			if strings.Contains(normalized, m.key) {
				return m.value
			}
		}
	}
	return "general"
}

// setMetadata assigns a metadata key, allocating the map on first use.
func setMetadata(a *harvest.Article, key string, value any) {
	if a.Metadata == nil {
		a.Metadata = make(map[string]any)
	}
	a.Metadata[key] = value
}
