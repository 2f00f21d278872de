// Package pattern provides the pattern-scraped extractor family: sources
// whose feed is only available as raw markup text (typically fetched
// through the rendering engine), located and parsed with regular
// expressions instead of a structured parser.
package pattern

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/startuppulse/harvest"
)

// Ensure Extractor implements harvest.Scraper at compile time.
var _ harvest.Scraper = (*Extractor)(nil)

// Field sub-patterns are tolerant of optional CDATA wrapping, mixed case,
// and multi-line bodies.
var (
	itemBlockRe = regexp.MustCompile(`(?s)<item>.*?</item>`)
	titleRe     = regexp.MustCompile(`(?i)<title>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</title>`)
	linkRe      = regexp.MustCompile(`(?i)<link>(.*?)</link>`)
	pubDateRe   = regexp.MustCompile(`(?i)<pubDate>(.*?)</pubDate>`)
	descRe      = regexp.MustCompile(`(?is)<description>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</description>`)
	creatorRe   = regexp.MustCompile(`(?i)<dc:creator>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</dc:creator>`)
	mediaRe     = regexp.MustCompile(`(?i)<media:content[^>]*url="([^"]*)"[^>]*>`)
	categoryRe  = regexp.MustCompile(`(?is)<category>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</category>`)
)

// FeedConfig describes one pattern-scraped source.
type FeedConfig struct {
	// Source is the fixed identifier stored on every Article.
	Source string

	// URL of the raw feed document.
	URL string

	// Keywords, when non-empty, is a relevance filter: an item is kept
	// only if its title or description contains at least one keyword
	// (case-insensitive).
	Keywords []string
}

// Extractor fetches raw feed markup and pattern-matches items out of it.
type Extractor struct {
	config     FeedConfig
	fetcher    harvest.Fetcher
	normalizer *harvest.Normalizer
	logger     *slog.Logger
}

// New creates a pattern extractor for the given source configuration.
func New(fetcher harvest.Fetcher, logger *slog.Logger, config FeedConfig) *Extractor {
	return &Extractor{
		config:     config,
		fetcher:    fetcher,
		normalizer: &harvest.Normalizer{},
		logger:     logger,
	}
}

// Name returns the source identifier.
func (e *Extractor) Name() string {
	return e.config.Source
}

// Scrape fetches the raw feed text and returns normalized articles in
// feed order. Items failing the keyword filter or validation are skipped.
func (e *Extractor) Scrape(ctx context.Context) ([]*harvest.Article, error) {
	raw, err := e.fetcher.Fetch(ctx, e.config.URL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EUNAVAILABLE, "fetching %s feed: %v", e.config.Source, err)
	}

	articles := make([]*harvest.Article, 0)
	for _, item := range e.Parse(raw) {
		if !e.relevant(item) {
			continue
		}

		article, err := e.normalizer.Normalize(item, e.config.Source)
		if err != nil {
			e.logger.Warn("skipping feed item",
				"source", e.config.Source,
				"reason", harvest.ErrorMessage(err),
			)
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}

// Parse locates item blocks in raw markup and extracts their fields.
// No item blocks means an empty list, never an error; an item missing its
// title or link is dropped.
func (e *Extractor) Parse(raw string) []harvest.RawItem {
	blocks := itemBlockRe.FindAllString(raw, -1)
	if len(blocks) == 0 {
		e.logger.Warn("no item blocks found in feed", "source", e.config.Source)
		return nil
	}

	var items []harvest.RawItem
	for _, block := range blocks {
		item := harvest.RawItem{
			Title:       submatch(titleRe, block),
			Link:        submatch(linkRe, block),
			Description: submatch(descRe, block),
			PubDate:     submatch(pubDateRe, block),
			Creator:     submatch(creatorRe, block),
			ImageURL:    submatch(mediaRe, block),
		}

		for _, m := range categoryRe.FindAllStringSubmatch(block, -1) {
			if cat := strings.TrimSpace(m[1]); cat != "" {
				item.Categories = append(item.Categories, cat)
			}
		}

		if item.Title == "" || item.Link == "" {
			e.logger.Warn("skipping malformed feed item", "source", e.config.Source)
			continue
		}
		items = append(items, item)
	}
	return items
}

// relevant reports whether the item passes the keyword filter.
func (e *Extractor) relevant(item harvest.RawItem) bool {
	if len(e.config.Keywords) == 0 {
		return true
	}

	haystack := strings.ToLower(item.Title + " " + item.Description)
	for _, kw := range e.config.Keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// submatch returns the first capture group of the first match, trimmed.
func submatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
