// Package etree provides the feed-XML extractor family: sources that
// publish a parseable RSS document with namespaced child elements
// (content:encoded, dc:creator, media:content).
package etree

import (
	"context"
	"log/slog"
	"strings"

	"github.com/beevik/etree"
	"github.com/startuppulse/harvest"
)

// Ensure Extractor implements harvest.Scraper at compile time.
var _ harvest.Scraper = (*Extractor)(nil)

// FeedConfig describes one feed source. The extractor itself is generic;
// everything source-specific lives here.
type FeedConfig struct {
	// Source is the fixed identifier stored on every Article.
	Source string

	// URL of the RSS document.
	URL string

	// TitlePrefix, when set, is stripped from the front of item titles
	// (e.g. the "Show HN: " boilerplate).
	TitlePrefix string

	// AuthorPrefix, when set, is stripped from the front of dc:creator
	// values (e.g. "Cointelegraph by ").
	AuthorPrefix string

	// DefaultAuthor is used when the feed carries no dc:creator.
	DefaultAuthor string

	// ContentSuffix, when set, is trimmed from the end of cleaned item
	// content (feed-injected footers).
	ContentSuffix string

	// Enrich, when set, runs on each normalized article before it is
	// returned; used for source-specific metadata like funding data.
	Enrich func(*harvest.Article)
}

// Extractor fetches and parses one RSS feed into canonical articles.
type Extractor struct {
	config     FeedConfig
	fetcher    harvest.Fetcher
	normalizer *harvest.Normalizer
	logger     *slog.Logger
}

// New creates a feed extractor for the given source configuration.
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

// Scrape fetches the feed and returns normalized articles in feed order.
// A fetch failure fails the source; parse and validation failures are
// per-item and skipped.
func (e *Extractor) Scrape(ctx context.Context) ([]*harvest.Article, error) {
	body, err := e.fetcher.Fetch(ctx, e.config.URL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EUNAVAILABLE, "fetching %s feed: %v", e.config.Source, err)
	}

	articles := make([]*harvest.Article, 0)
	for _, item := range e.Parse(body) {
		article, err := e.normalizer.Normalize(item, e.config.Source)
		if err != nil {
			e.logger.Warn("skipping feed item",
				"source", e.config.Source,
				"reason", harvest.ErrorMessage(err),
			)
			continue
		}

		e.applyConfig(article)
		if e.config.Enrich != nil {
			e.config.Enrich(article)
		}
		articles = append(articles, article)
	}

	return articles, nil
}

// Parse extracts raw items from an RSS document. A missing or malformed
// top-level structure yields an empty list with a logged warning, never an
// error; a malformed individual item is skipped without aborting the feed.
func (e *Extractor) Parse(xmlContent string) []harvest.RawItem {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(xmlContent); err != nil {
		e.logger.Warn("unparseable feed document", "source", e.config.Source, "error", err)
		return nil
	}

	root := doc.Root()
	if root == nil {
		e.logger.Warn("empty feed document", "source", e.config.Source)
		return nil
	}

	channel := root.SelectElement("channel")
	if channel == nil {
		// Atom-less, channel-less documents are treated as empty feeds.
		e.logger.Warn("feed has no channel element", "source", e.config.Source)
		return nil
	}

	var items []harvest.RawItem
	for _, el := range channel.SelectElements("item") {
		item, ok := e.parseItem(el)
		if !ok {
			e.logger.Warn("skipping malformed feed item", "source", e.config.Source)
			continue
		}
		items = append(items, item)
	}
	return items
}

// parseItem reads the named child elements of one <item>. Items without a
// title and link are considered malformed.
func (e *Extractor) parseItem(el *etree.Element) (harvest.RawItem, bool) {
	item := harvest.RawItem{
		Title:       elementText(el, "title"),
		Link:        elementText(el, "link"),
		Description: elementText(el, "description"),
		Content:     elementText(el, "content:encoded"),
		PubDate:     elementText(el, "pubDate"),
		Creator:     elementText(el, "dc:creator"),
		GUID:        elementText(el, "guid"),
		ImageURL:    imageURL(el),
	}

	for _, cat := range el.SelectElements("category") {
		if text := strings.TrimSpace(cat.Text()); text != "" {
			item.Categories = append(item.Categories, text)
		}
	}

	if item.Title == "" || item.Link == "" {
		return harvest.RawItem{}, false
	}
	return item, true
}

// applyConfig applies the source-specific title/author/content rules.
func (e *Extractor) applyConfig(article *harvest.Article) {
	if e.config.TitlePrefix != "" {
		article.Title = strings.TrimSpace(strings.TrimPrefix(article.Title, e.config.TitlePrefix))
	}
	if e.config.AuthorPrefix != "" {
		article.Author = strings.TrimSpace(strings.TrimPrefix(article.Author, e.config.AuthorPrefix))
	}
	if article.Author == "" {
		article.Author = e.config.DefaultAuthor
	}
	if e.config.ContentSuffix != "" {
		article.Content = strings.TrimSpace(strings.TrimSuffix(article.Content, e.config.ContentSuffix))
	}
}

// elementText returns the trimmed text of a named child element, or "".
// Works for namespaced tags ("dc:creator") because feed prefixes are
// conventional.
func elementText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// imageURL looks for a structured image reference: media:content,
// media:thumbnail, or an enclosure with a url attribute. The inline
// description <img> fallback belongs to the normalizer.
func imageURL(el *etree.Element) string {
	for _, tag := range []string{"media:content", "media:thumbnail", "enclosure", "image"} {
		child := el.SelectElement(tag)
		if child == nil {
			continue
		}
		if url := strings.TrimSpace(child.SelectAttrValue("url", "")); url != "" {
			return url
		}
		if text := strings.TrimSpace(child.Text()); text != "" && tag == "image" {
			return text
		}
	}
	return ""
}
