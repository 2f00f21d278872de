package goquery

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/startuppulse/harvest"
	"github.com/startuppulse/harvest/bloom"
	"golang.org/x/time/rate"
)

// PitchBookURL is the news listing page scraped by PitchBook.
const PitchBookURL = "https://pitchbook.com/news/articles"

// Path fragments that mark a link as an article page rather than a
// category or navigation page.
var pitchBookLinkPatterns = []string{
	"/news/articles/",
	"/news/article/",
	"/news/story/",
	"/news/press-release/",
}

// Card selectors tried when no article-pattern links are present.
var pitchBookCardSelectors = ".card a[href], .article-card a[href], .news-card a[href], .news-item a[href]"

// pitchBookMaxDetails caps how many article pages get fetched per run.
const pitchBookMaxDetails = 5

var _ harvest.Scraper = (*PitchBook)(nil)

// PitchBook scrapes the PitchBook news listing and the first few article
// pages behind it. The site is aggressive about automation so the
// fetcher should be the rendering engine.
type PitchBook struct {
	fetcher harvest.Fetcher
	picker  *ContentPicker
	seen    *bloom.Filter
	limiter *rate.Limiter
	logger  *slog.Logger

	// Now is overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

// NewPitchBook creates the PitchBook scraper. The extractor is used for
// article page content and may be nil.
func NewPitchBook(fetcher harvest.Fetcher, extractor harvest.ContentExtractor, logger *slog.Logger) *PitchBook {
	return &PitchBook{
		fetcher: fetcher,
		picker:  NewContentPicker(extractor),
		seen:    bloom.NewFilter(10000, 0.01),
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		logger:  logger,
		Now:     time.Now,
	}
}

// Name returns the source identifier.
func (p *PitchBook) Name() string {
	return "pitchbook"
}

// Scrape fetches the listing page, collects unique article links and
// returns an article per successfully extracted page.
func (p *PitchBook) Scrape(ctx context.Context) ([]*harvest.Article, error) {
	listing, err := p.fetcher.Fetch(ctx, PitchBookURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EUNAVAILABLE, "fetching pitchbook listing: %v", err)
	}

	links := p.collectLinks(listing)
	if len(links) == 0 {
		p.logger.Warn("no article links found on listing page", "source", p.Name())
		return []*harvest.Article{}, nil
	}
	if len(links) > pitchBookMaxDetails {
		links = links[:pitchBookMaxDetails]
	}

	articles := make([]*harvest.Article, 0, len(links))
	for _, link := range links {
		if err := p.limiter.Wait(ctx); err != nil {
			return articles, err
		}

		rawHTML, err := p.fetcher.Fetch(ctx, link)
		if err != nil {
			p.logger.Warn("article fetch failed", "source", p.Name(), "url", link, "error", err)
			continue
		}

		article := p.parseArticle(rawHTML, link)
		if article.Title == "" || article.Content == "" {
			p.logger.Warn("skipping article without extractable content", "source", p.Name(), "url", link)
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// collectLinks returns unique article URLs from the listing page,
// preferring links whose path marks them as articles and falling back to
// card anchors.
func (p *PitchBook) collectLinks(listing string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listing))
	if err != nil {
		p.logger.Warn("parsing listing failed", "source", p.Name(), "error", err)
		return nil
	}

	base, _ := url.Parse(PitchBookURL)

	var links []string
	add := func(href string) {
		href = strings.TrimSpace(href)
		if href == "" || strings.Contains(href, "#") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()
		if p.seen.Seen(resolved) {
			return
		}
		links = append(links, resolved)
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		for _, pattern := range pitchBookLinkPatterns {
			if strings.Contains(href, pattern) && !strings.HasSuffix(strings.TrimRight(href, "/"), "/news/articles") {
				add(href)
				return
			}
		}
	})
	if len(links) > 0 {
		return links
	}

	doc.Find(pitchBookCardSelectors).Each(func(_ int, a *goquery.Selection) {
		add(a.AttrOr("href", ""))
	})
	return links
}

// parseArticle extracts title, content, byline, date and image from an
// article page.
func (p *PitchBook) parseArticle(rawHTML, pageURL string) *harvest.Article {
	now := p.Now().UTC()
	article := &harvest.Article{
		URL:           pageURL,
		Source:        p.Name(),
		PublishedDate: now,
		ScrapedAt:     now,
		Categories:    []string{},
		Metadata:      map[string]any{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return article
	}

	article.Title = harvest.CollapseWhitespace(doc.Find("h1").First().Text())
	if article.Title == "" {
		article.Title = harvest.CollapseWhitespace(doc.Find("title").First().Text())
	}

	article.Content = p.picker.Pick(rawHTML)

	if stamp := doc.Find(`meta[property="article:published_time"]`).AttrOr("content", ""); stamp != "" {
		if ts, err := dateparse.ParseAny(stamp); err == nil {
			article.PublishedDate = ts.UTC()
		}
	} else if timeSel := doc.Find("time").First(); timeSel.Length() > 0 {
		stamp := timeSel.AttrOr("datetime", timeSel.Text())
		if ts, err := dateparse.ParseAny(strings.TrimSpace(stamp)); err == nil {
			article.PublishedDate = ts.UTC()
		}
	}

	article.Author = doc.Find(`meta[name="author"]`).AttrOr("content", "")
	if article.Author == "" {
		article.Author = harvest.CollapseWhitespace(doc.Find(".author, .byline").First().Text())
	}

	article.ImageURL = doc.Find("article img, .featured-image img, main img").First().AttrOr("src", "")
	if article.ImageURL == "" {
		article.ImageURL = doc.Find(`meta[property="og:image"]`).AttrOr("content", "")
	}

	return article
}
