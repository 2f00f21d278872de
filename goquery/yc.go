package goquery

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/startuppulse/harvest"
	"github.com/startuppulse/harvest/bloom"
	"golang.org/x/time/rate"
)

// Hacker News sections scanned for startup-related posts.
var ycSections = []string{
	"https://news.ycombinator.com/newest",
	"https://news.ycombinator.com/show",
	"https://news.ycombinator.com/jobs",
}

// ycKeywords filters listing titles down to startup and venture activity.
var ycKeywords = []string{
	"startup", "fund", "raise", "series", "venture", "acquisition", "acquired",
	"seed", "angel", "investment", "launch", "yc", "y combinator", "founder",
	"valuation", "ipo", "merger", "saas", "tech", "ai", "ml",
	"raised", "funding", "round", "million", "billion",
}

// ycSkipDomains host substrings whose detail pages are not worth fetching.
var ycSkipDomains = []string{"twitter.com", "x.com", "youtube.com", "github.com", "t.co"}

// ycMaxDetails caps how many top-scored posts get their content fetched.
const ycMaxDetails = 15

var _ harvest.Scraper = (*YCombinator)(nil)

// listedPost is a listing row before its detail page has been fetched.
type listedPost struct {
	title     string
	url       string
	domain    string
	points    int
	comments  int
	published time.Time
}

// YCombinator scrapes startup-related posts from several Hacker News
// sections, then fetches the top posts' linked pages for their content.
type YCombinator struct {
	fetcher harvest.Fetcher
	picker  *ContentPicker
	seen    *bloom.Filter
	limiter *rate.Limiter
	logger  *slog.Logger

	// Now is overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

// NewYCombinator creates the Hacker News scraper. The extractor is used
// for detail page content and may be nil.
func NewYCombinator(fetcher harvest.Fetcher, extractor harvest.ContentExtractor, logger *slog.Logger) *YCombinator {
	return &YCombinator{
		fetcher: fetcher,
		picker:  NewContentPicker(extractor),
		seen:    bloom.NewFilter(10000, 0.01),
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		logger:  logger,
		Now:     time.Now,
	}
}

// Name returns the source identifier.
func (y *YCombinator) Name() string {
	return "ycombinator"
}

// Scrape collects listing rows from each section, keeps keyword matches,
// and returns the top posts by points with their content filled in.
// A failing section is logged and skipped; Scrape fails only when every
// section fails.
func (y *YCombinator) Scrape(ctx context.Context) ([]*harvest.Article, error) {
	var posts []listedPost
	failed := 0

	for _, section := range ycSections {
		rawHTML, err := y.fetcher.Fetch(ctx, section)
		if err != nil {
			y.logger.Warn("skipping section", "source", y.Name(), "url", section, "error", err)
			failed++
			continue
		}
		for _, post := range y.parseListing(rawHTML) {
			if !matchesKeywords(post.title) {
				continue
			}
			if y.seen.Seen(post.url) {
				continue
			}
			posts = append(posts, post)
		}
	}
	if failed == len(ycSections) {
		return nil, harvest.Errorf(harvest.EUNAVAILABLE, "fetching hacker news sections")
	}

	sort.SliceStable(posts, func(i, j int) bool { return posts[i].points > posts[j].points })
	if len(posts) > ycMaxDetails {
		posts = posts[:ycMaxDetails]
	}

	articles := make([]*harvest.Article, 0, len(posts))
	for _, post := range posts {
		content, err := y.fetchContent(ctx, post)
		if err != nil {
			return articles, err
		}
		articles = append(articles, y.toArticle(post, content))
	}
	return articles, nil
}

// fetchContent returns the post's content, substituting a placeholder for
// skipped domains and failed extractions. The only error it returns is
// context cancellation from the rate limiter.
func (y *YCombinator) fetchContent(ctx context.Context, post listedPost) (string, error) {
	for _, domain := range ycSkipDomains {
		if strings.Contains(post.url, domain) {
			return fmt.Sprintf("[Link to %s]", post.domain), nil
		}
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return "", err
	}

	rawHTML, err := y.fetcher.Fetch(ctx, post.url)
	if err != nil {
		y.logger.Warn("detail fetch failed", "source", y.Name(), "url", post.url, "error", err)
		return fmt.Sprintf("[Error accessing content: %v]", err), nil
	}

	content := y.picker.Pick(rawHTML)
	if len(content) < minContentLength {
		return fmt.Sprintf("[No content extracted from %s]", post.domain), nil
	}
	return content, nil
}

func (y *YCombinator) parseListing(rawHTML string) []listedPost {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		y.logger.Warn("parsing listing failed", "source", y.Name(), "error", err)
		return nil
	}

	now := y.Now().UTC()
	var posts []listedPost

	doc.Find("tr.athing").Each(func(_ int, row *goquery.Selection) {
		titleLink := row.Find(".titleline > a").First()
		title := strings.TrimSpace(titleLink.Text())
		href := titleLink.AttrOr("href", "")
		if title == "" || href == "" {
			return
		}
		if u, err := url.Parse(href); err == nil && !u.IsAbs() {
			href = "https://news.ycombinator.com/" + strings.TrimPrefix(href, "/")
		}

		post := listedPost{
			title:     title,
			url:       href,
			domain:    strings.TrimSpace(row.Find(".sitestr").First().Text()),
			published: now,
		}
		if post.domain == "" {
			if u, err := url.Parse(href); err == nil {
				post.domain = u.Hostname()
			}
		}

		// Score, age and comment count live on the row after the title.
		sub := row.Next()
		if fields := strings.Fields(sub.Find(".score").First().Text()); len(fields) > 0 {
			post.points, _ = strconv.Atoi(fields[0])
		}
		if fields := strings.Fields(sub.Find(".age").First().AttrOr("title", "")); len(fields) > 0 {
			if ts, err := dateparse.ParseAny(fields[0]); err == nil {
				post.published = ts.UTC()
			}
		}
		sub.Find("a").Each(func(_ int, a *goquery.Selection) {
			fields := strings.Fields(a.Text())
			if len(fields) > 0 && strings.Contains(a.Text(), "comment") {
				post.comments, _ = strconv.Atoi(fields[0])
			}
		})

		posts = append(posts, post)
	})

	return posts
}

func (y *YCombinator) toArticle(post listedPost, content string) *harvest.Article {
	return &harvest.Article{
		Title:         post.title,
		Content:       content,
		URL:           post.url,
		PublishedDate: post.published,
		Source:        y.Name(),
		Categories:    []string{},
		ScrapedAt:     y.Now().UTC(),
		Metadata: map[string]any{
			"points":       post.points,
			"commentCount": post.comments,
			"domain":       post.domain,
		},
	}
}

func matchesKeywords(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range ycKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
