package goquery

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/startuppulse/harvest"
)

// TrendingURL is the GitHub trending page scraped by Trending.
const TrendingURL = "https://github.com/trending"

var _ harvest.Scraper = (*Trending)(nil)

// Contributor is a repository contributor shown on a trending card.
type Contributor struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Trending scrapes the GitHub trending page. Each trending repository
// becomes one article, published at scrape time since the page reflects
// the current day.
type Trending struct {
	fetcher harvest.Fetcher
	logger  *slog.Logger

	// Now is overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

// NewTrending creates the GitHub trending scraper.
func NewTrending(fetcher harvest.Fetcher, logger *slog.Logger) *Trending {
	return &Trending{
		fetcher: fetcher,
		logger:  logger,
		Now:     time.Now,
	}
}

// Name returns the source identifier.
func (t *Trending) Name() string {
	return "github-trending"
}

// Scrape fetches the trending page and returns one article per
// repository card, in page order.
func (t *Trending) Scrape(ctx context.Context) ([]*harvest.Article, error) {
	rawHTML, err := t.fetcher.Fetch(ctx, TrendingURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EUNAVAILABLE, "fetching github trending: %v", err)
	}

	articles, err := t.parse(rawHTML)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		t.logger.Warn("no repository cards found on trending page", "source", t.Name())
	}
	return articles, nil
}

func (t *Trending) parse(rawHTML string) ([]*harvest.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "parsing trending page: %v", err)
	}

	now := t.Now().UTC()
	articles := make([]*harvest.Article, 0)

	doc.Find("article.Box-row").Each(func(_ int, card *goquery.Selection) {
		href := card.Find("h2 a").First().AttrOr("href", "")
		href = strings.TrimPrefix(strings.TrimSpace(href), "/")
		if href == "" {
			return
		}
		owner, name, found := strings.Cut(href, "/")
		if !found {
			return
		}

		description := harvest.CollapseWhitespace(card.Find("p").First().Text())
		language := strings.TrimSpace(card.Find(`[itemprop="programmingLanguage"]`).First().Text())
		stars := parseCount(card.Find(`a[href$="/stargazers"]`).First().Text())
		forks := parseCount(card.Find(`a[href$="/forks"]`).First().Text())
		todayStars := firstNumber(card.Find("span.d-inline-block.float-sm-right").First().Text())

		var contributors []Contributor
		card.Find(`a[data-hovercard-type="user"] img`).Each(func(_ int, img *goquery.Selection) {
			contributors = append(contributors, Contributor{
				Username: strings.TrimPrefix(img.AttrOr("alt", ""), "@"),
				Avatar:   img.AttrOr("src", ""),
			})
		})

		var imageURL string
		if len(contributors) > 0 {
			imageURL = contributors[0].Avatar
		}

		title := owner + "/" + name
		content := description
		if content == "" {
			content = title
		}

		articles = append(articles, &harvest.Article{
			Title:         title,
			Content:       content,
			URL:           "https://github.com/" + href,
			ImageURL:      imageURL,
			PublishedDate: now,
			Source:        t.Name(),
			Categories:    []string{},
			ScrapedAt:     now,
			Metadata: map[string]any{
				"owner":        owner,
				"name":         name,
				"language":     language,
				"stars":        stars,
				"forks":        forks,
				"todayStars":   todayStars,
				"contributors": contributors,
			},
		})
	})

	return articles, nil
}

var digitsRe = regexp.MustCompile(`\d+`)

// parseCount parses numbers like "12,345" as shown on star and fork links.
func parseCount(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// firstNumber pulls the leading integer out of text like "321 stars today".
func firstNumber(s string) int {
	m := digitsRe.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}
