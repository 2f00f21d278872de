package goquery_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/startuppulse/harvest"
	"github.com/startuppulse/harvest/goquery"
	"github.com/startuppulse/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ycRow(id, href, title, site, score, comments string) string {
	return `<tr class="athing" id="` + id + `"><td class="title"><span class="titleline">` +
		`<a href="` + href + `">` + title + `</a>` +
		` <span class="sitebit comhead">(<span class="sitestr">` + site + `</span>)</span></span></td></tr>` +
		`<tr><td class="subtext"><span class="score">` + score + ` points</span> by someone ` +
		`<span class="age" title="2024-01-02T08:00:00 1704182400"><a href="item?id=` + id + `">3 hours ago</a></span>` +
		` | <a href="item?id=` + id + `">` + comments + ` comments</a></td></tr>`
}

func ycListing(rows ...string) string {
	return "<html><body><table>" + strings.Join(rows, "") + "</table></body></html>"
}

func TestYCombinator_Scrape(t *testing.T) {
	t.Parallel()

	detailBody := strings.Repeat("A long paragraph about the funding round and the company plans. ", 5)
	detailPage := "<html><body><article><p>" + detailBody + "</p></article></body></html>"

	t.Run("filters, sorts and fetches detail content", func(t *testing.T) {
		t.Parallel()

		listing := ycListing(
			ycRow("1", "https://blog.example.com/acme", "Acme raises $5M seed", "blog.example.com", "40", "12"),
			ycRow("2", "https://github.com/acme/tool", "Show HN: A startup tool", "github.com", "90", "30"),
			ycRow("3", "https://example.com/recipes", "My favorite pancake recipes", "example.com", "500", "200"),
		)

		var detailFetches []string
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if strings.Contains(url, "news.ycombinator.com") {
					if strings.HasSuffix(url, "/newest") {
						return listing, nil
					}
					return ycListing(), nil
				}
				detailFetches = append(detailFetches, url)
				return detailPage, nil
			},
		}

		s := goquery.NewYCombinator(fetcher, nil, discardLogger())
		s.Now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

		articles, err := s.Scrape(context.Background())
		require.NoError(t, err)
		require.Len(t, articles, 2, "pancake post filtered out by keywords")

		// Sorted by points: the github post (90) before the blog post (40).
		first := articles[0]
		assert.Equal(t, "Show HN: A startup tool", first.Title)
		assert.Equal(t, "[Link to github.com]", first.Content, "skip domains get a placeholder")
		assert.Equal(t, 90, first.Metadata["points"])
		assert.Equal(t, 30, first.Metadata["commentCount"])
		assert.Equal(t, "github.com", first.Metadata["domain"])

		second := articles[1]
		assert.Equal(t, "Acme raises $5M seed", second.Title)
		assert.Contains(t, second.Content, "funding round")
		assert.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), second.PublishedDate)
		assert.Equal(t, "ycombinator", second.Source)

		assert.Equal(t, []string{"https://blog.example.com/acme"}, detailFetches)
	})

	t.Run("deduplicates posts across sections", func(t *testing.T) {
		t.Parallel()

		listing := ycListing(
			ycRow("1", "https://github.com/acme/tool", "Launch of our startup", "github.com", "10", "2"),
		)
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return listing, nil
			},
		}

		s := goquery.NewYCombinator(fetcher, nil, discardLogger())
		articles, err := s.Scrape(context.Background())
		require.NoError(t, err)
		assert.Len(t, articles, 1, "same post on every section appears once")
	})

	t.Run("failed section is skipped", func(t *testing.T) {
		t.Parallel()

		listing := ycListing(
			ycRow("1", "https://github.com/acme/tool", "Launch of our startup", "github.com", "10", "2"),
		)
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if strings.HasSuffix(url, "/newest") {
					return "", errors.New("blocked")
				}
				return listing, nil
			},
		}

		s := goquery.NewYCombinator(fetcher, nil, discardLogger())
		articles, err := s.Scrape(context.Background())
		require.NoError(t, err)
		assert.Len(t, articles, 1)
	})

	t.Run("all sections failing fails the source", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("blocked")
			},
		}

		s := goquery.NewYCombinator(fetcher, nil, discardLogger())
		articles, err := s.Scrape(context.Background())
		assert.Nil(t, articles)
		require.Error(t, err)
		assert.Equal(t, harvest.EUNAVAILABLE, harvest.ErrorCode(err))
	})

	t.Run("failed detail fetch becomes placeholder content", func(t *testing.T) {
		t.Parallel()

		listing := ycListing(
			ycRow("1", "https://paywalled.example.com/story", "Acme raises $5M seed", "paywalled.example.com", "40", "12"),
		)
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if strings.Contains(url, "news.ycombinator.com") {
					if strings.HasSuffix(url, "/newest") {
						return listing, nil
					}
					return ycListing(), nil
				}
				return "", errors.New("403 forbidden")
			},
		}

		s := goquery.NewYCombinator(fetcher, nil, discardLogger())
		articles, err := s.Scrape(context.Background())
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Contains(t, articles[0].Content, "[Error accessing content")
	})
}
