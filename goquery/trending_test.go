package goquery_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/startuppulse/harvest"
	"github.com/startuppulse/harvest/goquery"
	"github.com/startuppulse/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const trendingPage = `<html><body>
<article class="Box-row">
  <h2 class="h3 lh-condensed"><a href="/golang/go"> golang / go </a></h2>
  <p class="col-9 color-fg-muted my-1 pr-4">The Go programming language</p>
  <span itemprop="programmingLanguage">Go</span>
  <a href="/golang/go/stargazers">120,345</a>
  <a href="/golang/go/forks">17,890</a>
  <span class="d-inline-block float-sm-right">321 stars today</span>
  <a data-hovercard-type="user" href="/alice"><img alt="@alice" src="https://avatars.example.com/alice.png"></a>
  <a data-hovercard-type="user" href="/bob"><img alt="@bob" src="https://avatars.example.com/bob.png"></a>
</article>
<article class="Box-row">
  <h2 class="h3 lh-condensed"><a href="/acme/tool"> acme / tool </a></h2>
  <span itemprop="programmingLanguage">Rust</span>
  <a href="/acme/tool/stargazers">900</a>
  <a href="/acme/tool/forks">45</a>
</article>
</body></html>`

func TestTrending_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("parses repository cards", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				assert.Equal(t, goquery.TrendingURL, url)
				return trendingPage, nil
			},
		}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		s := goquery.NewTrending(fetcher, discardLogger())
		s.Now = func() time.Time { return now }

		articles, err := s.Scrape(context.Background())
		require.NoError(t, err)
		require.Len(t, articles, 2)

		first := articles[0]
		assert.Equal(t, "golang/go", first.Title)
		assert.Equal(t, "https://github.com/golang/go", first.URL)
		assert.Equal(t, "The Go programming language", first.Content)
		assert.Equal(t, "https://avatars.example.com/alice.png", first.ImageURL)
		assert.Equal(t, "github-trending", first.Source)
		assert.Equal(t, now, first.PublishedDate)

		assert.Equal(t, "golang", first.Metadata["owner"])
		assert.Equal(t, "go", first.Metadata["name"])
		assert.Equal(t, "Go", first.Metadata["language"])
		assert.Equal(t, 120345, first.Metadata["stars"])
		assert.Equal(t, 17890, first.Metadata["forks"])
		assert.Equal(t, 321, first.Metadata["todayStars"])

		contributors, ok := first.Metadata["contributors"].([]goquery.Contributor)
		require.True(t, ok)
		require.Len(t, contributors, 2)
		assert.Equal(t, "alice", contributors[0].Username)
	})

	t.Run("card without description uses repo name as content", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return trendingPage, nil
			},
		}
		s := goquery.NewTrending(fetcher, discardLogger())

		articles, err := s.Scrape(context.Background())
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "acme/tool", articles[1].Content)
		assert.Equal(t, 0, articles[1].Metadata["todayStars"])
		assert.Empty(t, articles[1].ImageURL)
	})

	t.Run("fetch failure fails the source", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("navigation timeout")
			},
		}
		s := goquery.NewTrending(fetcher, discardLogger())

		articles, err := s.Scrape(context.Background())
		assert.Nil(t, articles)
		require.Error(t, err)
		assert.Equal(t, harvest.EUNAVAILABLE, harvest.ErrorCode(err))
	})

	t.Run("page without cards yields empty list", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><body>rate limited</body></html>", nil
			},
		}
		s := goquery.NewTrending(fetcher, discardLogger())

		articles, err := s.Scrape(context.Background())
		require.NoError(t, err)
		assert.Empty(t, articles)
	})
}
