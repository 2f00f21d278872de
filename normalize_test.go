package harvest_test

import (
	"testing"
	"time"

	"github.com/startuppulse/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	n := &harvest.Normalizer{Now: func() time.Time { return now }}

	t.Run("maps a complete item", func(t *testing.T) {
		t.Parallel()

		item := harvest.RawItem{
			Title:       "<![CDATA[Acme raises $5M]]>",
			Link:        "https://example.com/acme ",
			Description: "<p>Short teaser</p>",
			Content:     "<p>Acme, a robotics startup, raised a <b>$5M</b> seed round.</p>",
			PubDate:     "Mon, 01 Jan 2024 10:00:00 GMT",
			Creator:     "Jane Writer",
			Categories:  []string{"Startups", "<![CDATA[Funding]]>", " "},
			GUID:        "https://example.com/?p=42",
		}

		article, err := n.Normalize(item, "strictlyvc")
		require.NoError(t, err)

		assert.Equal(t, "Acme raises $5M", article.Title)
		assert.Equal(t, "Acme, a robotics startup, raised a $5M seed round.", article.Content)
		assert.Equal(t, "https://example.com/acme", article.URL)
		assert.Equal(t, "strictlyvc", article.Source)
		assert.Equal(t, "Jane Writer", article.Author)
		assert.Equal(t, []string{"Startups", "Funding"}, article.Categories)
		assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), article.PublishedDate)
		assert.Equal(t, "https://example.com/?p=42", article.Metadata["guid"])
	})

	t.Run("falls back from content to description", func(t *testing.T) {
		t.Parallel()

		item := harvest.RawItem{
			Title:       "Title",
			Link:        "https://example.com/a",
			Description: "<p>Only a description</p>",
		}

		article, err := n.Normalize(item, "techcrunch")
		require.NoError(t, err)
		assert.Equal(t, "Only a description", article.Content)
	})

	t.Run("unparseable date falls back to now", func(t *testing.T) {
		t.Parallel()

		item := harvest.RawItem{
			Title:       "Title",
			Link:        "https://example.com/a",
			Description: "body",
			PubDate:     "not-a-date",
		}

		article, err := n.Normalize(item, "techcrunch")
		require.NoError(t, err)
		assert.Equal(t, now, article.PublishedDate)
		assert.False(t, article.PublishedDate.IsZero())
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			item harvest.RawItem
		}{
			{"missing title", harvest.RawItem{Link: "https://x.com/a", Description: "body"}},
			{"missing content", harvest.RawItem{Title: "t", Link: "https://x.com/a"}},
			{"missing url", harvest.RawItem{Title: "t", Description: "body"}},
			{"whitespace title", harvest.RawItem{Title: "  <![CDATA[]]> ", Link: "https://x.com/a", Description: "body"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				article, err := n.Normalize(tt.item, "techcrunch")
				assert.Nil(t, article)
				require.Error(t, err)
				assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
			})
		}
	})

	t.Run("image falls back to src in description", func(t *testing.T) {
		t.Parallel()

		item := harvest.RawItem{
			Title:       "Title",
			Link:        "https://example.com/a",
			Description: `text <img src="https://cdn.example.com/pic.jpg"> more`,
		}

		article, err := n.Normalize(item, "chinatechnews")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/pic.jpg", article.ImageURL)
	})

	t.Run("missing categories yield empty list", func(t *testing.T) {
		t.Parallel()

		article, err := n.Normalize(harvest.RawItem{
			Title: "t", Link: "https://x.com/a", Description: "body",
		}, "coindesk")
		require.NoError(t, err)
		assert.NotNil(t, article.Categories)
		assert.Empty(t, article.Categories)
	})

	t.Run("extra fields pass through metadata", func(t *testing.T) {
		t.Parallel()

		article, err := n.Normalize(harvest.RawItem{
			Title: "t", Link: "https://x.com/a", Description: "body",
			Extra: map[string]any{"points": 120, "domain": "example.com"},
		}, "ycombinator")
		require.NoError(t, err)
		assert.Equal(t, 120, article.Metadata["points"])
		assert.Equal(t, "example.com", article.Metadata["domain"])
	})
}

func TestDeduplicateByURL(t *testing.T) {
	t.Parallel()

	t.Run("keeps last seen version per URL", func(t *testing.T) {
		t.Parallel()

		first := &harvest.Article{URL: "https://x.com/a", Title: "old"}
		second := &harvest.Article{URL: "https://x.com/a", Title: "new"}
		other := &harvest.Article{URL: "https://x.com/b", Title: "other"}

		out := harvest.DeduplicateByURL([]*harvest.Article{first, other, second})
		require.Len(t, out, 2)
		assert.Equal(t, "new", out[0].Title)
		assert.Equal(t, "other", out[1].Title)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, harvest.DeduplicateByURL(nil))
	})
}

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	valid := harvest.Article{
		Title:   "t",
		Content: "c",
		URL:     "https://x.com/a",
		Source:  "techcrunch",
	}
	assert.NoError(t, valid.Validate())

	missingURL := valid
	missingURL.URL = " "
	assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(missingURL.Validate()))
}
