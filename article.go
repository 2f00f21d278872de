package harvest

import (
	"context"
	"strings"
	"time"
)

// Article is the canonical, normalized record persisted to the store.
// Every extractor, whatever its input shape, produces Articles.
type Article struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	URL           string         `json:"url"`
	ImageURL      string         `json:"imageUrl"`
	PublishedDate time.Time      `json:"publishedDate"`
	Source        string         `json:"source"`
	Author        string         `json:"author"`
	Categories    []string       `json:"categories"`
	Metadata      map[string]any `json:"metadata"`
	ContentHash   string         `json:"contentHash"`
	ScrapedAt     time.Time      `json:"scrapedAt"`
}

// Validate returns an error if the article is missing a required field.
// Title, content, and url are required; everything else is optional.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return Errorf(EINVALID, "article title required")
	}
	if strings.TrimSpace(a.Content) == "" {
		return Errorf(EINVALID, "article content required")
	}
	if strings.TrimSpace(a.URL) == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Source == "" {
		return Errorf(EINVALID, "article source required")
	}
	return nil
}

// DeduplicateByURL collapses in-batch duplicates to the last-seen version,
// preserving first-seen order. The URL is the only identity considered;
// near-duplicate titles across sources are intentionally kept.
func DeduplicateByURL(articles []*Article) []*Article {
	seen := make(map[string]int, len(articles))
	out := make([]*Article, 0, len(articles))
	for _, a := range articles {
		if idx, ok := seen[a.URL]; ok {
			out[idx] = a
			continue
		}
		seen[a.URL] = len(out)
		out = append(out, a)
	}
	return out
}

// ArticleService represents a service for persisting and querying articles.
type ArticleService interface {
	// SaveArticles persists a batch of articles with insert-if-absent
	// semantics keyed on URL. Returns the number of rows actually written;
	// conflicting URLs are silently skipped, never updated.
	SaveArticles(ctx context.Context, articles []*Article) (int, error)

	// FindArticles retrieves articles matching the filter, newest first
	// by published date unless the filter says otherwise.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteAllArticles removes every stored article. Used before a full
	// pipeline re-run.
	DeleteAllArticles(ctx context.Context) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	Source *string `json:"source"`
	URL    *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
