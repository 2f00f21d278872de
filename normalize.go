package harvest

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Normalizer maps extractor output into the canonical Article shape.
// The zero value is usable; Now is overridable for tests.
type Normalizer struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Normalize converts a RawItem into a canonical Article for the given
// source. HTML-bearing fields are cleaned, the date is coerced with a
// best-effort parser falling back to the current time, and missing
// required fields reject the item with EINVALID. Rejection never panics
// and never aborts a batch; the caller skips the item and continues.
func (n *Normalizer) Normalize(item RawItem, source string) (*Article, error) {
	if source == "" {
		return nil, Errorf(EINVALID, "source name required")
	}

	title := CollapseWhitespace(StripCDATA(item.Title))
	if title == "" {
		return nil, Errorf(EINVALID, "item missing title")
	}

	// content:encoded is preferred over description when both exist; the
	// description is usually a teaser of the full body.
	content := CleanHTML(item.Content)
	if content == "" {
		content = CleanHTML(item.Description)
	}
	if content == "" {
		return nil, Errorf(EINVALID, "item missing content")
	}

	url := strings.TrimSpace(item.Link)
	if url == "" {
		return nil, Errorf(EINVALID, "item missing url")
	}

	article := &Article{
		Title:         title,
		Content:       content,
		URL:           url,
		ImageURL:      n.imageURL(item),
		PublishedDate: n.coerceDate(item.PubDate),
		Source:        source,
		Author:        CollapseWhitespace(StripCDATA(item.Creator)),
		Categories:    normalizeCategories(item.Categories),
	}

	if item.GUID != "" || item.Description != "" || len(item.Extra) > 0 {
		article.Metadata = make(map[string]any, len(item.Extra)+2)
		if item.GUID != "" {
			article.Metadata["guid"] = item.GUID
		}
		if item.Description != "" {
			article.Metadata["description"] = item.Description
		}
		for k, v := range item.Extra {
			article.Metadata[k] = v
		}
	}

	return article, nil
}

// coerceDate parses the raw date string with a lenient parser. Unparseable
// or empty dates fall back to the current time; the result is always a
// valid timestamp, never a zero value.
func (n *Normalizer) coerceDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t.UTC()
		}
	}
	return n.now().UTC()
}

func (n *Normalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

// imageURL prefers the structured image field and falls back to an inline
// src attribute inside the raw description.
func (n *Normalizer) imageURL(item RawItem) string {
	if item.ImageURL != "" {
		return item.ImageURL
	}
	return ExtractImageSrc(item.Description)
}

// normalizeCategories strips markup artifacts from each category and drops
// empties, preserving source order. Missing categories yield an empty
// (non-nil) list so persisted JSON is always an array.
func normalizeCategories(cats []string) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		if cleaned := CollapseWhitespace(StripCDATA(c)); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
