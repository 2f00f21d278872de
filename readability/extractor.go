// Package readability adapts go-readability for pulling article text out
// of press-release style pages where boilerplate dominates the markup.
package readability

import (
	"errors"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/startuppulse/harvest"
)

// Ensure Extractor implements harvest.ContentExtractor at compile time.
var _ harvest.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw page HTML and returns the article title and its
// main content as plain text.
func (e *Extractor) Extract(rawHTML string) (*harvest.ExtractResult, error) {
	if rawHTML == "" {
		return nil, errors.New("empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &harvest.ExtractResult{
		Title: article.Title,
		Text:  harvest.CleanHTML(article.Content),
	}, nil
}
