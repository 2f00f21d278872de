// Package trafilatura adapts go-trafilatura for pulling article text out
// of full web pages fetched from external news sites.
package trafilatura

import (
	"bytes"
	"errors"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/startuppulse/harvest"
	"golang.org/x/net/html"
)

// Ensure Extractor implements harvest.ContentExtractor at compile time.
var _ harvest.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main article content from HTML.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var text string
	if result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		text = harvest.CleanHTML(contentHTML)
	}

	return &harvest.ExtractResult{
		Title: result.Metadata.Title,
		Text:  text,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
