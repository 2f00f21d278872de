// Package goquery provides the page-scraped extractor family: sources
// without feeds, scraped from rendered HTML with CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/startuppulse/harvest"
)

// minContentLength is the threshold below which an extraction attempt is
// considered to have failed and the next strategy is tried.
const minContentLength = 100

// containerSelectors are tried in order when looking for the main
// article container on a detail page.
var containerSelectors = []string{
	"article",
	".article-content",
	".post-content",
	".article-body",
	"main",
}

// ContentPicker extracts article text from a detail page using a ladder
// of strategies: the content extractor first, then known article
// containers, then substantial paragraphs.
type ContentPicker struct {
	extractor harvest.ContentExtractor
}

// NewContentPicker creates a picker. The extractor may be nil, in which
// case only the selector strategies run.
func NewContentPicker(extractor harvest.ContentExtractor) *ContentPicker {
	return &ContentPicker{extractor: extractor}
}

// Pick returns the best plain-text content found in rawHTML, or the
// empty string when every strategy comes up short.
func (p *ContentPicker) Pick(rawHTML string) string {
	if p.extractor != nil {
		if result, err := p.extractor.Extract(rawHTML); err == nil {
			if text := strings.TrimSpace(result.Text); len(text) >= minContentLength {
				return text
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	for _, selector := range containerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := joinParagraphs(sel, 0)
		if len(text) >= minContentLength {
			return text
		}
	}

	// Last resort: every substantial paragraph on the page.
	return joinParagraphs(doc.Selection, 50)
}

// joinParagraphs collects the text of each p element under sel that is
// longer than minLen, joined with blank lines.
func joinParagraphs(sel *goquery.Selection, minLen int) string {
	var parts []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := harvest.CollapseWhitespace(p.Text())
		if len(text) > minLen {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}
