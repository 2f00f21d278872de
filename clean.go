package harvest

import (
	"regexp"
	"strings"
)

// Markup cleaning is deliberately regex-based rather than DOM-based: the
// inputs are feed fragments and scraped markup that are frequently
// unbalanced or truncated, and a parser round-trip would re-encode entities
// outside the fixed set below. Best effort, never panics.
var (
	scriptRe  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleRe   = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	pOpenRe   = regexp.MustCompile(`(?i)<p(?:\s[^>]*)?>`)
	brRe      = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	cdataRe   = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	hspaceRe  = regexp.MustCompile(`[ \t\r\f\v]+`)
	lineEdgRe = regexp.MustCompile(`(?m)^ +| +$`)
	blanksRe  = regexp.MustCompile(`\n{3,}`)
	imgSrcRe  = regexp.MustCompile(`(?i)<img[^>]+src="([^">]+)"`)
	srcAttrRe = regexp.MustCompile(`(?i)src="([^"]+)"`)
	wspaceRe  = regexp.MustCompile(`\s+`)

	entityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
)

// CleanHTML converts an HTML fragment to plain text. Script and style
// blocks are dropped with their contents, comments are removed, paragraph
// and break tags become newlines before the remaining tags are stripped,
// and the fixed entity set is decoded. Whitespace is normalized so that
// runs of horizontal whitespace collapse to one space and three or more
// newlines collapse to a single blank line.
//
// CleanHTML(CleanHTML(x)) == CleanHTML(x) for any feed content x. Text
// whose entities decode into markup (e.g. "&lt;b&gt;") is the exception:
// decoding runs after tag stripping, so the decoded tags survive one pass
// and are stripped by a second.
func CleanHTML(html string) string {
	if html == "" {
		return ""
	}

	text := scriptRe.ReplaceAllString(html, "")
	text = styleRe.ReplaceAllString(text, "")
	text = commentRe.ReplaceAllString(text, "")
	text = StripCDATA(text)

	// Structure-preserving conversions must happen before the generic tag
	// strip, which is lossy.
	text = pOpenRe.ReplaceAllString(text, "\n\n")
	text = brRe.ReplaceAllString(text, "\n")
	text = tagRe.ReplaceAllString(text, "")

	text = entityReplacer.Replace(text)

	text = hspaceRe.ReplaceAllString(text, " ")
	text = lineEdgRe.ReplaceAllString(text, "")
	text = blanksRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// StripCDATA unwraps CDATA sections, keeping their payload, and removes
// any stray markers left by truncated sections.
func StripCDATA(s string) string {
	if s == "" {
		return ""
	}
	s = cdataRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "<![CDATA[", "")
	s = strings.ReplaceAll(s, "[CDATA[", "")
	s = strings.ReplaceAll(s, "]]>", "")
	return s
}

// CollapseWhitespace collapses all whitespace runs to a single space and
// trims the result. Used for single-line fields like titles and authors.
func CollapseWhitespace(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(wspaceRe.ReplaceAllString(s, " "))
}

// ExtractImageSrc opportunistically pulls the first src="..." attribute out
// of a raw HTML fragment. Feed sources without a structured image field
// often carry an inline <img> in the description.
func ExtractImageSrc(html string) string {
	if m := imgSrcRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	if m := srcAttrRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}
