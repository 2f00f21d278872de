package harvest

// RawItem is a source-specific intermediate representation: field values
// exactly as extracted, possibly still carrying CDATA markers, inline HTML,
// and unparsed date strings. A RawItem is owned by the extractor that
// created it, consumed by the Normalizer, and never persisted.
type RawItem struct {
	Title       string
	Link        string
	Description string
	Content     string
	PubDate     string
	Creator     string
	ImageURL    string
	GUID        string
	Categories  []string

	// Extra holds source-specific fields that survive into
	// Article.Metadata untouched (repo stats, points, funding data).
	Extra map[string]any
}
