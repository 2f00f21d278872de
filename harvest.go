// Package harvest ingests startup/tech news from heterogeneous online
// sources (RSS feeds, raw feed markup, rendered pages, trending lists),
// normalizes every source's representation into a canonical Article,
// persists the records with URL-level deduplication, and generates
// AI-written market reports from the stored batch.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, rod/, gemini/).
package harvest
