package harvest

import (
	"context"
	"time"
)

// Report is an AI-composed market insights document generated from a
// stored article batch.
type Report struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "report name required")
	}
	if r.HTML == "" {
		return Errorf(EINVALID, "report body required")
	}
	return nil
}

// ReportService represents a service for persisting and listing reports.
type ReportService interface {
	// CreateReport stores a generated report.
	CreateReport(ctx context.Context, report *Report) error

	// FindReports lists stored reports, newest first.
	FindReports(ctx context.Context) ([]*Report, error)
}

// ExportedArticle is the reduced article shape frozen into an export
// snapshot and handed to the summarization step.
type ExportedArticle struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Export is a frozen snapshot of the stored article batch taken at export
// time. Reports are always generated from the latest export, not from the
// live table, so a concurrent pipeline run cannot shift the report input.
type Export struct {
	ID        string            `json:"id"`
	Articles  []ExportedArticle `json:"articles"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ExportService represents a service for article export snapshots.
type ExportService interface {
	// CreateExport snapshots the given articles.
	CreateExport(ctx context.Context, articles []ExportedArticle) (*Export, error)

	// FindLatestExport returns the most recent snapshot.
	// Returns ENOTFOUND if no export exists.
	FindLatestExport(ctx context.Context) (*Export, error)

	// DeleteAllExports removes every stored snapshot.
	DeleteAllExports(ctx context.Context) error
}

// Summarizer is the opaque generative text transform used by report
// generation. No structural contract exists on the output beyond "text".
type Summarizer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TokenCounter estimates the token footprint of a prompt before it is
// sent to a model, so oversized exports can be trimmed first.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// Reporter generates a market insights report from the latest export
// and stores it.
type Reporter interface {
	GenerateReport(ctx context.Context) (*Report, error)
}
