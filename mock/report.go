package mock

import (
	"context"

	"github.com/startuppulse/harvest"
)

var _ harvest.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of harvest.ReportService.
type ReportService struct {
	CreateReportFn func(ctx context.Context, report *harvest.Report) error
	FindReportsFn  func(ctx context.Context) ([]*harvest.Report, error)
}

func (s *ReportService) CreateReport(ctx context.Context, report *harvest.Report) error {
	return s.CreateReportFn(ctx, report)
}

func (s *ReportService) FindReports(ctx context.Context) ([]*harvest.Report, error) {
	return s.FindReportsFn(ctx)
}

var _ harvest.ExportService = (*ExportService)(nil)

// ExportService is a mock implementation of harvest.ExportService.
type ExportService struct {
	CreateExportFn     func(ctx context.Context, articles []harvest.ExportedArticle) (*harvest.Export, error)
	FindLatestExportFn func(ctx context.Context) (*harvest.Export, error)
	DeleteAllExportsFn func(ctx context.Context) error
}

func (s *ExportService) CreateExport(ctx context.Context, articles []harvest.ExportedArticle) (*harvest.Export, error) {
	return s.CreateExportFn(ctx, articles)
}

func (s *ExportService) FindLatestExport(ctx context.Context) (*harvest.Export, error) {
	return s.FindLatestExportFn(ctx)
}

func (s *ExportService) DeleteAllExports(ctx context.Context) error {
	return s.DeleteAllExportsFn(ctx)
}

var _ harvest.Reporter = (*Reporter)(nil)

// Reporter is a mock implementation of harvest.Reporter.
type Reporter struct {
	GenerateReportFn func(ctx context.Context) (*harvest.Report, error)
}

func (r *Reporter) GenerateReport(ctx context.Context) (*harvest.Report, error) {
	return r.GenerateReportFn(ctx)
}

var _ harvest.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of harvest.Summarizer.
type Summarizer struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

func (s *Summarizer) Generate(ctx context.Context, prompt string) (string, error) {
	return s.GenerateFn(ctx, prompt)
}
