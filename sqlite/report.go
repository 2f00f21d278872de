package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/startuppulse/harvest"
)

// Compile-time interface verification.
var (
	_ harvest.ReportService = (*ReportService)(nil)
	_ harvest.ExportService = (*ExportService)(nil)
)

// ReportService implements harvest.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport stores a generated report.
func (s *ReportService) CreateReport(ctx context.Context, report *harvest.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	report.ID = uuid.New().String()
	report.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, name, html, created_at)
		VALUES (?, ?, ?, ?)
	`, report.ID, report.Name, report.HTML, report.CreatedAt.Format(time.RFC3339))

	return err
}

// FindReports lists stored reports, newest first.
func (s *ReportService) FindReports(ctx context.Context) ([]*harvest.Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, html, created_at
		FROM reports
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*harvest.Report
	for rows.Next() {
		var r harvest.Report
		var createdAt string

		if err := rows.Scan(&r.ID, &r.Name, &r.HTML, &createdAt); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		reports = append(reports, &r)
	}

	return reports, rows.Err()
}

// ExportService implements harvest.ExportService using SQLite.
type ExportService struct {
	db *DB
}

// NewExportService creates a new ExportService.
func NewExportService(db *DB) *ExportService {
	return &ExportService{db: db}
}

// CreateExport snapshots the given articles.
func (s *ExportService) CreateExport(ctx context.Context, articles []harvest.ExportedArticle) (*harvest.Export, error) {
	if articles == nil {
		articles = []harvest.ExportedArticle{}
	}

	payload, err := json.Marshal(articles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	export := &harvest.Export{
		ID:        uuid.New().String(),
		Articles:  articles,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO article_exports (id, articles, created_at)
		VALUES (?, ?, ?)
	`, export.ID, string(payload), export.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	return export, nil
}

// FindLatestExport returns the most recent snapshot.
func (s *ExportService) FindLatestExport(ctx context.Context) (*harvest.Export, error) {
	var export harvest.Export
	var payload, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, articles, created_at
		FROM article_exports
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`).Scan(&export.ID, &payload, &createdAt)

	if err == sql.ErrNoRows {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "no export found")
	}
	if err != nil {
		return nil, err
	}

	if export.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &export.Articles); err != nil {
		return nil, fmt.Errorf("failed to decode export: %w", err)
	}

	return &export, nil
}

// DeleteAllExports removes every stored snapshot.
func (s *ExportService) DeleteAllExports(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM article_exports")
	return err
}
