// Package fs provides file-based output for generated reports.
package fs

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/startuppulse/harvest"
)

// ReportToPath converts a report name and creation date to a file name.
// Example: "Market Insights Report - March 1, 2024" created 2024-03-01 →
// 2024-03-01-market-insights-report-march-1-2024.html
func ReportToPath(name string, createdAt time.Time) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "report"
	}
	return createdAt.Format("2006-01-02") + "-" + slug + ".html"
}

// Writer writes reports as HTML files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteReport writes a report to disk and returns the file path.
func (w *Writer) WriteReport(report *harvest.Report) (string, error) {
	if err := report.Validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, ReportToPath(report.Name, report.CreatedAt))
	if err := os.WriteFile(fullPath, []byte(report.HTML), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
