package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/startuppulse/harvest"
	"github.com/startuppulse/harvest/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportToPath(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain title", "Weekly Startup Brief", "2024-03-01-weekly-startup-brief.html"},
		{"punctuation collapses", "Market Insights Report - March 1, 2024", "2024-03-01-market-insights-report-march-1-2024.html"},
		{"empty name falls back", "!!!", "2024-03-01-report.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.ReportToPath(tt.in, created))
		})
	}
}

func TestWriter_WriteReport(t *testing.T) {
	t.Parallel()

	t.Run("writes the report HTML", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "reports")
		w := fs.NewWriter(dir)

		path, err := w.WriteReport(&harvest.Report{
			ID:        "r1",
			Name:      "Weekly Brief",
			HTML:      "<h1>Weekly Brief</h1>",
			CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "2024-03-01-weekly-brief.html"), path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<h1>Weekly Brief</h1>", string(content))
	})

	t.Run("rejects an invalid report", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())
		_, err := w.WriteReport(&harvest.Report{Name: "No Body"})
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}
