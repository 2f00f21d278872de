package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/startuppulse/harvest"
	"github.com/startuppulse/harvest/mock"
	harvestslog "github.com/startuppulse/harvest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("logs source and article count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Scraper{
			NameFn: func() string { return "techcrunch" },
			ScrapeFn: func(ctx context.Context) ([]*harvest.Article, error) {
				return []*harvest.Article{{}, {}, {}}, nil
			},
		}

		s := harvestslog.NewLoggingScraper(inner, logger)
		assert.Equal(t, "techcrunch", s.Name())

		articles, err := s.Scrape(context.Background())
		require.NoError(t, err)
		assert.Len(t, articles, 3)

		output := buf.String()
		assert.Contains(t, output, "scrape")
		assert.Contains(t, output, "source=techcrunch")
		assert.Contains(t, output, "articles=3")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Scraper{
			NameFn: func() string { return "pitchbook" },
			ScrapeFn: func(ctx context.Context) ([]*harvest.Article, error) {
				return nil, errors.New("listing unreachable")
			},
		}

		s := harvestslog.NewLoggingScraper(inner, logger)
		_, err := s.Scrape(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"listing unreachable\"")
	})
}
