package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/startuppulse/harvest"
)

// Ensure LoggingScraper implements harvest.Scraper.
var _ harvest.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with per-run logging.
type LoggingScraper struct {
	next   harvest.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next harvest.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Name delegates to the wrapped scraper.
func (s *LoggingScraper) Name() string {
	return s.next.Name()
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(ctx context.Context) (articles []*harvest.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Info("scrape",
			"source", s.next.Name(),
			"articles", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx)
}
