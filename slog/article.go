// Package slog provides logging decorators for the core service
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/startuppulse/harvest"
)

// Ensure LoggingArticleService implements harvest.ArticleService.
var _ harvest.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with operational logging.
type LoggingArticleService struct {
	next   harvest.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next harvest.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// SaveArticles delegates to the wrapped service and logs the outcome.
func (s *LoggingArticleService) SaveArticles(ctx context.Context, articles []*harvest.Article) (saved int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("save articles",
			"submitted", len(articles),
			"saved", saved,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveArticles(ctx, articles)
}

// FindArticles delegates to the wrapped service and logs the outcome.
func (s *LoggingArticleService) FindArticles(ctx context.Context, filter harvest.ArticleFilter) (articles []*harvest.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find articles",
			"source", filter.Source,
			"count", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticles(ctx, filter)
}

// DeleteAllArticles delegates to the wrapped service and logs the outcome.
func (s *LoggingArticleService) DeleteAllArticles(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete all articles",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteAllArticles(ctx)
}
