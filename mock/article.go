package mock

import (
	"context"

	"github.com/startuppulse/harvest"
)

var _ harvest.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of harvest.ArticleService.
type ArticleService struct {
	SaveArticlesFn      func(ctx context.Context, articles []*harvest.Article) (int, error)
	FindArticlesFn      func(ctx context.Context, filter harvest.ArticleFilter) ([]*harvest.Article, error)
	DeleteAllArticlesFn func(ctx context.Context) error
}

func (s *ArticleService) SaveArticles(ctx context.Context, articles []*harvest.Article) (int, error) {
	return s.SaveArticlesFn(ctx, articles)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter harvest.ArticleFilter) ([]*harvest.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteAllArticles(ctx context.Context) error {
	return s.DeleteAllArticlesFn(ctx)
}
