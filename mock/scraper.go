package mock

import (
	"context"

	"github.com/startuppulse/harvest"
)

var _ harvest.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of harvest.Scraper.
type Scraper struct {
	NameFn   func() string
	ScrapeFn func(ctx context.Context) ([]*harvest.Article, error)
}

func (s *Scraper) Name() string {
	return s.NameFn()
}

func (s *Scraper) Scrape(ctx context.Context) ([]*harvest.Article, error) {
	return s.ScrapeFn(ctx)
}
