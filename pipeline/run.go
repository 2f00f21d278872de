// Package pipeline orchestrates scrape runs across every configured
// source and persists the results.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/startuppulse/harvest"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many sources scrape at once. Most of a
// source's time is network wait, but the rendering engine only tolerates
// a handful of simultaneous pages.
const DefaultConcurrency = 4

// Runner coordinates a full scrape run: every scraper executes, each
// source's articles are saved, and a summary is produced. One failing
// source never aborts the others.
type Runner struct {
	Articles    harvest.ArticleService
	Scrapers    []harvest.Scraper
	Logger      *slog.Logger
	Concurrency int
}

// Run scrapes every source and persists the results. The returned
// summary has one entry per scraper in registration order. Run returns
// an error only when the run itself could not proceed (context
// cancellation); per-source failures are recorded in the summary.
func (r *Runner) Run(ctx context.Context) (harvest.RunSummary, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]harvest.SourceResult, len(r.Scrapers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, scraper := range r.Scrapers {
		g.Go(func() error {
			results[i] = r.runSource(gctx, scraper)
			return nil
		})
	}
	_ = g.Wait()

	summary := harvest.RunSummary{Results: results}
	r.Logger.Info("run complete",
		"fetched", summary.TotalFetched(),
		"saved", summary.TotalSaved(),
		"skipped", summary.TotalSkipped(),
		"failed_sources", summary.FailedSources(),
	)
	return summary, ctx.Err()
}

// runSource scrapes and saves one source, never propagating its error
// beyond the result.
func (r *Runner) runSource(ctx context.Context, scraper harvest.Scraper) harvest.SourceResult {
	result := harvest.SourceResult{Source: scraper.Name()}

	r.Logger.Info("scraping source", "source", result.Source)

	articles, err := scraper.Scrape(ctx)
	if err != nil {
		r.Logger.Error("source failed", "source", result.Source, "error", err)
		result.Err = err
		return result
	}
	result.Fetched = len(articles)

	saved, err := r.Articles.SaveArticles(ctx, articles)
	if err != nil {
		r.Logger.Error("saving articles failed", "source", result.Source, "error", err)
		result.Err = err
		return result
	}
	result.Saved = saved
	result.Skipped = result.Fetched - saved

	r.Logger.Info("source complete",
		"source", result.Source,
		"fetched", result.Fetched,
		"saved", result.Saved,
		"skipped", result.Skipped,
	)
	return result
}
