package main

import (
	"fmt"
	"strings"

	"github.com/startuppulse/harvest"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	var scraper harvest.Scraper
	for _, s := range deps.Scrapers {
		if s.Name() == c.Source {
			scraper = s
			break
		}
	}
	if scraper == nil {
		fmt.Fprintf(deps.Stderr, "error: unknown source %q. Available: %s\n", c.Source, strings.Join(sourceNames(deps.Scrapers), ", "))
		return harvest.Errorf(harvest.ENOTFOUND, "unknown source %q", c.Source)
	}

	articles, err := scraper.Scrape(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	saved, err := deps.Articles.SaveArticles(deps.Ctx, articles)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %d fetched, %d saved, %d skipped\n", c.Source, len(articles), saved, len(articles)-saved)
	return nil
}

func sourceNames(scrapers []harvest.Scraper) []string {
	names := make([]string, len(scrapers))
	for i, s := range scrapers {
		names[i] = s.Name()
	}
	return names
}
