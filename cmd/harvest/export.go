package main

import (
	"fmt"

	"github.com/startuppulse/harvest"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	export, err := exportArticles(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d articles (%s)\n", len(export.Articles), export.ID)
	return nil
}

// exportArticles snapshots the stored article batch for report generation.
func exportArticles(deps *Dependencies) (*harvest.Export, error) {
	articles, err := deps.Articles.FindArticles(deps.Ctx, harvest.ArticleFilter{})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "no articles to export. Run 'harvest run' first.")
	}

	exported := make([]harvest.ExportedArticle, len(articles))
	for i, a := range articles {
		exported[i] = harvest.ExportedArticle{
			Title:   a.Title,
			Content: a.Content,
			Source:  a.Source,
		}
	}

	return deps.Exports.CreateExport(deps.Ctx, exported)
}
