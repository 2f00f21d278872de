package main

import (
	"fmt"

	"github.com/startuppulse/harvest"
	"github.com/startuppulse/harvest/fs"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	if c.Full {
		if err := refreshStore(deps); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
	}

	report, err := deps.Reporter.GenerateReport(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Generated report %q (%s)\n", report.Name, report.ID)

	if c.Out != "" {
		path, err := fs.NewWriter(c.Out).WriteReport(report)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	}
	return nil
}

// refreshStore clears the store, re-runs the pipeline, and snapshots the
// result so the report reflects a fresh scrape.
func refreshStore(deps *Dependencies) error {
	if err := deps.Exports.DeleteAllExports(deps.Ctx); err != nil {
		return err
	}
	if err := deps.Articles.DeleteAllArticles(deps.Ctx); err != nil {
		return err
	}

	summary, err := deps.Runner.Run(deps.Ctx)
	if err != nil {
		return err
	}
	printSummary(deps, summary)

	_, err = exportArticles(deps)
	return err
}
