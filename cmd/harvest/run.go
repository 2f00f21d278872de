package main

import (
	"fmt"

	"github.com/startuppulse/harvest"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	summary, err := deps.Runner.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	printSummary(deps, summary)
	return nil
}

// printSummary writes the per-source result table and totals.
func printSummary(deps *Dependencies, summary harvest.RunSummary) {
	fmt.Fprintf(deps.Stdout, "%-18s %8s %8s %8s  %s\n", "SOURCE", "FETCHED", "SAVED", "SKIPPED", "STATUS")
	for _, r := range summary.Results {
		status := "ok"
		if r.Failed() {
			status = fmt.Sprintf("failed: %s", harvest.ErrorMessage(r.Err))
		}
		fmt.Fprintf(deps.Stdout, "%-18s %8d %8d %8d  %s\n", r.Source, r.Fetched, r.Saved, r.Skipped, status)
	}
	fmt.Fprintf(deps.Stdout, "\n%d fetched, %d saved, %d skipped, %d sources failed\n",
		summary.TotalFetched(), summary.TotalSaved(), summary.TotalSkipped(), len(summary.FailedSources()))
}
