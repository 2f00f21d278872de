package main

import (
	"fmt"

	"github.com/startuppulse/harvest"
)

// Run executes the reports command.
func (c *ReportsCmd) Run(deps *Dependencies) error {
	reports, err := deps.Reports.FindReports(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'harvest report' to generate one.")
		return nil
	}

	for _, r := range reports {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Name)
	}

	return nil
}
