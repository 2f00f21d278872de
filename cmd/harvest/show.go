package main

import (
	"fmt"

	"github.com/startuppulse/harvest"
	"github.com/startuppulse/harvest/htmltomarkdown"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	reports, err := deps.Reports.FindReports(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}
	if len(reports) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no reports found. Use 'harvest report' to generate one.\n")
		return harvest.Errorf(harvest.ENOTFOUND, "no reports found")
	}

	report := reports[0]
	if c.ID != "" {
		report = nil
		for _, r := range reports {
			if r.ID == c.ID {
				report = r
				break
			}
		}
		if report == nil {
			fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'harvest reports' to list them.\n", c.ID)
			return harvest.Errorf(harvest.ENOTFOUND, "report %q not found", c.ID)
		}
	}

	md, err := htmltomarkdown.NewConverter().Convert(report.HTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, md)
	return nil
}
