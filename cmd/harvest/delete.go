package main

import (
	"fmt"

	"github.com/startuppulse/harvest"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return harvest.Errorf(harvest.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Exports.DeleteAllExports(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}
	if err := deps.Articles.DeleteAllArticles(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Deleted all articles and exports")
	return nil
}
