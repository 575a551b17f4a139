// Package cli implements the planner command line.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand returns the planner command with all subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Plan the monthly capacity of a resource across work packages",
		Long: `planner plans how much of the monthly capacity of a person or team
goes to the tasks of each work package, compared against a monthly target.

Use "planner serve" to run the API and "planner report" to summarize a
ledger definition file.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newReportCommand())

	return cmd
}
