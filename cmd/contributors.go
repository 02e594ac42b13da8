package cmd

import (
	"github.com/huangsam/repostats/core"
	"github.com/huangsam/repostats/internal/contract"
	"github.com/spf13/cobra"
)

// contributorsCmd ranks contributors across the scanned repositories.
var contributorsCmd = &cobra.Command{
	Use:   "contributors [path-patterns...]",
	Short: "Rank contributors by commit count.",
	Long: `Roll up commit activity per contributor across all matched repositories
and rank the result by commit count.

Author identities are taken from git verbatim; the same person committing
under two names or emails appears as two contributors.

Examples:
  # Top contributors for the current repository
  repostats contributors

  # Top 5 contributors across all repositories under ~/src
  repostats contributors '~/src/*' --limit 5

  # Export the ranking to CSV
  repostats contributors --output csv --output-file contributors.csv`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteContributors(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run contributor analysis", err)
		}
	},
}
