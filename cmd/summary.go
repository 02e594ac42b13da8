package cmd

import (
	"github.com/huangsam/repostats/core"
	"github.com/huangsam/repostats/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd prints the session-wide commit statistics digest.
var summaryCmd = &cobra.Command{
	Use:   "summary [path-patterns...]",
	Short: "Show overall commit statistics across repositories.",
	Long: `Scan one or more Git repositories and print a digest of commit activity.

The digest includes:
- Grand totals (commits, lines added, lines deleted, net lines)
- The top contributors ranked by commit count
- Activity buckets for the most recent periods

Path patterns may use shell globs and default to the current directory.
Commits appearing in more than one matched repository are counted once.

Examples:
  # Summarize the current repository
  repostats summary

  # Summarize all repositories under ~/src
  repostats summary '~/src/*'

  # Only look at the last year, grouped by month
  repostats summary --since '1 year ago' --period month

  # Machine-readable digest
  repostats summary --output json`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run summary analysis", err)
		}
	},
}
