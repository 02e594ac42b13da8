package cmd

import (
	"github.com/huangsam/repostats/core"
	"github.com/huangsam/repostats/internal/contract"
	"github.com/spf13/cobra"
)

// bucketsCmd prints the per-period, per-contributor aggregate rows.
var bucketsCmd = &cobra.Command{
	Use:   "buckets [path-patterns...]",
	Short: "Show commit activity grouped by period and contributor.",
	Long: `Group commit activity into (period, contributor) buckets and print one
row per bucket, sorted by period start then contributor.

Periods:
  day   - calendar day of the commit
  week  - the Monday that starts the commit's week (default)
  month - the first day of the commit's month

Timestamps are compared with their recorded wall-clock time; UTC offsets
are stripped during extraction, not applied.

Examples:
  # Weekly buckets for the current repository
  repostats buckets

  # Daily buckets for the last month
  repostats buckets --since '1 month ago' --period day

  # Export weekly buckets to CSV
  repostats buckets --output csv --output-file weekly.csv

  # Export to Parquet for DuckDB/pandas
  repostats buckets --output parquet --output-file weekly.parquet`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBuckets(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run bucket analysis", err)
		}
	},
}
