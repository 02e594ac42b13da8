package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the release and build metadata of the binary.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print repostats version information.",
	Long: `Display the release version and build metadata of this binary.

Aggregation output can differ between releases (bucketing rules,
label thresholds, export schema), so include this output when
comparing results across machines or reporting a bug.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("repostats %s\n", version)
		cmd.Printf("  commit %s, built %s\n", commit, date)
		cmd.Printf("  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
