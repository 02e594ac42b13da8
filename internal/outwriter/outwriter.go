// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/repostats/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for contributor names in
// table output based on terminal width and the fixed numeric columns.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for Rank, Commits, Lines Added, Lines Deleted, Net and
	// Label columns with borders and padding.
	baseWidth := 55

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 50 {
		return 50
	}
	return available
}
