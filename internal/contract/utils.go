package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Activity label constants.
const (
	HeavyValue  = "Heavy"
	ActiveValue = "Active"
	SteadyValue = "Steady"
	QuietValue  = "Quiet"
)

// Color variables for console output.
var (
	HeavyColor  = color.New(color.FgRed, color.Bold)     // heavyColor marks dominant contributors.
	ActiveColor = color.New(color.FgMagenta, color.Bold) // activeColor marks strong sustained activity.
	SteadyColor = color.New(color.FgYellow)              // steadyColor marks regular activity, not bold.
	QuietColor  = color.New(color.FgCyan)                // quietColor marks low-volume contributors.
)

// GetPlainLabel returns a plain text activity label for a commit count
// relative to the session's largest contributor. This is the core logic used
// for CSV, JSON, and table printing.
func GetPlainLabel(commits, maxCommits int) string {
	if maxCommits <= 0 {
		return QuietValue
	}
	ratio := float64(commits) / float64(maxCommits)
	switch {
	case ratio >= 0.8:
		return HeavyValue
	case ratio >= 0.5:
		return ActiveValue
	case ratio >= 0.2:
		return SteadyValue
	default:
		return QuietValue
	}
}

// GetColorLabel returns a colored activity label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(commits, maxCommits int) string {
	text := GetPlainLabel(commits, maxCommits)

	switch text {
	case HeavyValue:
		return HeavyColor.Sprint(text)
	case ActiveValue:
		return ActiveColor.Sprint(text)
	case SteadyValue:
		return SteadyColor.Sprint(text)
	default: // "Quiet"
		return QuietColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path falls back to os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s\n", msg)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// GetDBFilePath returns the path to the SQLite DB file for stats export.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".repostats.db"
	}
	return filepath.Join(homeDir, ".repostats.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the "..." prefix and at least one
// character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}
