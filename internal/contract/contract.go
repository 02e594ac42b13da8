// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/repostats/schema"
)

// GitClient defines the necessary operations for commit history extraction.
// This allows the core analysis logic to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// ListCommits returns the raw commit log output, one hash|author|timestamp
	// line per commit. The since bound is passed to git verbatim and may use
	// git's relative or absolute date grammar ("2024-01-01", "1 year ago");
	// an empty string means the full history.
	ListCommits(ctx context.Context, repoPath string, since string) ([]byte, error)

	// CommitStat returns the raw diff-stat output for a single commit,
	// ending in the human summary line with insertion/deletion counts.
	CommitStat(ctx context.Context, repoPath string, hash string) ([]byte, error)
}

// StatsStore defines the interface for the write-only export store.
// This allows the database layer to be mocked for testing.
type StatsStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(run schema.RunRecord) (int64, error)

	// EndRun updates the run row with completion data.
	EndRun(runID int64, run schema.RunRecord) error

	// RecordBuckets stores the weekly aggregate rows for a run.
	RecordBuckets(runID int64, buckets []schema.BucketRecord) error

	// GetStatus returns status information about the export store.
	GetStatus() (schema.StoreStatus, error)

	// Clear removes all stored runs and buckets.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
