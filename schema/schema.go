// Package schema has records, enums and shared models for all parts of repostats.
package schema

import (
	"fmt"
	"time"
)

// CommitRecord represents one version-control commit attributed to the analysis.
// The timestamp is timezone-naive: any UTC offset present in the git output is
// stripped during normalization, not converted. This keeps per-repository times
// comparable without full timezone-aware accounting.
type CommitRecord struct {
	Hash         string    // Full commit hash; dedup key across all repositories
	Author       string    // Author identity exactly as recorded by git, no merging
	Timestamp    time.Time // Authoring time with the offset stripped
	LinesAdded   int       // Lines added; 0 when git reports no insertions
	LinesDeleted int       // Lines deleted; 0 when git reports no deletions
}

// NewCommitRecord builds a validated CommitRecord.
// Line counts must be non-negative; git never reports negative churn, so a
// negative value here means a caller bug rather than bad repository data.
func NewCommitRecord(hash, author string, ts time.Time, added, deleted int) (CommitRecord, error) {
	if hash == "" {
		return CommitRecord{}, fmt.Errorf("commit record requires a non-empty hash")
	}
	if added < 0 || deleted < 0 {
		return CommitRecord{}, fmt.Errorf("commit %s has negative line counts (+%d/-%d)", hash, added, deleted)
	}
	return CommitRecord{
		Hash:         hash,
		Author:       author,
		Timestamp:    ts,
		LinesAdded:   added,
		LinesDeleted: deleted,
	}, nil
}

// NetLines returns lines added minus lines deleted for this commit.
func (c CommitRecord) NetLines() int {
	return c.LinesAdded - c.LinesDeleted
}

// RepositoryHandle is an absolute filesystem path confirmed to contain Git
// metadata. Created during discovery, read-only afterward.
type RepositoryHandle struct {
	Path string // Absolute path to the working directory
}

// AggregatedRow is one (period, contributor) bucket of the grouped output.
type AggregatedRow struct {
	PeriodStart  time.Time
	Contributor  string
	Commits      int
	LinesAdded   int
	LinesDeleted int
}

// PeriodStartString returns the bucket start formatted as an ISO date.
func (r AggregatedRow) PeriodStartString() string {
	return r.PeriodStart.Format(DateOnlyFormat)
}

// ContributorStat aggregates one author's activity across the whole window.
type ContributorStat struct {
	Contributor  string `json:"contributor"`
	Commits      int    `json:"commits"`
	LinesAdded   int    `json:"lines_added"`
	LinesDeleted int    `json:"lines_deleted"`
}

// Totals holds the grand totals for one analysis session.
// NetLines may be negative when deletions dominate.
type Totals struct {
	Commits      int `json:"commits"`
	LinesAdded   int `json:"lines_added"`
	LinesDeleted int `json:"lines_deleted"`
	NetLines     int `json:"net_lines"`
}
