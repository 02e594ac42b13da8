package schema

import "time"

// RunRecord is the metadata row written to the export store for one
// completed analysis session.
type RunRecord struct {
	RunID        int64
	StartTime    time.Time
	EndTime      *time.Time
	Patterns     *string // JSON-encoded list of the requested path patterns
	Since        *string
	Repositories int32
	TotalCommits int32
}

// BucketRecord is one weekly aggregate row written to the export store.
type BucketRecord struct {
	RunID        int64
	PeriodStart  time.Time
	Contributor  string
	Commits      int32
	LinesAdded   int32
	LinesDeleted int32
}

// StoreStatus returns status information about the export store.
type StoreStatus struct {
	Backend      string
	Connected    bool
	TotalRuns    int
	TotalBuckets int
	LastRunTime  time.Time
}
