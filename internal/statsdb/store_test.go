package statsdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/repostats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStore opens a store backed by a throwaway SQLite file.
func newSQLiteStore(t *testing.T) *StatsStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "stats.db")
	store, err := NewStatsStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*StatsStoreImpl)
}

func TestStatsStoreSQLiteLifecycle(t *testing.T) {
	store := newSQLiteStore(t)

	patterns := `["~/src/*"]`
	since := "1 year ago"
	run := schema.RunRecord{
		StartTime:    time.Date(2024, 1, 22, 9, 0, 0, 0, time.UTC),
		Patterns:     &patterns,
		Since:        &since,
		Repositories: 2,
	}

	runID, err := store.BeginRun(run)
	require.NoError(t, err)
	assert.Positive(t, runID)

	buckets := []schema.BucketRecord{
		{
			RunID:        runID,
			PeriodStart:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Contributor:  "alice",
			Commits:      3,
			LinesAdded:   25,
			LinesDeleted: 4,
		},
		{
			RunID:        runID,
			PeriodStart:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Contributor:  "bob",
			Commits:      1,
			LinesAdded:   2,
			LinesDeleted: 9,
		},
	}
	require.NoError(t, store.RecordBuckets(runID, buckets))

	endTime := time.Date(2024, 1, 22, 9, 0, 5, 0, time.UTC)
	run.EndTime = &endTime
	run.TotalCommits = 4
	require.NoError(t, store.EndRun(runID, run))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, 2, status.TotalBuckets)
	assert.Equal(t, 2024, status.LastRunTime.Year())

	// A second run accumulates alongside the first
	runID2, err := store.BeginRun(run)
	require.NoError(t, err)
	assert.Greater(t, runID2, runID)

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, 0, status.TotalBuckets)
}

func TestStatsStoreNoneBackend(t *testing.T) {
	store, err := NewStatsStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// All operations are no-ops that never fail
	runID, err := store.BeginRun(schema.RunRecord{StartTime: time.Now()})
	assert.NoError(t, err)
	assert.Zero(t, runID)

	assert.NoError(t, store.RecordBuckets(runID, []schema.BucketRecord{{Contributor: "alice"}}))
	assert.NoError(t, store.EndRun(runID, schema.RunRecord{}))
	assert.NoError(t, store.Clear())

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestStatsStoreEmptyBuckets(t *testing.T) {
	store := newSQLiteStore(t)

	runID, err := store.BeginRun(schema.RunRecord{StartTime: time.Now()})
	require.NoError(t, err)
	assert.NoError(t, store.RecordBuckets(runID, nil))
}

func TestStatsStoreUnsupportedBackend(t *testing.T) {
	_, err := NewStatsStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
