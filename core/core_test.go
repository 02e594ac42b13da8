package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/internal/statsdb"
	"github.com/huangsam/repostats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecentBuckets(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}
	rows := []schema.AggregatedRow{
		{PeriodStart: day(1), Contributor: "alice"},
		{PeriodStart: day(8), Contributor: "alice"},
		{PeriodStart: day(8), Contributor: "bob"},
		{PeriodStart: day(15), Contributor: "alice"},
	}

	t.Run("keeps the last n distinct periods", func(t *testing.T) {
		recent := recentBuckets(rows, 2)
		require.Len(t, recent, 3) // both day-8 rows plus day-15
		assert.Equal(t, day(8), recent[0].PeriodStart)
		assert.Equal(t, day(15), recent[2].PeriodStart)
	})

	t.Run("fewer periods than requested returns everything", func(t *testing.T) {
		assert.Len(t, recentBuckets(rows, 10), 4)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, recentBuckets(nil, 5))
	})
}

func TestBuildSummaryReport(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	repo := makeRepo(t, root, "repo")

	mockClient := &contract.MockGitClient{}
	mockClient.On("ListCommits", ctx, repo, "").
		Return([]byte("c1|alice|2024-01-15 09:00:00 +0100\n"+
			"c2|alice|2024-01-16 09:00:00 +0100\n"+
			"c3|bob|2024-01-22 09:00:00 +0100"), nil)
	mockClient.On("CommitStat", ctx, repo, "c1").Return([]byte(" 1 file changed, 10 insertions(+), 1 deletion(-)"), nil)
	mockClient.On("CommitStat", ctx, repo, "c2").Return([]byte(" 1 file changed, 5 insertions(+)"), nil)
	mockClient.On("CommitStat", ctx, repo, "c3").Return([]byte(" 1 file changed, 3 deletions(-)"), nil)

	cfg := &contract.Config{
		Patterns: []string{filepath.Join(root, "*")},
		Workers:  2,
	}

	s, err := RunAnalysis(ctx, cfg, mockClient)
	require.NoError(t, err)

	report, err := BuildSummaryReport(s, schema.WeekPeriod)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Repositories)
	assert.Equal(t, 3, report.Totals.Commits)
	assert.Equal(t, 15, report.Totals.LinesAdded)
	assert.Equal(t, 4, report.Totals.LinesDeleted)
	assert.Equal(t, 11, report.Totals.NetLines)

	require.Len(t, report.TopContributors, 2)
	assert.Equal(t, "alice", report.TopContributors[0].Contributor)
	assert.Equal(t, 2, report.TopContributors[0].Commits)

	// Two distinct weeks, both within the recent window
	require.Len(t, report.RecentBuckets, 2)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), report.RecentBuckets[0].PeriodStart)
	assert.Equal(t, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), report.RecentBuckets[1].PeriodStart)
	assert.Equal(t, schema.WeekPeriod, report.Period)
}

// exportTestSession builds a completed two-contributor session for the
// export tests below.
func exportTestSession(t *testing.T) (*Session, *contract.Config) {
	t.Helper()
	ctx := context.Background()
	root := t.TempDir()
	repo := makeRepo(t, root, "repo")

	mockClient := &contract.MockGitClient{}
	mockClient.On("ListCommits", ctx, repo, "2 weeks ago").
		Return([]byte("e1|alice|2024-01-15 09:00:00 +0100\n"+
			"e2|bob|2024-01-16 10:00:00 +0100"), nil)
	mockClient.On("CommitStat", ctx, repo, "e1").Return([]byte(" 1 file changed, 10 insertions(+), 2 deletions(-)"), nil)
	mockClient.On("CommitStat", ctx, repo, "e2").Return([]byte(" 1 file changed, 5 insertions(+)"), nil)

	cfg := &contract.Config{
		Patterns:  []string{filepath.Join(root, "*")},
		Since:     "2 weeks ago",
		Workers:   2,
		DBBackend: schema.SQLiteBackend,
	}

	s, err := RunAnalysis(ctx, cfg, mockClient)
	require.NoError(t, err)
	return s, cfg
}

func TestExportSession(t *testing.T) {
	s, cfg := exportTestSession(t)

	var begunRun schema.RunRecord
	var recorded []schema.BucketRecord
	var endedRun schema.RunRecord

	mockStore := &statsdb.MockStatsStore{}
	mockStore.On("BeginRun", mock.AnythingOfType("schema.RunRecord")).
		Run(func(args mock.Arguments) { begunRun = args.Get(0).(schema.RunRecord) }).
		Return(int64(7), nil)
	mockStore.On("RecordBuckets", int64(7), mock.AnythingOfType("[]schema.BucketRecord")).
		Run(func(args mock.Arguments) { recorded = args.Get(1).([]schema.BucketRecord) }).
		Return(nil)
	mockStore.On("EndRun", int64(7), mock.AnythingOfType("schema.RunRecord")).
		Run(func(args mock.Arguments) { endedRun = args.Get(1).(schema.RunRecord) }).
		Return(nil)

	require.NoError(t, exportSession(s, cfg, mockStore))
	mockStore.AssertExpectations(t)

	// Run metadata carries the JSON-encoded patterns and the since bound
	require.NotNil(t, begunRun.Patterns)
	assert.Contains(t, *begunRun.Patterns, `"`+cfg.Patterns[0]+`"`)
	require.NotNil(t, begunRun.Since)
	assert.Equal(t, "2 weeks ago", *begunRun.Since)
	assert.Equal(t, int32(1), begunRun.Repositories)

	// Bucket rows are keyed to the run, sorted by (week, contributor)
	require.Len(t, recorded, 2)
	assert.Equal(t, int64(7), recorded[0].RunID)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), recorded[0].PeriodStart)
	assert.Equal(t, "alice", recorded[0].Contributor)
	assert.Equal(t, int32(1), recorded[0].Commits)
	assert.Equal(t, int32(10), recorded[0].LinesAdded)
	assert.Equal(t, int32(2), recorded[0].LinesDeleted)
	assert.Equal(t, "bob", recorded[1].Contributor)
	assert.Equal(t, int32(5), recorded[1].LinesAdded)

	// Finalization carries the end time and total commit count
	require.NotNil(t, endedRun.EndTime)
	assert.Equal(t, int32(2), endedRun.TotalCommits)
}

func TestExportSessionStoreFailures(t *testing.T) {
	t.Run("begin failure aborts before any write", func(t *testing.T) {
		s, cfg := exportTestSession(t)

		mockStore := &statsdb.MockStatsStore{}
		mockStore.On("BeginRun", mock.AnythingOfType("schema.RunRecord")).
			Return(int64(0), errors.New("disk full"))

		err := exportSession(s, cfg, mockStore)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to begin export run")
		mockStore.AssertNotCalled(t, "RecordBuckets", mock.Anything, mock.Anything)
		mockStore.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything)
	})

	t.Run("bucket failure skips finalization", func(t *testing.T) {
		s, cfg := exportTestSession(t)

		mockStore := &statsdb.MockStatsStore{}
		mockStore.On("BeginRun", mock.AnythingOfType("schema.RunRecord")).Return(int64(3), nil)
		mockStore.On("RecordBuckets", int64(3), mock.AnythingOfType("[]schema.BucketRecord")).
			Return(errors.New("constraint violation"))

		err := exportSession(s, cfg, mockStore)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record buckets")
		mockStore.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything)
	})
}
