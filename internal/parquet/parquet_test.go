package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/repostats/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertAggregatedRows(t *testing.T) {
	rows := []schema.AggregatedRow{
		{
			PeriodStart:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Contributor:  "alice",
			Commits:      3,
			LinesAdded:   25,
			LinesDeleted: 4,
		},
	}

	converted := ConvertAggregatedRows(rows, schema.WeekPeriod)
	require.Len(t, converted, 1)
	assert.Equal(t, "alice", converted[0].Contributor)
	assert.Equal(t, "week", converted[0].Period)
	assert.Equal(t, int32(3), converted[0].Commits)
	assert.Equal(t, int32(25), converted[0].LinesAdded)
	assert.Equal(t, int32(4), converted[0].LinesDeleted)
}

func TestWriteBucketsParquetRoundTrip(t *testing.T) {
	data := []BucketRow{
		{
			PeriodStart:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Period:       "week",
			Contributor:  "alice",
			Commits:      3,
			LinesAdded:   25,
			LinesDeleted: 4,
		},
		{
			PeriodStart:  time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC),
			Period:       "week",
			Contributor:  "bob",
			Commits:      1,
			LinesAdded:   2,
			LinesDeleted: 9,
		},
	}

	path := filepath.Join(t.TempDir(), "buckets.parquet")
	require.NoError(t, WriteBucketRowsParquet(data, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	require.NoError(t, err)

	reader := parquet.NewGenericReader[BucketRow](file)
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(2), reader.NumRows())

	readBack := make([]BucketRow, 2)
	n, _ := reader.Read(readBack)
	require.Equal(t, 2, n)
	assert.Equal(t, "alice", readBack[0].Contributor)
	assert.Equal(t, int32(9), readBack[1].LinesDeleted)
	assert.Positive(t, info.Size())
}
