// Package parquet provides data structures and functions for exporting commit
// statistics to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/repostats/schema"
	"github.com/parquet-go/parquet-go"
)

// BucketRow represents one (period, contributor) aggregate bucket for export.
type BucketRow struct {
	// PeriodStart is the first day of the bucket (stored as TIMESTAMP with nanosecond precision)
	PeriodStart time.Time `parquet:"period_start,snappy"`

	// Period is the grouping granularity the bucket was built with (day, week, month)
	Period string `parquet:"period,snappy"`

	// Contributor is the author identity exactly as recorded by git
	Contributor string `parquet:"contributor,snappy"`

	// Commits is the number of deduplicated commits in this bucket
	Commits int32 `parquet:"commits,snappy"`

	// LinesAdded is the total insertion count for the bucket
	LinesAdded int32 `parquet:"lines_added,snappy"`

	// LinesDeleted is the total deletion count for the bucket
	LinesDeleted int32 `parquet:"lines_deleted,snappy"`
}

// WriteBucketRowsParquet writes a slice of BucketRow structs to a Parquet file.
func WriteBucketRowsParquet(data []BucketRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the BucketRow struct tags
	writer := parquet.NewGenericWriter[BucketRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertAggregatedRows converts schema.AggregatedRow to BucketRow for Parquet export.
func ConvertAggregatedRows(rows []schema.AggregatedRow, period schema.Period) []BucketRow {
	result := make([]BucketRow, len(rows))
	for i, row := range rows {
		result[i] = BucketRow{
			PeriodStart:  row.PeriodStart,
			Period:       string(period),
			Contributor:  row.Contributor,
			Commits:      int32(row.Commits),
			LinesAdded:   int32(row.LinesAdded),
			LinesDeleted: int32(row.LinesDeleted),
		}
	}
	return result
}
