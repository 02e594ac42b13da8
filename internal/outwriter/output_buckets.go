package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/internal/parquet"
	"github.com/huangsam/repostats/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBuckets outputs the grouped period/contributor rows, dispatching based
// on the output format configured.
func WriteBuckets(rows []schema.AggregatedRow, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForBuckets(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForBuckets(w, rows, cfg.Period)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteBucketRowsParquet(parquet.ConvertAggregatedRows(rows, cfg.Period), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Printf("💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBucketTable(rows, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeBucketTable generates and writes the human-readable table.
func writeBucketTable(rows []schema.AggregatedRow, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(writer, "No commits found in the given repositories.")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{schema.PeriodColumnLabel(cfg.Period), "Contributor", "Commits", "Lines Added", "Lines Deleted"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	totalCommits := 0
	for _, r := range rows {
		data = append(data, []string{
			r.PeriodStartString(),
			contract.TruncatePath(r.Contributor, nameWidth),
			strconv.Itoa(r.Commits),
			strconv.Itoa(r.LinesAdded),
			strconv.Itoa(r.LinesDeleted),
		})
		totalCommits += r.Commits
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d buckets per %s (total commits: %d)\n", len(rows), cfg.Period, totalCommits); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForBuckets writes the grouped rows in CSV format.
// The period column header follows the grouping, e.g. "Week Start" rows yield
// a "Week Start,Contributor,Commits,Lines Added,Lines Deleted" header.
func writeCSVResultsForBuckets(w io.Writer, rows []schema.AggregatedRow, period schema.Period) error {
	header := []string{schema.PeriodColumnLabel(period), "Contributor", "Commits", "Lines Added", "Lines Deleted"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				r.PeriodStartString(),
				r.Contributor,
				strconv.Itoa(r.Commits),
				strconv.Itoa(r.LinesAdded),
				strconv.Itoa(r.LinesDeleted),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForBuckets writes the grouped rows in JSON format.
func writeJSONResultsForBuckets(w io.Writer, rows []schema.AggregatedRow) error {
	// Period starts serialize as ISO dates rather than full timestamps
	type JSONBucketRow struct {
		PeriodStart  string `json:"period_start"`
		Contributor  string `json:"contributor"`
		Commits      int    `json:"commits"`
		LinesAdded   int    `json:"lines_added"`
		LinesDeleted int    `json:"lines_deleted"`
	}

	output := make([]JSONBucketRow, len(rows))
	for i, r := range rows {
		output[i] = JSONBucketRow{
			PeriodStart:  r.PeriodStartString(),
			Contributor:  r.Contributor,
			Commits:      r.Commits,
			LinesAdded:   r.LinesAdded,
			LinesDeleted: r.LinesDeleted,
		}
	}

	return writeJSON(w, output)
}
