package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteContributors outputs the per-contributor rollup, dispatching based on
// the output format configured. Rows arrive sorted by commit count descending
// and are capped at the configured result limit.
func WriteContributors(stats []schema.ContributorStat, cfg *contract.Config, duration time.Duration) error {
	if len(stats) > cfg.ResultLimit {
		stats = stats[:cfg.ResultLimit]
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForContributors(w, stats)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForContributors(w, stats)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for bucket rows")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeContributorTable(stats, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeContributorTable generates and writes the human-readable table.
func writeContributorTable(stats []schema.ContributorStat, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if len(stats) == 0 {
		_, err := fmt.Fprintln(writer, "No commits found in the given repositories.")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Contributor", "Commits", "Lines Added", "Lines Deleted", "Net", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// Activity labels are relative to the busiest contributor in the session.
	maxCommits := stats[0].Commits
	nameWidth := GetMaxTableNameWidth(cfg)

	var data [][]string
	for i, s := range stats {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(s.Contributor, nameWidth),
			strconv.Itoa(s.Commits),
			strconv.Itoa(s.LinesAdded),
			strconv.Itoa(s.LinesDeleted),
			strconv.Itoa(s.LinesAdded - s.LinesDeleted),
			contract.GetColorLabel(s.Commits, maxCommits),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d contributors\n", len(stats)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForContributors writes the rollup in CSV format.
func writeCSVResultsForContributors(w io.Writer, stats []schema.ContributorStat) error {
	header := []string{"rank", "contributor", "commits", "lines_added", "lines_deleted", "net_lines", "label"}
	maxCommits := 0
	if len(stats) > 0 {
		maxCommits = stats[0].Commits
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, s := range stats {
			rec := []string{
				strconv.Itoa(i + 1),
				s.Contributor,
				strconv.Itoa(s.Commits),
				strconv.Itoa(s.LinesAdded),
				strconv.Itoa(s.LinesDeleted),
				strconv.Itoa(s.LinesAdded - s.LinesDeleted),
				contract.GetPlainLabel(s.Commits, maxCommits),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForContributors writes the rollup in JSON format.
func writeJSONResultsForContributors(w io.Writer, stats []schema.ContributorStat) error {
	type JSONContributorStat struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.ContributorStat
	}

	maxCommits := 0
	if len(stats) > 0 {
		maxCommits = stats[0].Commits
	}

	output := make([]JSONContributorStat, len(stats))
	for i, s := range stats {
		output[i] = JSONContributorStat{
			Rank:            i + 1,
			Label:           contract.GetPlainLabel(s.Commits, maxCommits),
			ContributorStat: s,
		}
	}

	return writeJSON(w, output)
}
