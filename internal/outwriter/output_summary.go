package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummary outputs the session summary report. The summary is a
// human-readable digest first; JSON is supported for scripting, the row
// formats (CSV, Parquet) are not because the report is not tabular.
func WriteSummary(report *schema.SummaryReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONSummary(w, report)
		}, "Wrote JSON")
	case schema.CSVOut, schema.ParquetOut:
		return fmt.Errorf("summary output supports text and json only")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryText(report, cfg, duration, w)
		}, "Wrote summary")
	}
}

// writeSummaryText writes the human-readable summary report.
func writeSummaryText(report *schema.SummaryReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, "=== Commit Statistics Summary ==="); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Repositories scanned: %d\n", report.Repositories); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Total commits: %d\n", report.Totals.Commits); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Total lines added: %d\n", report.Totals.LinesAdded); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Total lines deleted: %d\n", report.Totals.LinesDeleted); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Net lines: %d\n", report.Totals.NetLines); err != nil {
		return err
	}

	if report.Totals.Commits == 0 {
		_, err := fmt.Fprintln(writer, "\nNo commits found in the given repositories.")
		return err
	}

	if _, err := fmt.Fprintf(writer, "\nTop contributors:\n"); err != nil {
		return err
	}
	if err := writeSummaryContributors(report, cfg, writer); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "\nRecent activity per %s:\n", report.Period); err != nil {
		return err
	}
	if err := writeSummaryBuckets(report, cfg, writer); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "\nAnalysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeSummaryContributors renders the top-contributor table of the summary.
func writeSummaryContributors(report *schema.SummaryReport, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Contributor", "Commits", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxCommits := 0
	if len(report.TopContributors) > 0 {
		maxCommits = report.TopContributors[0].Commits
	}
	nameWidth := GetMaxTableNameWidth(cfg)

	var data [][]string
	for i, s := range report.TopContributors {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(s.Contributor, nameWidth),
			strconv.Itoa(s.Commits),
			contract.GetColorLabel(s.Commits, maxCommits),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeSummaryBuckets renders the recent-bucket table of the summary.
func writeSummaryBuckets(report *schema.SummaryReport, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{schema.PeriodColumnLabel(report.Period), "Contributor", "Commits", "Lines Added", "Lines Deleted"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, r := range report.RecentBuckets {
		data = append(data, []string{
			r.PeriodStartString(),
			contract.TruncatePath(r.Contributor, nameWidth),
			strconv.Itoa(r.Commits),
			strconv.Itoa(r.LinesAdded),
			strconv.Itoa(r.LinesDeleted),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeJSONSummary writes the summary report in JSON format.
func writeJSONSummary(w io.Writer, report *schema.SummaryReport) error {
	type JSONBucketRow struct {
		PeriodStart  string `json:"period_start"`
		Contributor  string `json:"contributor"`
		Commits      int    `json:"commits"`
		LinesAdded   int    `json:"lines_added"`
		LinesDeleted int    `json:"lines_deleted"`
	}
	type JSONSummary struct {
		Repositories    int                      `json:"repositories"`
		Totals          schema.Totals            `json:"totals"`
		Period          schema.Period            `json:"period"`
		TopContributors []schema.ContributorStat `json:"top_contributors"`
		RecentBuckets   []JSONBucketRow          `json:"recent_buckets"`
	}

	recent := make([]JSONBucketRow, len(report.RecentBuckets))
	for i, r := range report.RecentBuckets {
		recent[i] = JSONBucketRow{
			PeriodStart:  r.PeriodStartString(),
			Contributor:  r.Contributor,
			Commits:      r.Commits,
			LinesAdded:   r.LinesAdded,
			LinesDeleted: r.LinesDeleted,
		}
	}

	return writeJSON(w, JSONSummary{
		Repositories:    report.Repositories,
		Totals:          report.Totals,
		Period:          report.Period,
		TopContributors: report.TopContributors,
		RecentBuckets:   recent,
	})
}
