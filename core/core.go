// Package core has the analysis session pipeline: repository discovery,
// history extraction, and the command entry points built on top of them.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/internal/outwriter"
	"github.com/huangsam/repostats/schema"
)

// RunAnalysis discovers, extracts and ingests commit history for the given
// configuration, returning the completed session.
func RunAnalysis(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*Session, error) {
	s := NewSession(cfg, client)
	if err := s.Run(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ExecuteSummary runs an analysis session and prints the human-readable
// summary report.
func ExecuteSummary(ctx context.Context, cfg *contract.Config) error {
	s, err := RunAnalysis(ctx, cfg, contract.NewLocalGitClient())
	if err != nil {
		return err
	}

	report, err := BuildSummaryReport(s, cfg.Period)
	if err != nil {
		return err
	}
	return outwriter.WriteSummary(report, cfg, s.Duration())
}

// ExecuteBuckets runs an analysis session and writes the grouped
// period/contributor rows in the configured output format.
func ExecuteBuckets(ctx context.Context, cfg *contract.Config) error {
	s, err := RunAnalysis(ctx, cfg, contract.NewLocalGitClient())
	if err != nil {
		return err
	}

	rows, err := s.Collection().GroupBy(cfg.Period)
	if err != nil {
		return err
	}
	return outwriter.WriteBuckets(rows, cfg, s.Duration())
}

// ExecuteContributors runs an analysis session and writes the per-contributor
// summary in the configured output format.
func ExecuteContributors(ctx context.Context, cfg *contract.Config) error {
	s, err := RunAnalysis(ctx, cfg, contract.NewLocalGitClient())
	if err != nil {
		return err
	}

	stats := s.Collection().ContributorSummary()
	return outwriter.WriteContributors(stats, cfg, s.Duration())
}

// ExecuteDBExport runs an analysis session and records the run plus its
// weekly aggregate rows in the export store. The store is write-only from the
// analysis point of view; no run reads a previous run's rows back.
func ExecuteDBExport(ctx context.Context, cfg *contract.Config, store contract.StatsStore) error {
	s, err := RunAnalysis(ctx, cfg, contract.NewLocalGitClient())
	if err != nil {
		return err
	}
	return exportSession(s, cfg, store)
}

// exportSession writes one completed session to the store: the run row, its
// weekly bucket rows, then the run finalization with the commit total.
func exportSession(s *Session, cfg *contract.Config, store contract.StatsStore) error {
	rows, err := s.Collection().GroupBy(schema.WeekPeriod)
	if err != nil {
		return err
	}

	patterns, err := json.Marshal(cfg.Patterns)
	if err != nil {
		return fmt.Errorf("failed to encode patterns: %w", err)
	}
	patternsStr := string(patterns)

	run := schema.RunRecord{
		StartTime:    time.Now().Add(-s.Duration()),
		Patterns:     &patternsStr,
		Repositories: int32(len(s.Repositories())),
	}
	if cfg.Since != "" {
		since := cfg.Since
		run.Since = &since
	}

	runID, err := store.BeginRun(run)
	if err != nil {
		return fmt.Errorf("failed to begin export run: %w", err)
	}

	buckets := make([]schema.BucketRecord, len(rows))
	for i, row := range rows {
		buckets[i] = schema.BucketRecord{
			RunID:        runID,
			PeriodStart:  row.PeriodStart,
			Contributor:  row.Contributor,
			Commits:      int32(row.Commits),
			LinesAdded:   int32(row.LinesAdded),
			LinesDeleted: int32(row.LinesDeleted),
		}
	}
	if err := store.RecordBuckets(runID, buckets); err != nil {
		return fmt.Errorf("failed to record buckets: %w", err)
	}

	endTime := time.Now()
	run.EndTime = &endTime
	run.TotalCommits = int32(s.Collection().Len())
	if err := store.EndRun(runID, run); err != nil {
		return fmt.Errorf("failed to finalize export run: %w", err)
	}

	fmt.Printf("Exported %d weekly rows from %d commits to the %s store\n",
		len(buckets), s.Collection().Len(), cfg.DBBackend)
	return nil
}

// BuildSummaryReport derives the summary render model from a completed
// session: grand totals, the top contributors by commit count, and the most
// recent period buckets.
func BuildSummaryReport(s *Session, period schema.Period) (*schema.SummaryReport, error) {
	col := s.Collection()

	rows, err := col.GroupBy(period)
	if err != nil {
		return nil, err
	}

	contributors := col.ContributorSummary()
	if len(contributors) > contract.DefaultTopCount {
		contributors = contributors[:contract.DefaultTopCount]
	}

	return &schema.SummaryReport{
		Repositories:    len(s.Repositories()),
		Totals:          col.Totals(),
		TopContributors: contributors,
		RecentBuckets:   recentBuckets(rows, contract.DefaultRecentCount),
		Period:          period,
	}, nil
}

// recentBuckets keeps only the rows belonging to the last n distinct period
// starts, preserving the ascending (period, contributor) row order.
func recentBuckets(rows []schema.AggregatedRow, n int) []schema.AggregatedRow {
	distinct := 0
	var last time.Time
	for i := len(rows) - 1; i >= 0; i-- {
		if !rows[i].PeriodStart.Equal(last) {
			distinct++
			last = rows[i].PeriodStart
		}
		if distinct > n {
			return rows[i+1:]
		}
	}
	return rows
}
