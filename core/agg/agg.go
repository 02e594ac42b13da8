// Package agg has aggregation logic for commit statistics.
package agg

import (
	"fmt"
	"sort"
	"time"

	"github.com/huangsam/repostats/schema"
)

// ErrInvalidPeriod reports a grouping period outside day/week/month.
// This is a contract violation by the caller, not a data-quality issue,
// so it surfaces as a hard error instead of being absorbed.
var ErrInvalidPeriod = fmt.Errorf("invalid grouping period: must be one of day, week, month")

// Collection owns the deduplicated commit set for one analysis session.
// All grouped views are derived read-only projections recomputed on demand;
// nothing is cached beyond the run.
type Collection struct {
	records []schema.CommitRecord
	seen    map[string]struct{}
}

// NewCollection creates an empty commit collection.
func NewCollection() *Collection {
	return &Collection{
		seen: make(map[string]struct{}),
	}
}

// Ingest merges commit records into the collection, deduplicating by hash.
// The first record seen for a hash wins; callers feed repositories in
// sorted-path order so the winner is deterministic regardless of how the
// extraction was parallelized.
func (c *Collection) Ingest(records []schema.CommitRecord) {
	for _, r := range records {
		if _, ok := c.seen[r.Hash]; ok {
			continue
		}
		c.seen[r.Hash] = struct{}{}
		c.records = append(c.records, r)
	}
}

// Len returns the number of deduplicated commits ingested so far.
func (c *Collection) Len() int {
	return len(c.records)
}

// Records returns a copy of the deduplicated commit set in ingest order.
func (c *Collection) Records() []schema.CommitRecord {
	out := make([]schema.CommitRecord, len(c.records))
	copy(out, c.records)
	return out
}

// PeriodStart computes the bucket start for a timestamp at the given
// granularity. Week buckets start on Monday (timestamp date minus its
// zero-based weekday offset); month buckets start on the first of the month;
// day buckets are the calendar date itself.
func PeriodStart(ts time.Time, period schema.Period) (time.Time, error) {
	y, m, d := ts.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, ts.Location())

	switch period {
	case schema.DayPeriod:
		return date, nil
	case schema.WeekPeriod:
		// Go weekday is Sunday=0; shift so Monday=0 and Sunday=6.
		offset := (int(date.Weekday()) + 6) % 7
		return date.AddDate(0, 0, -offset), nil
	case schema.MonthPeriod:
		return time.Date(y, m, 1, 0, 0, 0, 0, ts.Location()), nil
	default:
		return time.Time{}, ErrInvalidPeriod
	}
}

// GroupBy buckets the collection by time period and contributor.
// Rows are sorted ascending by (period start, contributor).
func (c *Collection) GroupBy(period schema.Period) ([]schema.AggregatedRow, error) {
	if _, ok := schema.ValidPeriods[period]; !ok {
		return nil, ErrInvalidPeriod
	}

	type bucketKey struct {
		start       time.Time
		contributor string
	}
	buckets := make(map[bucketKey]*schema.AggregatedRow)

	for _, r := range c.records {
		start, err := PeriodStart(r.Timestamp, period)
		if err != nil {
			return nil, err
		}
		key := bucketKey{start: start, contributor: r.Author}
		row, ok := buckets[key]
		if !ok {
			row = &schema.AggregatedRow{
				PeriodStart: start,
				Contributor: r.Author,
			}
			buckets[key] = row
		}
		row.Commits++
		row.LinesAdded += r.LinesAdded
		row.LinesDeleted += r.LinesDeleted
	}

	rows := make([]schema.AggregatedRow, 0, len(buckets))
	for _, row := range buckets {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].PeriodStart.Equal(rows[j].PeriodStart) {
			return rows[i].PeriodStart.Before(rows[j].PeriodStart)
		}
		return rows[i].Contributor < rows[j].Contributor
	})
	return rows, nil
}

// ContributorSummary aggregates commit count and line churn per author across
// the whole analyzed window, sorted descending by commit count. Ties keep the
// order the authors were first ingested, which is deterministic given
// identical input.
func (c *Collection) ContributorSummary() []schema.ContributorStat {
	index := make(map[string]int)
	stats := make([]schema.ContributorStat, 0)

	for _, r := range c.records {
		i, ok := index[r.Author]
		if !ok {
			i = len(stats)
			index[r.Author] = i
			stats = append(stats, schema.ContributorStat{Contributor: r.Author})
		}
		stats[i].Commits++
		stats[i].LinesAdded += r.LinesAdded
		stats[i].LinesDeleted += r.LinesDeleted
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Commits > stats[j].Commits
	})
	return stats
}

// Totals computes the grand totals for the collection.
// Net lines may be negative when deletions dominate.
func (c *Collection) Totals() schema.Totals {
	var t schema.Totals
	for _, r := range c.records {
		t.Commits++
		t.LinesAdded += r.LinesAdded
		t.LinesDeleted += r.LinesDeleted
	}
	t.NetLines = t.LinesAdded - t.LinesDeleted
	return t
}
