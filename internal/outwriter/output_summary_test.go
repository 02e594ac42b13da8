package outwriter

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *schema.SummaryReport {
	return &schema.SummaryReport{
		Repositories: 2,
		Totals: schema.Totals{
			Commits:      4,
			LinesAdded:   27,
			LinesDeleted: 13,
			NetLines:     14,
		},
		TopContributors: sampleStats(),
		RecentBuckets:   sampleRows(),
		Period:          schema.WeekPeriod,
	}
}

func TestWriteSummaryText(t *testing.T) {
	cfg := &contract.Config{Period: schema.WeekPeriod, Workers: 4, Width: 120}

	t.Run("full report", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeSummaryText(sampleReport(), cfg, time.Second, &buf)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "=== Commit Statistics Summary ===")
		assert.Contains(t, out, "Repositories scanned: 2")
		assert.Contains(t, out, "Total commits: 4")
		assert.Contains(t, out, "Net lines: 14")
		assert.Contains(t, out, "Top contributors:")
		assert.Contains(t, out, "Recent activity per week:")
		assert.Contains(t, out, "alice")
	})

	t.Run("zero commits short-circuits the tables", func(t *testing.T) {
		report := &schema.SummaryReport{Period: schema.WeekPeriod}
		var buf bytes.Buffer
		err := writeSummaryText(report, cfg, time.Second, &buf)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "No commits found")
		assert.NotContains(t, out, "Top contributors:")
	})
}

func TestWriteJSONSummary(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONSummary(&buf, sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, float64(2), decoded["repositories"])
	assert.Equal(t, "week", decoded["period"])

	totals := decoded["totals"].(map[string]any)
	assert.Equal(t, float64(14), totals["net_lines"])

	recent := decoded["recent_buckets"].([]any)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-01-15", recent[0].(map[string]any)["period_start"])
}

func TestWriteSummaryRejectsRowFormats(t *testing.T) {
	for _, mode := range []schema.OutputMode{schema.CSVOut, schema.ParquetOut} {
		cfg := &contract.Config{Output: mode}
		err := WriteSummary(sampleReport(), cfg, time.Second)
		assert.Error(t, err)
	}
}
