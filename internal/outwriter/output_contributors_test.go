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

func sampleStats() []schema.ContributorStat {
	return []schema.ContributorStat{
		{Contributor: "alice", Commits: 10, LinesAdded: 100, LinesDeleted: 30},
		{Contributor: "bob", Commits: 2, LinesAdded: 5, LinesDeleted: 40},
	}
}

func TestWriteCSVResultsForContributors(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVResultsForContributors(&buf, sampleStats())
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,contributor,commits,lines_added,lines_deleted,net_lines,label", string(lines[0]))
	assert.Equal(t, "1,alice,10,100,30,70,Heavy", string(lines[1]))
	// bob's net is negative and his label is relative to alice's count
	assert.Equal(t, "2,bob,2,5,40,-35,Steady", string(lines[2]))
}

func TestWriteJSONResultsForContributors(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForContributors(&buf, sampleStats())
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, "Heavy", decoded[0]["label"])
	assert.Equal(t, "alice", decoded[0]["contributor"])
	assert.Equal(t, float64(10), decoded[0]["commits"])
}

func TestWriteContributorTable(t *testing.T) {
	cfg := &contract.Config{Workers: 2, Width: 120, ResultLimit: 20}

	t.Run("renders ranked rows", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeContributorTable(sampleStats(), cfg, time.Second, &buf)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "alice")
		assert.Contains(t, out, "bob")
		assert.Contains(t, out, "Showing top 2 contributors")
	})

	t.Run("empty stats prints explicit message", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeContributorTable(nil, cfg, time.Second, &buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "No commits found")
	})
}
