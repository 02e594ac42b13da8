package core

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/schema"
)

// commitTimeFormat is the offset-free layout commits are normalized to.
const commitTimeFormat = "2006-01-02 15:04:05"

// Digit runs adjacent to the insertion/deletion keywords in a git diff-stat
// summary line, e.g. " 2 files changed, 10 insertions(+), 5 deletions(-)".
var (
	insertionRe = regexp.MustCompile(`(\d+) insertion`)
	deletionRe  = regexp.MustCompile(`(\d+) deletion`)
)

// ExtractRepository lists the commits of one repository and resolves the
// per-commit line-change stats. The commit listing is a single git log call;
// the per-commit stat queries are the dominant cost and run through a worker
// pool of cfg.Workers goroutines. Results keep git-log order regardless of
// worker completion order.
//
// A failed git invocation for the repository as a whole returns an error so
// the caller can log it and move on; one broken repository must not block
// statistics for the others.
func ExtractRepository(ctx context.Context, cfg *contract.Config, client contract.GitClient, repo schema.RepositoryHandle) ([]schema.CommitRecord, error) {
	out, err := client.ListCommits(ctx, repo.Path, cfg.Since)
	if err != nil {
		return nil, err
	}

	headers := parseCommitLog(out)
	if len(headers) == 0 {
		return nil, nil
	}

	records := make([]schema.CommitRecord, len(headers))
	idxCh := make(chan int, len(headers))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for i := range idxCh {
				h := headers[i]
				added, deleted := fetchCommitStat(ctx, client, repo.Path, h.hash)
				rec, err := schema.NewCommitRecord(h.hash, h.author, h.timestamp, added, deleted)
				if err != nil {
					contract.LogWarn("Dropping malformed commit record", err)
					continue
				}
				// Each goroutine writes a unique index, so no locking is needed.
				records[i] = rec
			}
		})
	}

	for i := range headers {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	// Compact out any slots dropped by record validation.
	out2 := records[:0]
	for _, r := range records {
		if r.Hash != "" {
			out2 = append(out2, r)
		}
	}
	return out2, nil
}

// commitHeader is one parsed hash|author|timestamp log line.
type commitHeader struct {
	hash      string
	author    string
	timestamp time.Time
}

// parseCommitLog parses raw git log output into commit headers.
// Malformed lines are skipped with a warning; they never abort the batch.
func parseCommitLog(out []byte) []commitHeader {
	var headers []commitHeader
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "|", 3)
		if len(parts) < 3 {
			contract.LogWarn(fmt.Sprintf("Could not parse log line %q, skipping", line), nil)
			continue
		}

		ts, err := normalizeTimestamp(parts[2])
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Could not parse date %q for commit %s, skipping", parts[2], parts[0]), nil)
			continue
		}

		headers = append(headers, commitHeader{
			hash:      parts[0],
			author:    parts[1],
			timestamp: ts,
		})
	}
	return headers
}

// normalizeTimestamp parses "YYYY-MM-DD HH:MM:SS" with or without a trailing
// UTC-offset token like "+0200" or "-0700". The offset, when present, is
// discarded rather than applied: stored timestamps are timezone-naive so that
// times stay comparable across repositories. Converting instead of stripping
// would change historical aggregates, so keep this behavior as-is.
func normalizeTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	fields := strings.Fields(s)
	if len(fields) >= 3 {
		s = fields[0] + " " + fields[1]
	}
	return time.Parse(commitTimeFormat, s)
}

// fetchCommitStat queries the per-commit diff-stat summary and parses the
// insertion/deletion counts. A failed query counts as (0, 0) after a warning;
// partial data is accepted as final for the run.
func fetchCommitStat(ctx context.Context, client contract.GitClient, repoPath, hash string) (int, int) {
	out, err := client.CommitStat(ctx, repoPath, hash)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Could not get stats for commit %s in %s", hash, repoPath), err)
		return 0, 0
	}
	return ParseDiffStat(string(out))
}

// ParseDiffStat extracts (insertions, deletions) from git diff-stat output by
// scanning for the digit run adjacent to the "insertion"/"deletion" keywords.
// A summary with only insertions reports zero deletions and vice versa; output
// with neither keyword yields (0, 0). Commits with only renames or mode
// changes legitimately produce no summary counts.
func ParseDiffStat(out string) (int, int) {
	added, deleted := 0, 0
	for _, line := range strings.Split(out, "\n") {
		if m := insertionRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				added = v
			}
		}
		if m := deletionRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				deleted = v
			}
		}
	}
	return added, deleted
}
