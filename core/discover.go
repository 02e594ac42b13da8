package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/schema"
)

// ErrNoRepositories reports that discovery matched no Git repositories.
// Callers must treat this as a distinct terminal condition from "repositories
// found with zero commits in the window".
var ErrNoRepositories = errors.New("no git repositories found for the given paths")

// DiscoverRepositories resolves path patterns into confirmed Git working
// directories. Glob syntax is expanded, non-directories and directories
// without Git metadata are warned about and skipped, and the result is
// returned as sorted absolute paths with duplicates removed.
func DiscoverRepositories(patterns []string) []schema.RepositoryHandle {
	seen := make(map[string]struct{})
	var repos []schema.RepositoryHandle

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Bad path pattern %q, skipping", pattern), err)
			continue
		}
		if len(matches) == 0 {
			contract.LogWarn(fmt.Sprintf("%s matched nothing, skipping", pattern), nil)
			continue
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				contract.LogWarn(fmt.Sprintf("%s is not a directory, skipping", match), nil)
				continue
			}
			// A .git entry may be a directory or, for worktrees, a file.
			if _, err := os.Stat(filepath.Join(match, ".git")); err != nil {
				contract.LogWarn(fmt.Sprintf("%s is not a Git repository, skipping", match), nil)
				continue
			}

			abs, err := filepath.Abs(match)
			if err != nil {
				contract.LogWarn(fmt.Sprintf("Cannot resolve absolute path for %s, skipping", match), err)
				continue
			}
			if _, ok := seen[abs]; ok {
				continue
			}
			seen[abs] = struct{}{}
			repos = append(repos, schema.RepositoryHandle{Path: abs})
		}
	}

	// Sorted-path order makes the downstream first-seen dedup deterministic.
	sort.Slice(repos, func(i, j int) bool {
		return repos[i].Path < repos[j].Path
	})
	return repos
}
