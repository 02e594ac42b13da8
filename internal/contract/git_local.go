package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// ListCommits implements the GitClient interface.
func (c *LocalGitClient) ListCommits(ctx context.Context, repoPath string, since string) ([]byte, error) {
	args := []string{
		"log",
		"--pretty=format:%H|%an|%ad",
		"--date=iso",
	}
	if since != "" {
		// Passed through verbatim; git understands both absolute dates and
		// phrases like "1 year ago".
		args = append(args, "--since", since)
	}
	return c.Run(ctx, repoPath, args...)
}

// CommitStat implements the GitClient interface.
func (c *LocalGitClient) CommitStat(ctx context.Context, repoPath string, hash string) ([]byte, error) {
	args := []string{
		"show", "--stat", "--format=",
		hash,
	}
	return c.Run(ctx, repoPath, args...)
}
