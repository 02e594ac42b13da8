//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

// binary is the repostats CLI compiled once and shared by every test in the
// package. dir is removed by TestMain after the run.
var binary struct {
	sync.Once
	path string
	dir  string
}

func TestMain(m *testing.M) {
	code := m.Run()
	if binary.dir != "" {
		_ = os.RemoveAll(binary.dir)
	}
	os.Exit(code)
}

// getRepostatsBinary builds the CLI on first use and returns its path.
func getRepostatsBinary() string {
	binary.Do(func() {
		dir, err := os.MkdirTemp("", "repostats-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}
		binary.dir = dir
		binary.path = filepath.Join(dir, "repostats")

		build := exec.Command("go", "build", "-o", binary.path, "./cmd/repostats")
		build.Dir = ".." // project root
		if out, err := build.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build repostats: %v\n%s", err, out))
		}
	})
	return binary.path
}
