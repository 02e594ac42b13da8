package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []interface{}{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ListCommits implements the GitClient interface.
func (m *MockGitClient) ListCommits(ctx context.Context, repoPath string, since string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, since)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// CommitStat implements the GitClient interface.
func (m *MockGitClient) CommitStat(ctx context.Context, repoPath string, hash string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, hash)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
