package statsdb

import (
	"github.com/huangsam/repostats/schema"
	"github.com/stretchr/testify/mock"
)

// MockStatsStore is a mock implementation of the StatsStore interface for testing.
type MockStatsStore struct {
	mock.Mock
}

// BeginRun mocks run creation.
func (m *MockStatsStore) BeginRun(run schema.RunRecord) (int64, error) {
	args := m.Called(run)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun mocks run completion.
func (m *MockStatsStore) EndRun(runID int64, run schema.RunRecord) error {
	args := m.Called(runID, run)
	return args.Error(0)
}

// RecordBuckets mocks bucket persistence.
func (m *MockStatsStore) RecordBuckets(runID int64, buckets []schema.BucketRecord) error {
	args := m.Called(runID, buckets)
	return args.Error(0)
}

// GetStatus mocks status retrieval.
func (m *MockStatsStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Clear mocks store truncation.
func (m *MockStatsStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close mocks connection shutdown.
func (m *MockStatsStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
