package mocks

import (
	"context"

	"github.com/rpggio/swipecount/internal/domain/activity"
	"github.com/rpggio/swipecount/internal/domain/counter"
	"github.com/stretchr/testify/mock"
)

// SnapshotRepository is a mock for counter.Repository.
type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) LoadSnapshot(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotRepository) SaveSnapshot(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// Persister is a mock for counter.Persister.
type Persister struct {
	mock.Mock
}

func (m *Persister) Persist(counters []counter.Counter, change counter.Change) {
	m.Called(counters, change)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
