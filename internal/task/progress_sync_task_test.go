package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kanacompanion/kana-api/internal/domain"
	"github.com/kanacompanion/kana-api/internal/store"
)

// MockProgressStore is a mock implementation of the store.ProgressStore interface
type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) Upsert(ctx context.Context, progress *domain.Progress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Progress), args.Error(1)
}

func (m *MockProgressStore) Summary(ctx context.Context, userID uuid.UUID, now time.Time) (*store.ProgressSummary, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ProgressSummary), args.Error(1)
}

func (m *MockProgressStore) Breakdown(ctx context.Context, userID uuid.UUID) ([]store.BoxBreakdown, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.BoxBreakdown), args.Error(1)
}

func validProgress(t *testing.T) *domain.Progress {
	t.Helper()
	return &domain.Progress{
		UserID:    uuid.New(),
		CardID:    "hiragana-a",
		Box:       2,
		DueAt:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		LastScore: 3,
		SeenCount: 1,
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewProgressSyncTask(t *testing.T) {
	t.Parallel()

	progressStore := new(MockProgressStore)
	progress := validProgress(t)

	taskInstance, err := NewProgressSyncTask(progress, progressStore)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, taskInstance.ID())
	assert.Equal(t, TaskTypeProgressSync, taskInstance.Type())
	assert.Same(t, progress, taskInstance.Progress())

	_, err = NewProgressSyncTask(nil, progressStore)
	assert.ErrorIs(t, err, ErrNilProgress)

	_, err = NewProgressSyncTask(progress, nil)
	assert.ErrorIs(t, err, ErrNilProgressStore)

	invalid := validProgress(t)
	invalid.SeenCount = 0
	_, err = NewProgressSyncTask(invalid, progressStore)
	assert.ErrorIs(t, err, domain.ErrUnseenProgress)
}

func TestProgressSyncTaskExecute(t *testing.T) {
	t.Parallel()

	progress := validProgress(t)

	t.Run("upsert succeeds", func(t *testing.T) {
		t.Parallel()
		progressStore := new(MockProgressStore)
		progressStore.On("Upsert", mock.Anything, progress).Return(nil)

		taskInstance, err := NewProgressSyncTask(progress, progressStore)
		require.NoError(t, err)

		assert.NoError(t, taskInstance.Execute(context.Background()))
		progressStore.AssertExpectations(t)
	})

	t.Run("upsert failure is propagated", func(t *testing.T) {
		t.Parallel()
		progressStore := new(MockProgressStore)
		progressStore.On("Upsert", mock.Anything, progress).Return(assert.AnError)

		taskInstance, err := NewProgressSyncTask(progress, progressStore)
		require.NoError(t, err)

		err = taskInstance.Execute(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
		progressStore.AssertExpectations(t)
	})
}
