package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kanacompanion/kana-api/internal/domain"
	"github.com/kanacompanion/kana-api/internal/store"
)

// TaskTypeProgressSync identifies the background upsert of a graded
// schedule.
const TaskTypeProgressSync = "progress_sync"

// Common errors
var (
	ErrNilProgressStore = errors.New("progress store cannot be nil")
	ErrNilProgress      = errors.New("progress cannot be nil")
)

// ProgressSyncTask pushes one graded schedule to the persistence sink.
// The session that produced the grade has already advanced; this task is
// the asynchronous half of the optimistic update.
type ProgressSyncTask struct {
	id       uuid.UUID
	progress *domain.Progress
	store    store.ProgressStore
}

// NewProgressSyncTask creates a task that upserts the given progress
// record.
func NewProgressSyncTask(progress *domain.Progress, progressStore store.ProgressStore) (*ProgressSyncTask, error) {
	if progressStore == nil {
		return nil, ErrNilProgressStore
	}
	if progress == nil {
		return nil, ErrNilProgress
	}
	if err := progress.Validate(); err != nil {
		return nil, fmt.Errorf("invalid progress payload: %w", err)
	}

	return &ProgressSyncTask{
		id:       uuid.New(),
		progress: progress,
		store:    progressStore,
	}, nil
}

// ID implements Task.ID.
func (t *ProgressSyncTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.Type.
func (t *ProgressSyncTask) Type() string {
	return TaskTypeProgressSync
}

// Progress exposes the payload for error handlers that want to report
// which card failed to sync.
func (t *ProgressSyncTask) Progress() *domain.Progress {
	return t.progress
}

// Execute implements Task.Execute. The upsert is idempotent at the store,
// so re-running a delivered task is harmless.
func (t *ProgressSyncTask) Execute(ctx context.Context) error {
	if err := t.store.Upsert(ctx, t.progress); err != nil {
		return fmt.Errorf("failed to sync progress for card %s: %w", t.progress.CardID, err)
	}
	return nil
}
