// Package task provides background processing for persistence side
// effects. Grading advances the in-memory session immediately; the write
// to the store is submitted here and runs fire-and-forget, so the learner
// never waits on the database. Failed writes are reported through the
// runner's error handler and are not retried; the in-memory session stays
// authoritative for its lifetime and the next session re-seeds from
// whatever the store holds.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}
