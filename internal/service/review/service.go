// Package review orchestrates a learner's study flow: it lazily builds the
// in-memory session from persisted progress and the kana catalog, applies
// grades through the Leitner scheduler, and hands the updated schedule to
// the background task runner for persistence.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kanacompanion/kana-api/internal/catalog"
	"github.com/kanacompanion/kana-api/internal/domain/leitner"
	"github.com/kanacompanion/kana-api/internal/session"
	"github.com/kanacompanion/kana-api/internal/store"
)

// CardView is the presentation shape of the active card: catalog fields
// joined with the card's current schedule.
type CardView struct {
	ID        string        `json:"id"`
	Char      string        `json:"char"`
	Romaji    string        `json:"romaji"`
	Script    string        `json:"script"`
	Box       leitner.Box   `json:"box"`
	DueAt     time.Time     `json:"dueAt"`
	LastScore leitner.Grade `json:"lastScore"`
	SeenCount int           `json:"seenCount"`
}

// SessionView is a snapshot of a learner's session. ActiveCard is nil when
// the queue is empty, in which case CaughtUp is true.
type SessionView struct {
	ActiveCard    *CardView         `json:"activeCard"`
	Mode          session.StudyMode `json:"mode"`
	EffectiveMode session.StudyMode `json:"effectiveMode"`
	QueueLength   int               `json:"queueLength"`
	DueCount      int               `json:"dueCount"`
	ReviewCount   int               `json:"reviewCount"`
	CaughtUp      bool              `json:"caughtUp"`
}

// GradeView reports one completed grading step together with the session
// snapshot the learner should see next.
type GradeView struct {
	Previous CardView    `json:"previous"`
	Updated  CardView    `json:"updated"`
	Session  SessionView `json:"session"`
}

// ReviewService drives study sessions for learners.
type ReviewService interface {
	// Session returns the learner's current session snapshot, lazily
	// seeding the queue from persisted progress and the full kana catalog
	// on first access.
	Session(ctx context.Context, userID uuid.UUID) (*SessionView, error)

	// Reset discards the learner's session state and reseeds the queue
	// with the cards of the given script. Returns ErrInvalidScript when
	// the script is not recognized.
	Reset(ctx context.Context, userID uuid.UUID, script catalog.Script) (*SessionView, error)

	// SetMode changes the learner's selected study mode. Returns
	// ErrInvalidMode when the mode is not recognized.
	SetMode(ctx context.Context, userID uuid.UUID, mode session.StudyMode) (*SessionView, error)

	// SubmitGrade grades the active card and schedules its persistence.
	// Returns (nil, nil) when the queue is empty: there is no card to
	// grade and the session is unchanged. Returns ErrInvalidGrade when
	// the grade is out of range.
	SubmitGrade(ctx context.Context, userID uuid.UUID, grade leitner.Grade) (*GradeView, error)

	// Summary returns the learner's persisted progress rollup.
	Summary(ctx context.Context, userID uuid.UUID) (*store.ProgressSummary, error)

	// Breakdown returns the learner's persisted per-box statistics.
	Breakdown(ctx context.Context, userID uuid.UUID) ([]store.BoxBreakdown, error)
}

// Common error types for ReviewService
var (
	// ErrInvalidScript indicates an unrecognized script filter.
	ErrInvalidScript = errors.New("invalid script")

	// ErrInvalidGrade indicates an out-of-range grade.
	ErrInvalidGrade = errors.New("invalid grade")

	// ErrInvalidMode indicates an unrecognized study mode.
	ErrInvalidMode = errors.New("invalid study mode")
)

// ServiceError wraps errors from the review service with additional
// context, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_grade")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSessionError returns a new ServiceError for the session operation.
func NewSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "session", Message: message, Err: err}
}

// NewSubmitGradeError returns a new ServiceError for the submit_grade
// operation.
func NewSubmitGradeError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_grade", Message: message, Err: err}
}

// NewProgressError returns a new ServiceError for progress read
// operations.
func NewProgressError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "progress", Message: message, Err: err}
}
