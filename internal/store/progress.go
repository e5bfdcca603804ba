package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kanacompanion/kana-api/internal/domain"
	"github.com/kanacompanion/kana-api/internal/domain/leitner"
)

// BoxBreakdown summarizes one Leitner box for a learner: how many cards
// sit in it and the average of their most recent scores.
type BoxBreakdown struct {
	Box          leitner.Box `json:"box"`
	Count        int         `json:"count"`
	AverageScore float64     `json:"average_score"`
}

// ProgressSummary is the learner-level progress rollup.
type ProgressSummary struct {
	TotalCards     int        `json:"total_cards"`
	DueCards       int        `json:"due_cards"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

// ProgressStore defines the interface for per-learner schedule persistence.
// It is the persistence sink of the scheduling engine: writes happen after
// the in-memory session has already advanced, so implementations must be
// idempotent upserts keyed by (user ID, card ID); replaying the same
// payload never creates duplicate rows.
type ProgressStore interface {
	// Upsert creates or replaces the progress row for (progress.UserID,
	// progress.CardID). It handles domain validation internally and
	// returns ErrInvalidEntity wrapping the validation failure when the
	// record violates the persistence constraints.
	Upsert(ctx context.Context, progress *domain.Progress) error

	// ListByUser returns all of a learner's progress records ordered by
	// due date ascending. An empty slice, not an error, means the learner
	// has no history yet.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error)

	// Summary returns the learner's progress rollup relative to now.
	Summary(ctx context.Context, userID uuid.UUID, now time.Time) (*ProgressSummary, error)

	// Breakdown returns per-box counts and average scores for the learner,
	// ordered by box ascending. Boxes with no cards are omitted.
	Breakdown(ctx context.Context, userID uuid.UUID) ([]BoxBreakdown, error)
}
