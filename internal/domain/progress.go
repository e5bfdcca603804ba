package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kanacompanion/kana-api/internal/domain/leitner"
)

// Progress validation errors
var (
	ErrEmptyProgressUserID = errors.New("progress user ID cannot be empty")
	ErrUnseenProgress      = errors.New("progress is only persisted after at least one review")
)

// Progress is the persisted form of a card schedule for one learner. It is
// keyed by (UserID, CardID) and upserted after every graded review; a
// schedule with no reviews yet is never written, so SeenCount is at least 1
// for every stored row.
type Progress struct {
	UserID    uuid.UUID     `json:"user_id"`
	CardID    string        `json:"card_id"`
	Box       leitner.Box   `json:"box"`
	DueAt     time.Time     `json:"due_at"`
	LastScore leitner.Grade `json:"last_score"`
	SeenCount int           `json:"seen_count"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewProgress builds the persistence record for a graded schedule.
// Returns an error if validation fails.
func NewProgress(userID uuid.UUID, card leitner.CardSchedule, now time.Time) (*Progress, error) {
	progress := &Progress{
		UserID:    userID,
		CardID:    card.CardID,
		Box:       card.Box,
		DueAt:     card.DueAt,
		LastScore: card.LastScore,
		SeenCount: card.SeenCount,
		UpdatedAt: now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the Progress has valid data, applying the persistence
// boundary constraints: box 1..5, last score 0..3, seen count >= 1.
func (p *Progress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}
	if p.CardID == "" {
		return leitner.ErrEmptyCardID
	}
	if !p.Box.IsValid() {
		return leitner.ErrInvalidBox
	}
	if !p.LastScore.IsValid() {
		return leitner.ErrInvalidGrade
	}
	if p.SeenCount < 1 {
		return ErrUnseenProgress
	}
	return nil
}

// Schedule converts the stored record back into an in-memory card schedule.
func (p *Progress) Schedule() leitner.CardSchedule {
	return leitner.CardSchedule{
		CardID:    p.CardID,
		Box:       p.Box,
		DueAt:     p.DueAt,
		LastScore: p.LastScore,
		SeenCount: p.SeenCount,
	}
}
