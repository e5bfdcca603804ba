package leitner

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Box is a Leitner difficulty bucket. Box 1 holds the least-known cards,
// box 5 the best-known.
type Box int

// Valid box range.
const (
	MinBox Box = 1
	MaxBox Box = 5
)

// Grade is a discrete 0-3 evaluation of a single review outcome.
// Grades 0 and 1 count as failures, 2 and 3 as successes.
type Grade int

// Valid grade range.
const (
	MinGrade Grade = 0
	MaxGrade Grade = 3

	// successThreshold is the lowest grade that counts as a successful review.
	successThreshold Grade = 2
)

// Common validation errors.
var (
	ErrEmptyCardID  = errors.New("card ID cannot be empty")
	ErrInvalidBox   = fmt.Errorf("box must be between %d and %d", MinBox, MaxBox)
	ErrInvalidGrade = fmt.Errorf("grade must be between %d and %d", MinGrade, MaxGrade)
	ErrNegativeSeen = errors.New("seen count cannot be negative")
)

// boxIntervalDays is the fixed mapping from box to review interval in days.
// It is the sole source of truth for when a card is due next; box 1's zero
// interval makes a freshly failed card immediately due again.
var boxIntervalDays = map[Box]int{
	1: 0,
	2: 1,
	3: 2,
	4: 4,
	5: 7,
}

// IntervalDays returns the review interval in days for the given box.
func IntervalDays(box Box) int {
	return boxIntervalDays[box]
}

// IsSuccess reports whether the grade counts as a successful review.
func (g Grade) IsSuccess() bool {
	return g >= successThreshold
}

// IsValid reports whether the grade is within the accepted 0-3 range.
func (g Grade) IsValid() bool {
	return g >= MinGrade && g <= MaxGrade
}

// IsValid reports whether the box is within the accepted 1-5 range.
func (b Box) IsValid() bool {
	return b >= MinBox && b <= MaxBox
}

// CardSchedule tracks the review schedule for one (card, learner) pair.
type CardSchedule struct {
	CardID    string    `json:"card_id"`
	Box       Box       `json:"box"`
	DueAt     time.Time `json:"due_at"`
	LastScore Grade     `json:"last_score"`
	SeenCount int       `json:"seen_count"`
}

// NewSchedule creates the schedule for a card with no prior review history.
// The card starts in box 1 and is due immediately.
func NewSchedule(cardID string, now time.Time) (CardSchedule, error) {
	if cardID == "" {
		return CardSchedule{}, ErrEmptyCardID
	}

	return CardSchedule{
		CardID:    cardID,
		Box:       MinBox,
		DueAt:     now,
		LastScore: 0,
		SeenCount: 0,
	}, nil
}

// Validate checks if the CardSchedule has valid data.
// Returns an error if any field fails validation.
func (c CardSchedule) Validate() error {
	if c.CardID == "" {
		return ErrEmptyCardID
	}
	if !c.Box.IsValid() {
		return ErrInvalidBox
	}
	if !c.LastScore.IsValid() {
		return ErrInvalidGrade
	}
	if c.SeenCount < 0 {
		return ErrNegativeSeen
	}
	return nil
}

// ScheduleNext computes the card's next schedule from a review grade.
//
// A successful grade (2 or 3) advances the card one box, capped at box 5.
// Any failure (0 or 1) resets the card fully to box 1 regardless of its
// current box; this harsh-reset policy is deliberate and makes a failed
// card re-studyable within the same session. The next due date is now plus
// the interval of the NEW box.
//
// The input is never mutated; a new value is returned. An out-of-range
// grade is a contract violation and is rejected, never clamped.
func ScheduleNext(card CardSchedule, grade Grade, now time.Time) (CardSchedule, error) {
	if !grade.IsValid() {
		return CardSchedule{}, ErrInvalidGrade
	}

	nextBox := MinBox
	if grade.IsSuccess() {
		nextBox = card.Box + 1
		if nextBox > MaxBox {
			nextBox = MaxBox
		}
	}

	next := card
	next.Box = nextBox
	next.DueAt = now.AddDate(0, 0, IntervalDays(nextBox))
	next.LastScore = grade
	next.SeenCount = card.SeenCount + 1

	return next, nil
}

// IsDue reports whether the card is eligible for review at the given time.
func IsDue(card CardSchedule, now time.Time) bool {
	return !card.DueAt.After(now)
}

// CompareByDueDate orders schedules by due date ascending, breaking exact
// ties by card ID in lexicographic order. The tie-break makes the ordering
// a strict total order, which keeps queue positions deterministic when
// freshly seeded cards share an identical due date.
func CompareByDueDate(a, b CardSchedule) int {
	switch {
	case a.DueAt.Before(b.DueAt):
		return -1
	case a.DueAt.After(b.DueAt):
		return 1
	default:
		return strings.Compare(a.CardID, b.CardID)
	}
}
