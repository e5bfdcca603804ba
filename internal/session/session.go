package session

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/kanacompanion/kana-api/internal/domain/leitner"
)

// Common session errors.
var (
	ErrInvalidMode = errors.New("invalid study mode")
)

// GradeResult reports one completed grading step. Previous is the card as
// it was presented; Updated is its recomputed schedule. The caller is
// responsible for persisting Updated; the session itself performs no I/O.
type GradeResult struct {
	Previous leitner.CardSchedule
	Updated  leitner.CardSchedule
}

// Session holds one learner's in-progress study state: the due-ordered
// queue, the append-only history of reviews completed this session, and
// the selected study mode.
//
// All methods are safe for concurrent use; operations on a single session
// are serialized by its mutex, so a grade can never interleave with a
// reset.
type Session struct {
	mu      sync.Mutex
	queue   []leitner.CardSchedule
	history []leitner.CardSchedule
	mode    StudyMode
}

// NewSession creates an empty session in recognition mode.
func NewSession() *Session {
	return &Session{mode: ModeRecognition}
}

// Initialize seeds the queue if, and only if, it is currently empty and the
// seed is non-empty. Repeated calls with the same or stale seed data are
// no-ops, which protects an in-progress queue from being clobbered when a
// consumer re-sends its seed.
func (s *Session) Initialize(seed []leitner.CardSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) > 0 || len(seed) == 0 {
		return
	}
	s.queue = sortedCopy(seed)
	s.history = nil
}

// Reset unconditionally replaces the queue with the sorted seed and clears
// history. Used for deliberate deck switches.
func (s *Session) Reset(seed []leitner.CardSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = sortedCopy(seed)
	s.history = nil
}

// ActiveCard returns the head of the queue. The second return value is
// false when the queue is empty; an empty queue is the terminal
// "all caught up" state, not an error.
func (s *Session) ActiveCard() (leitner.CardSchedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return leitner.CardSchedule{}, false
	}
	return s.queue[0], true
}

// ApplyGrade grades the active card: it pops the head, computes the next
// schedule, re-inserts the card at its new sorted position and appends it
// to history. Returns nil with no error when the queue is empty; there is
// no active card to grade, and callers must check for this. An out-of-range
// grade is rejected before any state changes.
func (s *Session) ApplyGrade(grade leitner.Grade, now time.Time) (*GradeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !grade.IsValid() {
		return nil, leitner.ErrInvalidGrade
	}
	if len(s.queue) == 0 {
		return nil, nil
	}

	head := s.queue[0]
	updated, err := leitner.ScheduleNext(head, grade, now)
	if err != nil {
		return nil, err
	}

	s.queue = insertByDue(s.queue[1:], updated)
	s.history = append(s.history, updated)

	return &GradeResult{Previous: head, Updated: updated}, nil
}

// DueCount returns how many queued cards are due at the given time. It is
// recomputed on every call rather than cached; the queue is bounded by the
// deck size, so the O(n) scan is cheap and can never go stale.
func (s *Session) DueCount(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, card := range s.queue {
		if leitner.IsDue(card, now) {
			count++
		}
	}
	return count
}

// QueueLen returns the number of cards currently queued.
func (s *Session) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// History returns a copy of the reviews completed this session, in order.
func (s *Session) History() []leitner.CardSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]leitner.CardSchedule, len(s.history))
	copy(out, s.history)
	return out
}

// Mode returns the learner's selected study mode.
func (s *Session) Mode() StudyMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode changes the selected study mode.
func (s *Session) SetMode(mode StudyMode) error {
	if !mode.IsValid() {
		return ErrInvalidMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	return nil
}

// EffectiveMode resolves the presentation mode for the current card from
// the selected mode and the number of reviews completed this session.
func (s *Session) EffectiveMode() StudyMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return EffectiveMode(s.mode, len(s.history))
}

// sortedCopy clones the seed and sorts it into due order.
func sortedCopy(seed []leitner.CardSchedule) []leitner.CardSchedule {
	out := make([]leitner.CardSchedule, len(seed))
	copy(out, seed)
	slices.SortFunc(out, leitner.CompareByDueDate)
	return out
}

// insertByDue inserts the card before the first element whose due date
// strictly exceeds the card's, or appends it when none does. A linear scan
// keeps the queue sorted without a full re-sort after every grade.
func insertByDue(queue []leitner.CardSchedule, card leitner.CardSchedule) []leitner.CardSchedule {
	index := len(queue)
	for i, item := range queue {
		if item.DueAt.After(card.DueAt) {
			index = i
			break
		}
	}

	out := make([]leitner.CardSchedule, 0, len(queue)+1)
	out = append(out, queue[:index]...)
	out = append(out, card)
	out = append(out, queue[index:]...)
	return out
}
