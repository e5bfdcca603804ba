package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kanacompanion/kana-api/internal/domain/leitner"
)

func TestNewProgress(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()
	card := leitner.CardSchedule{
		CardID:    "hiragana-a",
		Box:       2,
		DueAt:     now.AddDate(0, 0, 1),
		LastScore: 3,
		SeenCount: 1,
	}

	progress, err := NewProgress(userID, card, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if progress.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, progress.UserID)
	}
	if progress.CardID != card.CardID {
		t.Errorf("Expected card ID %q, got %q", card.CardID, progress.CardID)
	}
	if progress.Box != card.Box || progress.LastScore != card.LastScore {
		t.Errorf("Expected schedule fields carried over, got %+v", progress)
	}
	if !progress.UpdatedAt.Equal(now) {
		t.Errorf("Expected updated at %v, got %v", now, progress.UpdatedAt)
	}

	roundTripped := progress.Schedule()
	if roundTripped != card {
		t.Errorf("Expected schedule round trip %+v, got %+v", card, roundTripped)
	}
}

func TestProgressValidate(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	testCases := []struct {
		name     string
		progress Progress
		expected error
	}{
		{
			name:     "valid progress",
			progress: Progress{UserID: userID, CardID: "hiragana-a", Box: 1, DueAt: now, LastScore: 0, SeenCount: 1},
			expected: nil,
		},
		{
			name:     "missing user ID",
			progress: Progress{CardID: "hiragana-a", Box: 1, DueAt: now, SeenCount: 1},
			expected: ErrEmptyProgressUserID,
		},
		{
			name:     "missing card ID",
			progress: Progress{UserID: userID, Box: 1, DueAt: now, SeenCount: 1},
			expected: leitner.ErrEmptyCardID,
		},
		{
			name:     "box out of range",
			progress: Progress{UserID: userID, CardID: "hiragana-a", Box: 6, DueAt: now, SeenCount: 1},
			expected: leitner.ErrInvalidBox,
		},
		{
			name:     "score out of range",
			progress: Progress{UserID: userID, CardID: "hiragana-a", Box: 1, DueAt: now, LastScore: 5, SeenCount: 1},
			expected: leitner.ErrInvalidGrade,
		},
		{
			name:     "never reviewed",
			progress: Progress{UserID: userID, CardID: "hiragana-a", Box: 1, DueAt: now, SeenCount: 0},
			expected: ErrUnseenProgress,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.progress.Validate(); err != tc.expected {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestNewUserBasic(t *testing.T) {
	t.Parallel()

	user, err := NewUser("learner@example.com", "correct horse battery staple")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	testCases := []struct {
		name     string
		email    string
		password string
		expected error
	}{
		{name: "empty email", email: "", password: "correct horse battery staple", expected: ErrEmptyEmail},
		{name: "malformed email", email: "learner.example.com", password: "correct horse battery staple", expected: ErrInvalidEmail},
		{name: "short password", email: "learner@example.com", password: "short", expected: ErrPasswordTooShort},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewUser(tc.email, tc.password); err != tc.expected {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}
