package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/kanacompanion/kana-api/internal/catalog"
	"github.com/kanacompanion/kana-api/internal/domain/leitner"
	"github.com/kanacompanion/kana-api/internal/service/review"
	"github.com/kanacompanion/kana-api/internal/session"
	"github.com/kanacompanion/kana-api/internal/store"
)

// MockReviewService implements review.ReviewService for testing
type MockReviewService struct {
	SessionFn     func(ctx context.Context, userID uuid.UUID) (*review.SessionView, error)
	ResetFn       func(ctx context.Context, userID uuid.UUID, script catalog.Script) (*review.SessionView, error)
	SetModeFn     func(ctx context.Context, userID uuid.UUID, mode session.StudyMode) (*review.SessionView, error)
	SubmitGradeFn func(ctx context.Context, userID uuid.UUID, grade leitner.Grade) (*review.GradeView, error)
	SummaryFn     func(ctx context.Context, userID uuid.UUID) (*store.ProgressSummary, error)
	BreakdownFn   func(ctx context.Context, userID uuid.UUID) ([]store.BoxBreakdown, error)

	// Default values used when functions aren't explicitly defined
	SessionView *review.SessionView
	GradeView   *review.GradeView
	Err         error
}

var _ review.ReviewService = (*MockReviewService)(nil)

// Session implements the review.ReviewService interface
func (m *MockReviewService) Session(
	ctx context.Context,
	userID uuid.UUID,
) (*review.SessionView, error) {
	if m.SessionFn != nil {
		return m.SessionFn(ctx, userID)
	}
	return m.SessionView, m.Err
}

// Reset implements the review.ReviewService interface
func (m *MockReviewService) Reset(
	ctx context.Context,
	userID uuid.UUID,
	script catalog.Script,
) (*review.SessionView, error) {
	if m.ResetFn != nil {
		return m.ResetFn(ctx, userID, script)
	}
	return m.SessionView, m.Err
}

// SetMode implements the review.ReviewService interface
func (m *MockReviewService) SetMode(
	ctx context.Context,
	userID uuid.UUID,
	mode session.StudyMode,
) (*review.SessionView, error) {
	if m.SetModeFn != nil {
		return m.SetModeFn(ctx, userID, mode)
	}
	return m.SessionView, m.Err
}

// SubmitGrade implements the review.ReviewService interface
func (m *MockReviewService) SubmitGrade(
	ctx context.Context,
	userID uuid.UUID,
	grade leitner.Grade,
) (*review.GradeView, error) {
	if m.SubmitGradeFn != nil {
		return m.SubmitGradeFn(ctx, userID, grade)
	}
	return m.GradeView, m.Err
}

// Summary implements the review.ReviewService interface
func (m *MockReviewService) Summary(
	ctx context.Context,
	userID uuid.UUID,
) (*store.ProgressSummary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, userID)
	}
	return nil, m.Err
}

// Breakdown implements the review.ReviewService interface
func (m *MockReviewService) Breakdown(
	ctx context.Context,
	userID uuid.UUID,
) ([]store.BoxBreakdown, error) {
	if m.BreakdownFn != nil {
		return m.BreakdownFn(ctx, userID)
	}
	return nil, m.Err
}
