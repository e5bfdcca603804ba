package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kanacompanion/kana-api/internal/catalog"
	"github.com/kanacompanion/kana-api/internal/domain"
	"github.com/kanacompanion/kana-api/internal/domain/leitner"
	"github.com/kanacompanion/kana-api/internal/platform/logger"
	"github.com/kanacompanion/kana-api/internal/session"
	"github.com/kanacompanion/kana-api/internal/store"
	"github.com/kanacompanion/kana-api/internal/task"
)

// TaskSubmitter enqueues background tasks. *task.Runner satisfies it.
type TaskSubmitter interface {
	Submit(t task.Task) error
}

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	sessions      *session.Manager
	progressStore store.ProgressStore
	tasks         TaskSubmitter
	timeFunc      func() time.Time // Injectable for testing
	logger        *slog.Logger
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	sessions *session.Manager,
	progressStore store.ProgressStore,
	tasks TaskSubmitter,
	logger *slog.Logger,
) ReviewService {
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if tasks == nil {
		panic("tasks cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		sessions:      sessions,
		progressStore: progressStore,
		tasks:         tasks,
		timeFunc:      time.Now,
		logger:        logger.With(slog.String("component", "review_service")),
	}
}

// Session implements ReviewService.Session.
func (r *reviewServiceImpl) Session(
	ctx context.Context,
	userID uuid.UUID,
) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	sess, err := r.ensureSession(ctx, userID)
	if err != nil {
		log.Error("failed to initialize session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewSessionError("failed to initialize session", err)
	}

	view := r.snapshot(sess)
	return &view, nil
}

// Reset implements ReviewService.Reset.
func (r *reviewServiceImpl) Reset(
	ctx context.Context,
	userID uuid.UUID,
	script catalog.Script,
) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	if !script.IsValid() {
		return nil, ErrInvalidScript
	}

	seed, err := r.seed(ctx, userID, script)
	if err != nil {
		log.Error("failed to build session seed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("script", string(script)))
		return nil, NewSessionError("failed to build session seed", err)
	}

	sess := r.sessions.Get(userID)
	sess.Reset(seed)

	log.Debug("session reset",
		slog.String("user_id", userID.String()),
		slog.String("script", string(script)),
		slog.Int("queue_length", sess.QueueLen()))

	view := r.snapshot(sess)
	return &view, nil
}

// SetMode implements ReviewService.SetMode.
func (r *reviewServiceImpl) SetMode(
	ctx context.Context,
	userID uuid.UUID,
	mode session.StudyMode,
) (*SessionView, error) {
	sess, err := r.ensureSession(ctx, userID)
	if err != nil {
		return nil, NewSessionError("failed to initialize session", err)
	}

	if err := sess.SetMode(mode); err != nil {
		return nil, ErrInvalidMode
	}

	view := r.snapshot(sess)
	return &view, nil
}

// SubmitGrade implements ReviewService.SubmitGrade.
func (r *reviewServiceImpl) SubmitGrade(
	ctx context.Context,
	userID uuid.UUID,
	grade leitner.Grade,
) (*GradeView, error) {
	_ = logger.FromContextOrDefault(ctx, r.logger)

	sess, err := r.ensureSession(ctx, userID)
	if err != nil {
		return nil, NewSubmitGradeError("failed to initialize session", err)
	}

	now := r.timeFunc()
	result, err := sess.ApplyGrade(grade, now)
	if err != nil {
		if errors.Is(err, leitner.ErrInvalidGrade) {
			return nil, ErrInvalidGrade
		}
		return nil, NewSubmitGradeError("failed to apply grade", err)
	}
	if result == nil {
		// Empty queue: nothing to grade, session unchanged.
		return nil, nil
	}

	r.schedulePersist(ctx, userID, result.Updated, now)

	return &GradeView{
		Previous: r.cardView(result.Previous),
		Updated:  r.cardView(result.Updated),
		Session:  r.snapshot(sess),
	}, nil
}

// Summary implements ReviewService.Summary.
func (r *reviewServiceImpl) Summary(
	ctx context.Context,
	userID uuid.UUID,
) (*store.ProgressSummary, error) {
	summary, err := r.progressStore.Summary(ctx, userID, r.timeFunc())
	if err != nil {
		return nil, NewProgressError("failed to load progress summary", err)
	}
	return summary, nil
}

// Breakdown implements ReviewService.Breakdown.
func (r *reviewServiceImpl) Breakdown(
	ctx context.Context,
	userID uuid.UUID,
) ([]store.BoxBreakdown, error) {
	breakdown, err := r.progressStore.Breakdown(ctx, userID)
	if err != nil {
		return nil, NewProgressError("failed to load progress breakdown", err)
	}
	return breakdown, nil
}

// ensureSession returns the learner's session, seeding it from the full
// catalog on first access. Initialize is a no-op on a non-empty queue, so
// concurrent first requests cannot clobber each other.
func (r *reviewServiceImpl) ensureSession(
	ctx context.Context,
	userID uuid.UUID,
) (*session.Session, error) {
	sess := r.sessions.Get(userID)
	if sess.QueueLen() > 0 {
		return sess, nil
	}

	seed, err := r.seed(ctx, userID, catalog.ScriptAll)
	if err != nil {
		return nil, err
	}
	sess.Initialize(seed)
	return sess, nil
}

// seed merges persisted progress into the catalog for the given script:
// cards with saved progress resume at their saved box and due date, the
// rest start fresh in box 1, due immediately.
func (r *reviewServiceImpl) seed(
	ctx context.Context,
	userID uuid.UUID,
	script catalog.Script,
) ([]leitner.CardSchedule, error) {
	saved, err := r.progressStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved progress: %w", err)
	}

	byCard := make(map[string]*domain.Progress, len(saved))
	for _, p := range saved {
		byCard[p.CardID] = p
	}

	now := r.timeFunc()
	entries := catalog.ByScript(script)
	seed := make([]leitner.CardSchedule, 0, len(entries))
	for _, entry := range entries {
		if p, ok := byCard[entry.ID]; ok {
			seed = append(seed, p.Schedule())
			continue
		}
		card, err := leitner.NewSchedule(entry.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to seed card %q: %w", entry.ID, err)
		}
		seed = append(seed, card)
	}
	return seed, nil
}

// schedulePersist hands the updated schedule to the background runner.
// Persistence is best-effort: a full queue or invalid payload is logged
// and the in-memory session stays authoritative for the rest of the run.
func (r *reviewServiceImpl) schedulePersist(
	ctx context.Context,
	userID uuid.UUID,
	updated leitner.CardSchedule,
	now time.Time,
) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	progress, err := domain.NewProgress(userID, updated, now)
	if err != nil {
		log.Error("failed to build progress record",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", updated.CardID))
		return
	}

	syncTask, err := task.NewProgressSyncTask(progress, r.progressStore)
	if err != nil {
		log.Error("failed to create progress sync task",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", updated.CardID))
		return
	}

	if err := r.tasks.Submit(syncTask); err != nil {
		log.Warn("progress sync dropped",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", updated.CardID))
	}
}

// snapshot builds a view of the session at the current time.
func (r *reviewServiceImpl) snapshot(sess *session.Session) SessionView {
	now := r.timeFunc()

	view := SessionView{
		Mode:          sess.Mode(),
		EffectiveMode: sess.EffectiveMode(),
		QueueLength:   sess.QueueLen(),
		DueCount:      sess.DueCount(now),
		ReviewCount:   len(sess.History()),
	}

	if head, ok := sess.ActiveCard(); ok {
		card := r.cardView(head)
		view.ActiveCard = &card
	} else {
		view.CaughtUp = true
	}
	return view
}

// cardView joins a schedule with its catalog entry.
func (r *reviewServiceImpl) cardView(card leitner.CardSchedule) CardView {
	view := CardView{
		ID:        card.CardID,
		Box:       card.Box,
		DueAt:     card.DueAt,
		LastScore: card.LastScore,
		SeenCount: card.SeenCount,
	}
	if entry, ok := catalog.ByID(card.CardID); ok {
		view.Char = entry.Char
		view.Romaji = entry.Romaji
		view.Script = string(entry.Script)
	}
	return view
}
