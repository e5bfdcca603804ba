package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kanacompanion/kana-api/internal/domain"
	"github.com/kanacompanion/kana-api/internal/domain/leitner"
	"github.com/kanacompanion/kana-api/internal/platform/logger"
	"github.com/kanacompanion/kana-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Upsert implements store.ProgressStore.Upsert.
// The write is keyed by (user_id, card_id); replaying the same payload
// overwrites the row with identical values, so the operation is idempotent.
func (s *PostgresProgressStore) Upsert(ctx context.Context, progress *domain.Progress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("card_id", progress.CardID))
		return store.NewStoreError("progress", "upsert", "validation failed",
			errors.Join(store.ErrInvalidEntity, err))
	}

	query := `
		INSERT INTO progress (user_id, card_id, box, due_at, last_score, seen_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, card_id) DO UPDATE
		SET box = EXCLUDED.box,
		    due_at = EXCLUDED.due_at,
		    last_score = EXCLUDED.last_score,
		    seen_count = EXCLUDED.seen_count,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.UserID,
		progress.CardID,
		int(progress.Box),
		progress.DueAt,
		int(progress.LastScore),
		progress.SeenCount,
		progress.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("card_id", progress.CardID))
		return MapError(err)
	}

	log.Debug("progress upserted",
		slog.String("user_id", progress.UserID.String()),
		slog.String("card_id", progress.CardID),
		slog.Int("box", int(progress.Box)),
		slog.Int("seen_count", progress.SeenCount))
	return nil
}

// ListByUser implements store.ProgressStore.ListByUser.
// Records are ordered by due date ascending; a learner with no history
// gets an empty slice.
func (s *PostgresProgressStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, card_id, box, due_at, last_score, seen_count, updated_at
		FROM progress
		WHERE user_id = $1
		ORDER BY due_at ASC, card_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.Progress
	for rows.Next() {
		var record domain.Progress
		var box, lastScore int
		if err := rows.Scan(
			&record.UserID,
			&record.CardID,
			&box,
			&record.DueAt,
			&lastScore,
			&record.SeenCount,
			&record.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		record.Box = leitner.Box(box)
		record.LastScore = leitner.Grade(lastScore)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("progress listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(records)))
	return records, nil
}

// Summary implements store.ProgressStore.Summary.
func (s *PostgresProgressStore) Summary(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*store.ProgressSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE due_at <= $2),
		       MAX(updated_at)
		FROM progress
		WHERE user_id = $1
	`

	var summary store.ProgressSummary
	var lastReviewedAt *time.Time
	err := s.db.QueryRowContext(ctx, query, userID, now).Scan(
		&summary.TotalCards,
		&summary.DueCards,
		&lastReviewedAt,
	)
	if err != nil {
		log.Error("failed to summarize progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	summary.LastReviewedAt = lastReviewedAt

	return &summary, nil
}

// Breakdown implements store.ProgressStore.Breakdown.
func (s *PostgresProgressStore) Breakdown(
	ctx context.Context,
	userID uuid.UUID,
) ([]store.BoxBreakdown, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT box, COUNT(*), COALESCE(AVG(last_score::float8), 0)
		FROM progress
		WHERE user_id = $1
		GROUP BY box
		ORDER BY box ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to load progress breakdown",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var breakdown []store.BoxBreakdown
	for rows.Next() {
		var row store.BoxBreakdown
		var box int
		if err := rows.Scan(&box, &row.Count, &row.AverageScore); err != nil {
			return nil, MapError(err)
		}
		row.Box = leitner.Box(box)
		breakdown = append(breakdown, row)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return breakdown, nil
}
