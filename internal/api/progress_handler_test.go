package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanacompanion/kana-api/internal/mocks"
	"github.com/kanacompanion/kana-api/internal/store"
)

func TestGetSummary(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns the rollup", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockReviewService{
			SummaryFn: func(ctx context.Context, id uuid.UUID) (*store.ProgressSummary, error) {
				return &store.ProgressSummary{TotalCards: 30, DueCards: 4}, nil
			},
		}
		handler := NewProgressHandler(svc, nil)

		recorder := httptest.NewRecorder()
		handler.GetSummary(recorder, authedRequest("GET", "/api/progress/summary", nil, userID))

		require.Equal(t, http.StatusOK, recorder.Code)
		var summary store.ProgressSummary
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&summary))
		assert.Equal(t, 30, summary.TotalCards)
		assert.Equal(t, 4, summary.DueCards)
	})

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()

		handler := NewProgressHandler(&mocks.MockReviewService{}, nil)
		recorder := httptest.NewRecorder()
		handler.GetSummary(recorder, httptest.NewRequest("GET", "/api/progress/summary", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestGetBreakdown(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns per-box statistics", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockReviewService{
			BreakdownFn: func(ctx context.Context, id uuid.UUID) ([]store.BoxBreakdown, error) {
				return []store.BoxBreakdown{
					{Box: 1, Count: 10, AverageScore: 0.8},
					{Box: 2, Count: 5, AverageScore: 2.1},
				}, nil
			},
		}
		handler := NewProgressHandler(svc, nil)

		recorder := httptest.NewRecorder()
		handler.GetBreakdown(recorder, authedRequest("GET", "/api/progress/breakdown", nil, userID))

		require.Equal(t, http.StatusOK, recorder.Code)
		var breakdown []store.BoxBreakdown
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&breakdown))
		require.Len(t, breakdown, 2)
		assert.Equal(t, 10, breakdown[0].Count)
	})

	t.Run("maps store failures to 500", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockReviewService{Err: errors.New("store unavailable")}
		handler := NewProgressHandler(svc, nil)

		recorder := httptest.NewRecorder()
		handler.GetBreakdown(recorder, authedRequest("GET", "/api/progress/breakdown", nil, userID))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
