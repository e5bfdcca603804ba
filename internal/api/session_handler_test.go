package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanacompanion/kana-api/internal/api/shared"
	"github.com/kanacompanion/kana-api/internal/catalog"
	"github.com/kanacompanion/kana-api/internal/domain/leitner"
	"github.com/kanacompanion/kana-api/internal/mocks"
	"github.com/kanacompanion/kana-api/internal/service/review"
	"github.com/kanacompanion/kana-api/internal/session"
)

// authedRequest builds a request whose context carries the given user ID,
// as the auth middleware would.
func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func TestGetSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns the session snapshot", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockReviewService{
			SessionView: &review.SessionView{
				ActiveCard:  &review.CardView{ID: "hiragana-a", Char: "あ"},
				Mode:        session.ModeRecognition,
				QueueLength: 92,
				DueCount:    92,
			},
		}
		handler := NewSessionHandler(svc, nil)

		recorder := httptest.NewRecorder()
		handler.GetSession(recorder, authedRequest("GET", "/api/session", nil, userID))

		require.Equal(t, http.StatusOK, recorder.Code)
		var view review.SessionView
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&view))
		require.NotNil(t, view.ActiveCard)
		assert.Equal(t, "hiragana-a", view.ActiveCard.ID)
		assert.Equal(t, 92, view.QueueLength)
	})

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()

		handler := NewSessionHandler(&mocks.MockReviewService{}, nil)
		recorder := httptest.NewRecorder()
		handler.GetSession(recorder, httptest.NewRequest("GET", "/api/session", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("maps service failures to 500", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockReviewService{Err: errors.New("store unavailable")}
		handler := NewSessionHandler(svc, nil)

		recorder := httptest.NewRecorder()
		handler.GetSession(recorder, authedRequest("GET", "/api/session", nil, userID))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestResetSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("passes the requested script through", func(t *testing.T) {
		t.Parallel()

		var gotScript catalog.Script
		svc := &mocks.MockReviewService{
			ResetFn: func(ctx context.Context, id uuid.UUID, script catalog.Script) (*review.SessionView, error) {
				gotScript = script
				return &review.SessionView{QueueLength: 46}, nil
			},
		}
		handler := NewSessionHandler(svc, nil)

		recorder := httptest.NewRecorder()
		body := []byte(`{"script":"katakana"}`)
		handler.ResetSession(recorder, authedRequest("POST", "/api/session/reset", body, userID))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, catalog.ScriptKatakana, gotScript)
	})

	t.Run("rejects unknown script", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockReviewService{Err: review.ErrInvalidScript}
		handler := NewSessionHandler(svc, nil)

		recorder := httptest.NewRecorder()
		body := []byte(`{"script":"kanji"}`)
		handler.ResetSession(recorder, authedRequest("POST", "/api/session/reset", body, userID))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects missing script", func(t *testing.T) {
		t.Parallel()

		handler := NewSessionHandler(&mocks.MockReviewService{}, nil)
		recorder := httptest.NewRecorder()
		handler.ResetSession(recorder, authedRequest("POST", "/api/session/reset", []byte(`{}`), userID))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestSetMode(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("passes the mode through", func(t *testing.T) {
		t.Parallel()

		var gotMode session.StudyMode
		svc := &mocks.MockReviewService{
			SetModeFn: func(ctx context.Context, id uuid.UUID, mode session.StudyMode) (*review.SessionView, error) {
				gotMode = mode
				return &review.SessionView{Mode: mode}, nil
			},
		}
		handler := NewSessionHandler(svc, nil)

		recorder := httptest.NewRecorder()
		body := []byte(`{"mode":"mixed"}`)
		handler.SetMode(recorder, authedRequest("POST", "/api/session/mode", body, userID))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, session.ModeMixed, gotMode)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockReviewService{Err: review.ErrInvalidMode}
		handler := NewSessionHandler(svc, nil)

		recorder := httptest.NewRecorder()
		body := []byte(`{"mode":"osmosis"}`)
		handler.SetMode(recorder, authedRequest("POST", "/api/session/mode", body, userID))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestSubmitGrade(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns the grade outcome", func(t *testing.T) {
		t.Parallel()

		var gotGrade leitner.Grade
		svc := &mocks.MockReviewService{
			SubmitGradeFn: func(ctx context.Context, id uuid.UUID, grade leitner.Grade) (*review.GradeView, error) {
				gotGrade = grade
				return &review.GradeView{
					Previous: review.CardView{ID: "hiragana-a", Box: 1},
					Updated:  review.CardView{ID: "hiragana-a", Box: 2},
				}, nil
			},
		}
		handler := NewSessionHandler(svc, nil)

		recorder := httptest.NewRecorder()
		body := []byte(`{"grade":2}`)
		handler.SubmitGrade(recorder, authedRequest("POST", "/api/session/grade", body, userID))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, leitner.Grade(2), gotGrade)

		var view review.GradeView
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&view))
		assert.Equal(t, leitner.Box(2), view.Updated.Box)
	})

	t.Run("grade zero is a valid payload", func(t *testing.T) {
		t.Parallel()

		var gotGrade leitner.Grade
		svc := &mocks.MockReviewService{
			SubmitGradeFn: func(ctx context.Context, id uuid.UUID, grade leitner.Grade) (*review.GradeView, error) {
				gotGrade = grade
				return &review.GradeView{}, nil
			},
		}
		handler := NewSessionHandler(svc, nil)

		recorder := httptest.NewRecorder()
		handler.SubmitGrade(recorder, authedRequest("POST", "/api/session/grade", []byte(`{"grade":0}`), userID))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, leitner.Grade(0), gotGrade)
	})

	t.Run("missing grade is rejected", func(t *testing.T) {
		t.Parallel()

		handler := NewSessionHandler(&mocks.MockReviewService{}, nil)
		recorder := httptest.NewRecorder()
		handler.SubmitGrade(recorder, authedRequest("POST", "/api/session/grade", []byte(`{}`), userID))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("out-of-range grade is rejected", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.MockReviewService{Err: review.ErrInvalidGrade}
		handler := NewSessionHandler(svc, nil)

		recorder := httptest.NewRecorder()
		handler.SubmitGrade(recorder, authedRequest("POST", "/api/session/grade", []byte(`{"grade":4}`), userID))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("empty queue responds 204", func(t *testing.T) {
		t.Parallel()

		// nil view with nil error is the caught-up signal
		handler := NewSessionHandler(&mocks.MockReviewService{}, nil)

		recorder := httptest.NewRecorder()
		handler.SubmitGrade(recorder, authedRequest("POST", "/api/session/grade", []byte(`{"grade":2}`), userID))

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.Bytes())
	})
}
