package api

import (
	"log/slog"
	"net/http"

	"github.com/kanacompanion/kana-api/internal/api/shared"
	"github.com/kanacompanion/kana-api/internal/catalog"
	"github.com/kanacompanion/kana-api/internal/domain/leitner"
	"github.com/kanacompanion/kana-api/internal/service/review"
	"github.com/kanacompanion/kana-api/internal/session"
)

// SessionHandler handles study-session API requests.
type SessionHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewSessionHandler creates a new SessionHandler with the given dependencies.
func NewSessionHandler(reviewService review.ReviewService, logger *slog.Logger) *SessionHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "session_handler")),
	}
}

// GetSession handles GET /api/session. The first request for a learner
// seeds their queue from saved progress and the full kana catalog.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	view, err := h.reviewService.Session(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// ResetSession handles POST /api/session/reset. It discards the learner's
// queue and history and reseeds from the requested script.
func (h *SessionHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ResetSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	view, err := h.reviewService.Reset(r.Context(), userID, catalog.Script(req.Script))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SetMode handles POST /api/session/mode.
func (h *SessionHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SetModeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	view, err := h.reviewService.SetMode(r.Context(), userID, session.StudyMode(req.Mode))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SubmitGrade handles POST /api/session/grade. Grading an empty queue is
// not an error; it responds 204 to signal the caught-up state.
func (h *SessionHandler) SubmitGrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GradeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	view, err := h.reviewService.SubmitGrade(r.Context(), userID, leitner.Grade(*req.Grade))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if view == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}
