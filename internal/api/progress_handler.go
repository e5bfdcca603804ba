package api

import (
	"log/slog"
	"net/http"

	"github.com/kanacompanion/kana-api/internal/api/shared"
	"github.com/kanacompanion/kana-api/internal/service/review"
)

// ProgressHandler handles persisted-progress API requests.
type ProgressHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler with the given dependencies.
func NewProgressHandler(reviewService review.ReviewService, logger *slog.Logger) *ProgressHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "progress_handler")),
	}
}

// GetSummary handles GET /api/progress/summary.
func (h *ProgressHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.reviewService.Summary(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// GetBreakdown handles GET /api/progress/breakdown.
func (h *ProgressHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	breakdown, err := h.reviewService.Breakdown(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, breakdown)
}
