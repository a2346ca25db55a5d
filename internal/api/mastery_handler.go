package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/languro/drill-api/internal/api/shared"
	"github.com/languro/drill-api/internal/platform/logger"
	"github.com/languro/drill-api/internal/service/drill"
)

// MasteryHandler handles mastery-related HTTP requests.
type MasteryHandler struct {
	drillService drill.DrillService
	logger       *slog.Logger
}

// NewMasteryHandler creates a new MasteryHandler.
func NewMasteryHandler(drillService drill.DrillService, log *slog.Logger) *MasteryHandler {
	// ALLOW-PANIC: Constructor enforcing required dependency
	if drillService == nil {
		panic("drillService cannot be nil for MasteryHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &MasteryHandler{
		drillService: drillService,
		logger:       log.With(slog.String("component", "mastery_handler")),
	}
}

// GetDueReviews handles GET /api/mastery/due requests. It lists the
// learner's drill items due for review, soonest first.
func (h *MasteryHandler) GetDueReviews(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	due, err := h.drillService.GetDueReviews(r.Context(), userID, time.Now().UTC())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get due reviews"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("due reviews listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(due)))
	shared.RespondWithJSON(w, r, http.StatusOK, dueToResponse(due))
}
