package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/api/shared"
	"github.com/languro/drill-api/internal/platform/logger"
	"github.com/languro/drill-api/internal/redact"
	"github.com/languro/drill-api/internal/service/drill"
)

// emptyPoolMessage is returned when a session is requested against an empty
// drill pool.
const emptyPoolMessage = "No drill items available. Add verbs to your list first."

// Results listing bounds.
const (
	defaultResultsLimit = 100
	maxResultsLimit     = 500
)

// DrillHandler handles drill-related HTTP requests.
type DrillHandler struct {
	drillService drill.DrillService
	logger       *slog.Logger
}

// NewDrillHandler creates a new DrillHandler.
func NewDrillHandler(drillService drill.DrillService, log *slog.Logger) *DrillHandler {
	// ALLOW-PANIC: Constructor enforcing required dependency
	if drillService == nil {
		panic("drillService cannot be nil for DrillHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &DrillHandler{
		drillService: drillService,
		logger:       log.With(slog.String("component", "drill_handler")),
	}
}

// StartSession handles POST /api/drills/session requests. It assembles a
// randomized practice session from the learner's eligible pool.
func (h *DrillHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	session, err := h.drillService.BuildSession(r.Context(), drill.SessionConfig{
		UserID:     userID,
		Count:      req.Count,
		ListID:     req.ListID,
		LanguageID: req.LanguageID,
		Tenses:     req.Tenses,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to build session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	// An empty pool means the learner has no practice material yet.
	if len(session) == 0 {
		log.Debug("no drill items available for session",
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusNotFound, emptyPoolMessage)
		return
	}

	drills := make([]DrillPromptResponse, 0, len(session))
	for _, item := range session {
		drills = append(drills, drillItemToPrompt(item))
	}

	log.Debug("session built",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(drills)))
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		Drills: drills,
		Count:  len(drills),
	})
}

// GetSessionStats handles GET /api/drills/stats requests.
func (h *DrillHandler) GetSessionStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var listID *uuid.UUID
	if raw := r.URL.Query().Get("list_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("invalid list ID in query", slog.String("user_id", userID.String()))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid list ID format")
			return
		}
		listID = &parsed
	}

	stats, err := h.drillService.GetSessionStats(r.Context(), userID, listID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get session stats"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionStatsResponse{
		TotalDrills:            stats.TotalDrills,
		UniqueVerbs:            stats.UniqueVerbs,
		RecommendedSessionSize: stats.RecommendedSessionSize,
	})
}

// SubmitAnswer handles POST /api/drills/{id}/answer requests. It checks the
// learner's answer and records the attempt and mastery update.
func (h *DrillHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		log.Warn("drill item ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Drill item ID is required")
		return
	}

	drillItemID, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid drill item ID format")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid drill item ID format")
		return
	}

	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("drill_item_id", drillItemID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("drill_item_id", drillItemID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.drillService.SubmitAnswer(r.Context(), userID, drillItemID, drill.SubmittedAnswer{
		UserInput:   req.UserInput,
		TimeSpentMs: req.TimeSpentMs,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit answer"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("answer submitted",
		slog.String("user_id", userID.String()),
		slog.String("drill_item_id", drillItemID.String()),
		slog.Bool("is_correct", result.IsCorrect))
	shared.RespondWithJSON(w, r, http.StatusOK, submitResultToResponse(result))
}

// GetResults handles GET /api/drills/results requests. The session_start
// query parameter bounds the listing to attempts made at or after it.
func (h *DrillHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	rawStart := r.URL.Query().Get("session_start")
	if rawStart == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "session_start is required")
		return
	}
	since, err := time.Parse(time.RFC3339, rawStart)
	if err != nil {
		log.Warn("invalid session_start in query", slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session_start format, expected RFC 3339")
		return
	}

	limit := defaultResultsLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 || parsed > maxResultsLimit {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	results, err := h.drillService.GetResults(r.Context(), userID, since, limit)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get results"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resultsToResponse(results))
}
