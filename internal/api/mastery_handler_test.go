package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/languro/drill-api/internal/domain"
)

func TestGetDueReviews(t *testing.T) {
	t.Parallel()

	t.Run("lists due items", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		service := &mockDrillService{due: []*domain.MasteryDue{
			{
				Mastery: domain.Mastery{
					ID:            uuid.New(),
					UserID:        userID,
					DrillItemID:   uuid.New(),
					Score:         0.3,
					CorrectStreak: 2,
					SeenCount:     5,
					NextReviewAt:  time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
				},
				Infinitive: "hablar",
			},
		}}
		handler := NewMasteryHandler(service, testLogger())

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/mastery/due", nil), userID)
		rec := httptest.NewRecorder()

		handler.GetDueReviews(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []DueReviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "hablar", resp[0].Infinitive)
		assert.Equal(t, 2, resp[0].CorrectStreak)
		assert.InDelta(t, 0.3, resp[0].Score, 1e-9)
	})

	t.Run("empty listing is an empty array", func(t *testing.T) {
		t.Parallel()

		handler := NewMasteryHandler(&mockDrillService{due: []*domain.MasteryDue{}}, testLogger())

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/mastery/due", nil), uuid.New())
		rec := httptest.NewRecorder()

		handler.GetDueReviews(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("missing identity returns 401", func(t *testing.T) {
		t.Parallel()

		handler := NewMasteryHandler(&mockDrillService{}, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/mastery/due", nil)
		rec := httptest.NewRecorder()

		handler.GetDueReviews(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store failure returns sanitized 500", func(t *testing.T) {
		t.Parallel()

		handler := NewMasteryHandler(&mockDrillService{dueErr: errors.New("pq: relation missing")}, testLogger())

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/mastery/due", nil), uuid.New())
		rec := httptest.NewRecorder()

		handler.GetDueReviews(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to get due reviews")
		assert.NotContains(t, rec.Body.String(), "relation")
	})
}
