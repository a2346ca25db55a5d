package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/languro/drill-api/internal/api/shared"
	"github.com/languro/drill-api/internal/service/drill"
	"github.com/languro/drill-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"drill item not found", drill.ErrDrillItemNotFound, http.StatusNotFound},
		{"wrapped store not found", fmt.Errorf("lookup: %w", store.ErrMasteryNotFound), http.StatusNotFound},
		{"invalid session size", drill.ErrInvalidSessionSize, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"transaction failure", store.ErrTransactionFailed, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"drill item not found", drill.ErrDrillItemNotFound, "Drill item not found"},
		{"mastery not found", store.ErrMasteryNotFound, "Mastery record not found"},
		{"list not found", store.ErrListNotFound, "List not found"},
		{"generic not found", store.ErrNotFound, "Resource not found"},
		{"session size", drill.ErrInvalidSessionSize, "Session size must be between 1 and 100"},
		{
			"internal details hidden",
			errors.New("pq: password authentication failed for user drill"),
			"An unexpected error occurred",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := shared.Validate.Struct(SessionRequest{Count: 500})
	assert.Equal(t, "Invalid Count: value too large", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
