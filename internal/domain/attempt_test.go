package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttempt(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	drillID := uuid.New()
	now := time.Now().UTC()

	t.Run("correct attempt", func(t *testing.T) {
		a, err := NewAttempt(userID, drillID, "hablo", true, nil, nil, nil, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, a.ID)
		assert.True(t, a.IsCorrect)
		assert.Nil(t, a.ErrorType)
		assert.Equal(t, now, a.AttemptedAt)
	})

	t.Run("incorrect attempt with classification", func(t *testing.T) {
		kind := ErrorKindSpellingClose
		details := &ErrorDetails{
			Expected:            "hablo",
			Received:            "hablor",
			LevenshteinDistance: 1,
			LanguageCode:        "es",
		}
		spent := 4200

		a, err := NewAttempt(userID, drillID, "hablor", false, &kind, details, &spent, now)
		require.NoError(t, err)

		assert.False(t, a.IsCorrect)
		require.NotNil(t, a.ErrorType)
		assert.Equal(t, ErrorKindSpellingClose, *a.ErrorType)
		assert.Equal(t, details, a.ErrorDetail)
	})

	t.Run("correct attempt cannot carry error type", func(t *testing.T) {
		kind := ErrorKindOther
		_, err := NewAttempt(userID, drillID, "hablo", true, &kind, nil, nil, now)
		assert.ErrorIs(t, err, ErrAttemptErrorOnCorrect)
	})

	t.Run("unknown error kind rejected", func(t *testing.T) {
		kind := ErrorKind("ALMOST")
		_, err := NewAttempt(userID, drillID, "x", false, &kind, nil, nil, now)
		assert.ErrorIs(t, err, ErrInvalidErrorKind)
	})

	t.Run("nil user ID rejected", func(t *testing.T) {
		_, err := NewAttempt(uuid.Nil, drillID, "hablo", true, nil, nil, nil, now)
		assert.ErrorIs(t, err, ErrAttemptUserIDEmpty)
	})

	t.Run("nil drill item ID rejected", func(t *testing.T) {
		_, err := NewAttempt(userID, uuid.Nil, "hablo", true, nil, nil, nil, now)
		assert.ErrorIs(t, err, ErrAttemptDrillIDEmpty)
	})
}
