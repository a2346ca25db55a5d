package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/languro/drill-api/internal/domain"
)

func newTestMastery(t *testing.T, now time.Time) *domain.Mastery {
	t.Helper()
	m, err := domain.NewMastery(uuid.New(), uuid.New(), now)
	require.NoError(t, err)
	return m
}

func TestApplyAttemptCorrect(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	prev := newTestMastery(t, now)

	next, err := svc.ApplyAttempt(prev, true, now)
	require.NoError(t, err)

	assert.Equal(t, 1, next.CorrectStreak)
	assert.InDelta(t, 0.1, next.Score, 1e-9)
	assert.Equal(t, 1, next.SeenCount)
	assert.Equal(t, now, next.LastAttemptAt)
	assert.Equal(t, now.Add(24*time.Hour), next.NextReviewAt)

	// The input record must be untouched.
	assert.Zero(t, prev.CorrectStreak)
	assert.Zero(t, prev.Score)
	assert.Zero(t, prev.SeenCount)
}

func TestApplyAttemptIncorrectResetsStreak(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	prev := newTestMastery(t, now)
	prev.CorrectStreak = 5
	prev.Score = 0.7
	prev.SeenCount = 5

	next, err := svc.ApplyAttempt(prev, false, now)
	require.NoError(t, err)

	assert.Zero(t, next.CorrectStreak)
	assert.InDelta(t, 0.5, next.Score, 1e-9)
	assert.Equal(t, 6, next.SeenCount)
	assert.Equal(t, now.Add(10*time.Minute), next.NextReviewAt)
}

func TestApplyAttemptScoreClamping(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("never drops below zero", func(t *testing.T) {
		m := newTestMastery(t, now)
		var err error
		for i := 0; i < 3; i++ {
			m, err = svc.ApplyAttempt(m, false, now)
			require.NoError(t, err)
		}
		assert.Zero(t, m.Score)
	})

	t.Run("never exceeds one", func(t *testing.T) {
		m := newTestMastery(t, now)
		m.Score = 0.95
		var err error
		for i := 0; i < 2; i++ {
			m, err = svc.ApplyAttempt(m, true, now)
			require.NoError(t, err)
		}
		assert.Equal(t, 1.0, m.Score)
	})
}

func TestApplyAttemptStreakProgression(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	m := newTestMastery(t, now)

	expectedDelays := []time.Duration{
		24 * time.Hour,
		3 * 24 * time.Hour,
		7 * 24 * time.Hour,
		14 * 24 * time.Hour,
		14 * 24 * time.Hour, // cap
	}

	var err error
	for i, delay := range expectedDelays {
		m, err = svc.ApplyAttempt(m, true, now)
		require.NoError(t, err)
		assert.Equal(t, i+1, m.CorrectStreak)
		assert.Equal(t, now.Add(delay), m.NextReviewAt)
	}
}

func TestApplyAttemptNilMastery(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	_, err := svc.ApplyAttempt(nil, true, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNilMastery)
}
