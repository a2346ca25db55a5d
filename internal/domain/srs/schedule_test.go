package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextReviewAt(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		isCorrect bool
		streak    int
		expected  time.Time
	}{
		{
			name:      "incorrect answer retries in 10 minutes",
			isCorrect: false,
			streak:    0,
			expected:  now.Add(10 * time.Minute),
		},
		{
			name:      "incorrect answer ignores streak",
			isCorrect: false,
			streak:    9,
			expected:  now.Add(10 * time.Minute),
		},
		{
			name:      "first correct answer schedules one day out",
			isCorrect: true,
			streak:    1,
			expected:  now.Add(24 * time.Hour),
		},
		{
			name:      "streak of two schedules three days out",
			isCorrect: true,
			streak:    2,
			expected:  now.Add(3 * 24 * time.Hour),
		},
		{
			name:      "streak of three schedules seven days out",
			isCorrect: true,
			streak:    3,
			expected:  now.Add(7 * 24 * time.Hour),
		},
		{
			name:      "streak of four hits the fourteen day cap",
			isCorrect: true,
			streak:    4,
			expected:  now.Add(14 * 24 * time.Hour),
		},
		{
			name:      "cap holds for long streaks",
			isCorrect: true,
			streak:    10,
			expected:  now.Add(14 * 24 * time.Hour),
		},
		{
			name:      "degenerate zero streak treated as first interval",
			isCorrect: true,
			streak:    0,
			expected:  now.Add(24 * time.Hour),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextReviewAt(now, tc.isCorrect, tc.streak, params)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNextReviewAtCustomParams(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{
		IncorrectRetryMinutes: 5,
		FirstIntervalDays:     2,
		MaxIntervalDays:       30,
	})
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(5*time.Minute), NextReviewAt(now, false, 3, params))
	assert.Equal(t, now.Add(2*24*time.Hour), NextReviewAt(now, true, 1, params))
	assert.Equal(t, now.Add(30*24*time.Hour), NextReviewAt(now, true, 7, params))
	// Untouched entries keep the defaults.
	assert.Equal(t, now.Add(3*24*time.Hour), NextReviewAt(now, true, 2, params))
}
