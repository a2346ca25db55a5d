// Package srs implements the streak-based spaced-repetition policy that
// schedules the next review of a drill item after each attempt.
package srs

import "time"

// Params defines all configurable parameters for the scheduling policy and
// the mastery scoring rule.
type Params struct {
	// IncorrectRetryDelay is how soon an item comes back after an
	// incorrect answer, regardless of streak.
	IncorrectRetryDelay time.Duration

	// StreakIntervals maps a correct streak (after incrementing for the
	// current attempt) to the next review delay. Streaks beyond the last
	// entry use MaxInterval.
	StreakIntervals map[int]time.Duration

	// MaxInterval caps interval growth for long streaks.
	MaxInterval time.Duration

	// CorrectScoreDelta is added to the mastery score on a correct answer.
	CorrectScoreDelta float64

	// IncorrectScorePenalty is subtracted from the mastery score on an
	// incorrect answer.
	IncorrectScorePenalty float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values keep the defaults.
type ParamsConfig struct {
	IncorrectRetryMinutes int
	FirstIntervalDays     int
	SecondIntervalDays    int
	ThirdIntervalDays     int
	MaxIntervalDays       int
	CorrectScoreDelta     float64
	IncorrectScorePenalty float64
}

const day = 24 * time.Hour

// NewDefaultParams creates a new Params instance with default values:
// retry in 10 minutes after a miss, then 1, 3, 7 days for streaks 1-3 and a
// hard cap of 14 days from streak 4 on.
func NewDefaultParams() *Params {
	return &Params{
		IncorrectRetryDelay: 10 * time.Minute,
		StreakIntervals: map[int]time.Duration{
			1: 1 * day,
			2: 3 * day,
			3: 7 * day,
		},
		MaxInterval:           14 * day,
		CorrectScoreDelta:     0.1,
		IncorrectScorePenalty: 0.2,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.IncorrectRetryMinutes > 0 {
		params.IncorrectRetryDelay = time.Duration(config.IncorrectRetryMinutes) * time.Minute
	}
	if config.FirstIntervalDays > 0 {
		params.StreakIntervals[1] = time.Duration(config.FirstIntervalDays) * day
	}
	if config.SecondIntervalDays > 0 {
		params.StreakIntervals[2] = time.Duration(config.SecondIntervalDays) * day
	}
	if config.ThirdIntervalDays > 0 {
		params.StreakIntervals[3] = time.Duration(config.ThirdIntervalDays) * day
	}
	if config.MaxIntervalDays > 0 {
		params.MaxInterval = time.Duration(config.MaxIntervalDays) * day
	}
	if config.CorrectScoreDelta > 0 {
		params.CorrectScoreDelta = config.CorrectScoreDelta
	}
	if config.IncorrectScorePenalty > 0 {
		params.IncorrectScorePenalty = config.IncorrectScorePenalty
	}

	return params
}
