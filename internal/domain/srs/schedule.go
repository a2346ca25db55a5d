package srs

import "time"

// NextReviewAt determines when a drill item should next be reviewed.
//
// An incorrect answer always schedules the item IncorrectRetryDelay from
// now, regardless of streak: a miss resets urgency to "review soon". A
// correct answer branches on updatedStreak, the streak value after
// incrementing for this attempt; streaks past the configured table get the
// capped MaxInterval.
//
// The result depends only on the inputs. No randomness, no I/O, no clock
// reads: callers supply now.
func NextReviewAt(now time.Time, isCorrect bool, updatedStreak int, params *Params) time.Time {
	if !isCorrect {
		return now.Add(params.IncorrectRetryDelay)
	}

	// Streak 0 cannot follow a correct answer, but tolerate it by treating
	// it as the first interval rather than panicking.
	if updatedStreak < 1 {
		updatedStreak = 1
	}

	if interval, ok := params.StreakIntervals[updatedStreak]; ok {
		return now.Add(interval)
	}

	return now.Add(params.MaxInterval)
}

// clampScore bounds a mastery score to [0, 1].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
