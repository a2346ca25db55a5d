package srs

import (
	"errors"
	"time"

	"github.com/languro/drill-api/internal/domain"
)

// Common errors
var (
	ErrNilMastery = errors.New("mastery cannot be nil")
)

// Service defines the interface for mastery scheduling operations.
type Service interface {
	// ApplyAttempt folds one attempt outcome into a mastery record and
	// computes the next review time.
	ApplyAttempt(
		mastery *domain.Mastery,
		isCorrect bool,
		now time.Time,
	) (*domain.Mastery, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ApplyAttempt implements the Service interface. It returns a new Mastery
// rather than mutating the input, so callers keep the previous state for
// logging or rollback.
//
// Update policy: the streak increments on a correct answer and resets to 0
// on an incorrect one; the score moves by CorrectScoreDelta or
// -IncorrectScorePenalty and is clamped to [0, 1]; the seen count always
// increments; the next review time is derived purely from
// (now, isCorrect, updated streak).
func (s *defaultService) ApplyAttempt(
	mastery *domain.Mastery,
	isCorrect bool,
	now time.Time,
) (*domain.Mastery, error) {
	if mastery == nil {
		return nil, ErrNilMastery
	}

	next := *mastery

	if isCorrect {
		next.CorrectStreak = mastery.CorrectStreak + 1
		next.Score = clampScore(mastery.Score + s.params.CorrectScoreDelta)
	} else {
		next.CorrectStreak = 0
		next.Score = clampScore(mastery.Score - s.params.IncorrectScorePenalty)
	}

	next.SeenCount = mastery.SeenCount + 1
	next.LastAttemptAt = now
	next.NextReviewAt = NextReviewAt(now, isCorrect, next.CorrectStreak, s.params)
	next.UpdatedAt = now

	if err := next.Validate(); err != nil {
		return nil, err
	}

	return &next, nil
}
