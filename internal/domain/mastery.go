package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Mastery-specific validation errors.
var (
	ErrMasteryUserIDEmpty  = errors.New("mastery user ID cannot be empty")
	ErrMasteryDrillIDEmpty = errors.New("mastery drill item ID cannot be empty")
	ErrMasteryScoreRange   = errors.New("mastery score must be between 0 and 1")
	ErrMasteryStreakRange  = errors.New("mastery correct streak cannot be negative")
	ErrMasterySeenRange    = errors.New("mastery seen count cannot be negative")
)

// Mastery tracks a learner's rolling progress on a single drill item. It is
// the only mutable aggregate in the drill engine; every attempt upserts the
// row for its (user, drill item) pair inside one transaction.
type Mastery struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	DrillItemID   uuid.UUID `json:"drill_item_id"`
	Score         float64   `json:"score"`
	CorrectStreak int       `json:"correct_streak"`
	SeenCount     int       `json:"seen_count"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
	NextReviewAt  time.Time `json:"next_review_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MasteryDue is a mastery record joined with its drill item's verb, as
// surfaced by the due-review listing.
type MasteryDue struct {
	Mastery
	Infinitive string `json:"infinitive"`
}

// NewMastery creates the initial mastery state for a user and drill item.
// The item is due immediately so new drills surface on the first review.
func NewMastery(userID, drillItemID uuid.UUID, now time.Time) (*Mastery, error) {
	m := &Mastery{
		ID:            uuid.New(),
		UserID:        userID,
		DrillItemID:   drillItemID,
		Score:         0,
		CorrectStreak: 0,
		SeenCount:     0,
		LastAttemptAt: time.Time{},
		NextReviewAt:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks if the Mastery has valid data.
// Returns an error if any field fails validation.
func (m *Mastery) Validate() error {
	if m.UserID == uuid.Nil {
		return ErrMasteryUserIDEmpty
	}

	if m.DrillItemID == uuid.Nil {
		return ErrMasteryDrillIDEmpty
	}

	if m.Score < 0 || m.Score > 1 {
		return ErrMasteryScoreRange
	}

	if m.CorrectStreak < 0 {
		return ErrMasteryStreakRange
	}

	if m.SeenCount < 0 {
		return ErrMasterySeenRange
	}

	return nil
}
