package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrorKind classifies why an incorrect answer was wrong.
type ErrorKind string

// Possible error classifications, in validator precedence order.
const (
	// ErrorKindDiacriticOnly means the answer matches except for accents.
	ErrorKindDiacriticOnly ErrorKind = "DIACRITIC_ONLY"

	// ErrorKindWrongTense means the answer is a valid form of the same verb
	// in a different tense.
	ErrorKindWrongTense ErrorKind = "WRONG_TENSE"

	// ErrorKindWrongPerson means the answer is a valid form of the same
	// verb for a different pronoun.
	ErrorKindWrongPerson ErrorKind = "WRONG_PERSON"

	// ErrorKindSpellingClose means the answer is within edit distance 2 of
	// the expected form.
	ErrorKindSpellingClose ErrorKind = "SPELLING_CLOSE"

	// ErrorKindOther is the fallback for answers that match nothing above.
	ErrorKindOther ErrorKind = "OTHER"
)

// IsValid reports whether k is a known error classification.
func (k ErrorKind) IsValid() bool {
	switch k {
	case ErrorKindDiacriticOnly,
		ErrorKindWrongTense,
		ErrorKindWrongPerson,
		ErrorKindSpellingClose,
		ErrorKindOther:
		return true
	default:
		return false
	}
}

// ErrorDetails carries the diagnostic payload stored with an incorrect
// attempt. The edit distance is computed for every incorrect answer, not
// only spelling-close ones.
type ErrorDetails struct {
	Expected            string `json:"expected"`
	Received            string `json:"received"`
	NormalizedExpected  string `json:"normalized_expected"`
	NormalizedReceived  string `json:"normalized_received"`
	LevenshteinDistance int    `json:"levenshtein_distance"`
	LanguageCode        string `json:"language_code"`
}

// Attempt-specific validation errors.
var (
	ErrAttemptIDEmpty        = errors.New("attempt ID cannot be empty")
	ErrAttemptUserIDEmpty    = errors.New("attempt user ID cannot be empty")
	ErrAttemptDrillIDEmpty   = errors.New("attempt drill item ID cannot be empty")
	ErrAttemptErrorOnCorrect = errors.New("correct attempt cannot carry an error type")
)

// Attempt is one learner submission. Attempts form an append-only log;
// they are created once per submission and never mutated.
type Attempt struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	DrillItemID uuid.UUID     `json:"drill_item_id"`
	UserInput   string        `json:"user_input"`
	IsCorrect   bool          `json:"is_correct"`
	ErrorType   *ErrorKind    `json:"error_type,omitempty"`
	ErrorDetail *ErrorDetails `json:"error_details,omitempty"`
	TimeSpentMs *int          `json:"time_spent_ms,omitempty"`
	AttemptedAt time.Time     `json:"attempted_at"`

	// Infinitive is denormalized from the drill item's content item on
	// read for result summaries; it is not a column of attempts.
	Infinitive string `json:"infinitive,omitempty"`
}

// NewAttempt creates a new Attempt for a submission. It generates the
// attempt ID and stamps the attempt time.
func NewAttempt(
	userID, drillItemID uuid.UUID,
	userInput string,
	isCorrect bool,
	errorType *ErrorKind,
	details *ErrorDetails,
	timeSpentMs *int,
	now time.Time,
) (*Attempt, error) {
	attempt := &Attempt{
		ID:          uuid.New(),
		UserID:      userID,
		DrillItemID: drillItemID,
		UserInput:   userInput,
		IsCorrect:   isCorrect,
		ErrorType:   errorType,
		ErrorDetail: details,
		TimeSpentMs: timeSpentMs,
		AttemptedAt: now,
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate checks if the Attempt has valid data.
// Returns an error if any field fails validation.
func (a *Attempt) Validate() error {
	if a.ID == uuid.Nil {
		return ErrAttemptIDEmpty
	}

	if a.UserID == uuid.Nil {
		return ErrAttemptUserIDEmpty
	}

	if a.DrillItemID == uuid.Nil {
		return ErrAttemptDrillIDEmpty
	}

	if a.IsCorrect && a.ErrorType != nil {
		return ErrAttemptErrorOnCorrect
	}

	if a.ErrorType != nil && !a.ErrorType.IsValid() {
		return ErrInvalidErrorKind
	}

	return nil
}
