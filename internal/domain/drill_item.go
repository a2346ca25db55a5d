package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/textnorm"
)

// DrillItem-specific validation errors.
var (
	// ErrDrillItemIDEmpty is returned when a drill item ID is empty or nil.
	ErrDrillItemIDEmpty = errors.New("drill item ID cannot be empty")

	// ErrDrillItemContentIDEmpty is returned when a drill item's content
	// item ID is empty or nil.
	ErrDrillItemContentIDEmpty = errors.New("drill item content item ID cannot be empty")
)

// PromptKind tags the shape of a drill item's prompt template. Only verb
// conjugation prompts exist today; the tag keeps the stored JSON
// self-describing for future kinds.
type PromptKind string

const (
	// PromptKindConjugation is a prompt asking the learner to produce one
	// inflected form of a verb.
	PromptKindConjugation PromptKind = "conjugation"
)

// ConjugationPrompt describes what the learner is asked to produce: a
// specific tense and pronoun of a specific infinitive. ConjugationID links
// back to the reference conjugation row so the validator can enumerate the
// other valid forms of the same verb.
type ConjugationPrompt struct {
	Kind              PromptKind `json:"kind"`
	Infinitive        string     `json:"infinitive"`
	VerbTranslationID int64      `json:"verb_translation_id"`
	TenseID           int64      `json:"tense_id"`
	TenseName         string     `json:"tense_name"`
	Mood              string     `json:"mood"`
	PronounID         int64      `json:"pronoun_id"`
	PronounCode       string     `json:"pronoun_code"`
	PronounLabel      string     `json:"pronoun_label"`
	LanguageCode      string     `json:"language_code"`
	ConjugationID     int64      `json:"conjugation_id"`
}

// ValidationRule describes the single correct surface form for a drill item
// and how learner input is folded before comparison.
type ValidationRule struct {
	ExpectedForm  string        `json:"expected_form"`
	Normalization textnorm.Mode `json:"normalization"`
}

// DrillItem is one immutable practice unit: a conjugated form the learner
// must type. Drill items are created during content generation and are
// read-only to the drill engine.
type DrillItem struct {
	ID             uuid.UUID         `json:"id"`
	ContentItemID  uuid.UUID         `json:"content_item_id"`
	PromptTemplate ConjugationPrompt `json:"prompt_template"`
	ValidationRule ValidationRule    `json:"validation_rule"`
	CreatedAt      time.Time         `json:"created_at"`

	// LanguageName is denormalized from the content item's language on
	// read; it is not a column of drill_items.
	LanguageName string `json:"language_name,omitempty"`
}

// Validate checks if the DrillItem has valid data.
// Returns an error if any field fails validation.
func (d *DrillItem) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDrillItemIDEmpty
	}

	if d.ContentItemID == uuid.Nil {
		return ErrDrillItemContentIDEmpty
	}

	if d.ValidationRule.ExpectedForm == "" {
		return ErrEmptyExpectedForm
	}

	if !d.ValidationRule.Normalization.IsValid() {
		return ErrInvalidNormalizationMode
	}

	if d.PromptTemplate.LanguageCode == "" {
		return ErrMissingLanguageCode
	}

	return nil
}
