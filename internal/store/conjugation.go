package store

import (
	"context"

	"github.com/languro/drill-api/internal/domain"
)

// ConjugationStore reads immutable conjugation reference data. The answer
// validator uses it to enumerate the other valid forms of a verb when
// classifying wrong-tense and wrong-person errors.
type ConjugationStore interface {
	// FindSiblings returns all conjugation rows for the given verb
	// translation except the one identified by excludeConjugationID, with
	// tense and pronoun attributes joined in. Returns an empty slice when
	// the verb has no other forms.
	FindSiblings(ctx context.Context, verbTranslationID, excludeConjugationID int64) ([]*domain.Conjugation, error)
}
