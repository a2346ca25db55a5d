package drill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/languro/drill-api/internal/domain"
	"github.com/languro/drill-api/internal/platform/logger"
	"github.com/languro/drill-api/internal/store"
	"github.com/languro/drill-api/internal/textnorm"
)

// spellingCloseMaxDistance is the raw edit distance up to which an
// incorrect answer is classified as a near-miss spelling error.
const spellingCloseMaxDistance = 2

// defaultAccentLanguages are the language codes whose orthography uses
// diacritics heavily enough that accent-only mistakes deserve their own
// classification.
var defaultAccentLanguages = []string{"es", "fr"}

// AnswerValidator checks learner answers against drill items and classifies
// incorrect ones. It is read-only; classification never writes.
type AnswerValidator struct {
	conjugations    store.ConjugationStore
	accentLanguages map[string]bool
	logger          *slog.Logger
}

// NewAnswerValidator creates an AnswerValidator. accentLanguages lists the
// language codes eligible for the accent-only classification; nil selects
// the default set.
func NewAnswerValidator(
	conjugations store.ConjugationStore,
	accentLanguages []string,
	log *slog.Logger,
) *AnswerValidator {
	// ALLOW-PANIC: Constructor enforces non-nil dependency
	if conjugations == nil {
		panic("conjugations cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	if accentLanguages == nil {
		accentLanguages = defaultAccentLanguages
	}

	accents := make(map[string]bool, len(accentLanguages))
	for _, code := range accentLanguages {
		accents[code] = true
	}

	return &AnswerValidator{
		conjugations:    conjugations,
		accentLanguages: accents,
		logger:          log.With(slog.String("component", "answer_validator")),
	}
}

// Validate checks userInput against the drill item's expected form. Correct
// answers return a result with nil error fields; incorrect answers are
// classified by the first matching rule: accent-only, wrong tense, wrong
// person, spelling near-miss, then the fallback.
func (v *AnswerValidator) Validate(
	ctx context.Context,
	item *domain.DrillItem,
	userInput string,
) (*ValidationResult, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	expected := item.ValidationRule.ExpectedForm
	mode := item.ValidationRule.Normalization

	normInput := textnorm.Normalize(userInput, mode)
	normExpected := textnorm.Normalize(expected, mode)

	if normInput == normExpected {
		return &ValidationResult{IsCorrect: true}, nil
	}

	kind, err := v.classify(ctx, item, userInput)
	if err != nil {
		return nil, err
	}

	// The edit distance is computed over the raw strings for every
	// incorrect answer, not only spelling-close ones.
	details := &domain.ErrorDetails{
		Expected:            expected,
		Received:            userInput,
		NormalizedExpected:  normExpected,
		NormalizedReceived:  normInput,
		LevenshteinDistance: textnorm.Levenshtein(userInput, expected),
		LanguageCode:        item.PromptTemplate.LanguageCode,
	}

	log.Debug("classified incorrect answer",
		slog.String("drill_item_id", item.ID.String()),
		slog.String("error_type", string(kind)),
		slog.Int("levenshtein_distance", details.LevenshteinDistance))

	return &ValidationResult{
		IsCorrect: false,
		ErrorType: &kind,
		Details:   details,
	}, nil
}

// classify determines the error kind for an answer already known to be
// incorrect under the item's normalization mode.
func (v *AnswerValidator) classify(
	ctx context.Context,
	item *domain.DrillItem,
	userInput string,
) (domain.ErrorKind, error) {
	lenientInput := textnorm.Normalize(userInput, textnorm.ModeLenientAccents)
	lenientExpected := textnorm.Normalize(item.ValidationRule.ExpectedForm, textnorm.ModeLenientAccents)

	// Accent-only mistakes only count as such for languages where accents
	// are load-bearing.
	if v.accentLanguages[item.PromptTemplate.LanguageCode] && lenientInput == lenientExpected {
		return domain.ErrorKindDiacriticOnly, nil
	}

	wrongTense, wrongPerson, err := v.matchesSibling(ctx, item, lenientInput)
	if err != nil {
		return "", err
	}
	// Tense is checked before person: an answer matching forms in both
	// categories reads as a tense mistake.
	if wrongTense {
		return domain.ErrorKindWrongTense, nil
	}
	if wrongPerson {
		return domain.ErrorKindWrongPerson, nil
	}

	if textnorm.Levenshtein(userInput, item.ValidationRule.ExpectedForm) <= spellingCloseMaxDistance {
		return domain.ErrorKindSpellingClose, nil
	}

	return domain.ErrorKindOther, nil
}

// matchesSibling reports whether the lenient-normalized input equals any
// other valid form of the prompt's verb, split by whether the matching form
// differs in tense or only in pronoun.
func (v *AnswerValidator) matchesSibling(
	ctx context.Context,
	item *domain.DrillItem,
	lenientInput string,
) (wrongTense, wrongPerson bool, err error) {
	prompt := item.PromptTemplate

	siblings, err := v.conjugations.FindSiblings(ctx, prompt.VerbTranslationID, prompt.ConjugationID)
	if err != nil {
		return false, false, fmt.Errorf("failed to fetch sibling conjugations: %w", err)
	}

	for _, sibling := range siblings {
		if textnorm.Normalize(sibling.DisplayForm, textnorm.ModeLenientAccents) != lenientInput {
			continue
		}
		if sibling.TenseID != prompt.TenseID {
			wrongTense = true
		} else if sibling.PronounID != prompt.PronounID {
			wrongPerson = true
		}
	}

	return wrongTense, wrongPerson, nil
}
