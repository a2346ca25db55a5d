package drill

import "github.com/languro/drill-api/internal/domain"

// Feedback strings shown to the learner after each submission.
const (
	feedbackCorrect       = "Correct! Well done!"
	feedbackDiacriticOnly = "Almost! Check your accents."
	feedbackWrongTense    = "You used the wrong tense."
	feedbackWrongPerson   = "Close, but wrong person/pronoun."
	feedbackSpellingClose = "Very close! Check your spelling."
	feedbackIncorrect     = "Incorrect. Try again!"
)

// feedbackFor returns the human feedback line for a validation result.
func feedbackFor(result *ValidationResult) string {
	if result.IsCorrect {
		return feedbackCorrect
	}
	if result.ErrorType == nil {
		return feedbackIncorrect
	}

	switch *result.ErrorType {
	case domain.ErrorKindDiacriticOnly:
		return feedbackDiacriticOnly
	case domain.ErrorKindWrongTense:
		return feedbackWrongTense
	case domain.ErrorKindWrongPerson:
		return feedbackWrongPerson
	case domain.ErrorKindSpellingClose:
		return feedbackSpellingClose
	default:
		return feedbackIncorrect
	}
}
