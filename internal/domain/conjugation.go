package domain

// Tense is a reference row naming one tense of a language, e.g. "Presente"
// in the indicative mood.
type Tense struct {
	ID         int64  `json:"id"`
	LanguageID int64  `json:"language_id"`
	Name       string `json:"name"`
	Mood       string `json:"mood"`
	IsLiterary bool   `json:"is_literary"`
}

// Pronoun is a reference row for one grammatical person, e.g. code "2s"
// with display label "tú".
type Pronoun struct {
	ID           int64  `json:"id"`
	LanguageID   int64  `json:"language_id"`
	Code         string `json:"code"`
	DisplayLabel string `json:"display_label"`
}

// Conjugation is a reference row describing one inflected form of a verb
// translation. The tense and pronoun columns are denormalized onto the
// struct so the validator can classify wrong-tense and wrong-person answers
// without further lookups. Conjugation rows are immutable reference data.
type Conjugation struct {
	ID                int64  `json:"id"`
	VerbTranslationID int64  `json:"verb_translation_id"`
	TenseID           int64  `json:"tense_id"`
	PronounID         int64  `json:"pronoun_id"`
	DisplayForm       string `json:"display_form"`
	TenseName         string `json:"tense_name"`
	Mood              string `json:"mood"`
	PronounCode       string `json:"pronoun_code"`
	PronounLabel      string `json:"pronoun_label"`
}
