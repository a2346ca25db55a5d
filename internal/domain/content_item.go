package domain

import (
	"time"

	"github.com/google/uuid"
)

// Language is a reference row for one supported language.
type Language struct {
	ID      int64  `json:"id"`
	IsoCode string `json:"iso_code"`
	Name    string `json:"name"`
}

// ContentItem is a learner-facing vocabulary entry (here: a verb). It links
// a language and a verb translation to the drill items generated from it.
// Content items reach a learner's drill pool through list membership.
type ContentItem struct {
	ID                uuid.UUID `json:"id"`
	LanguageID        int64     `json:"language_id"`
	VerbTranslationID int64     `json:"verb_translation_id"`
	Infinitive        string    `json:"infinitive"`
	CreatedAt         time.Time `json:"created_at"`
}

// UserList is a named collection of content items owned by a learner.
// Only active lists contribute to the drill pool.
type UserList struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
