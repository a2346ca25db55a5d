package postgres

import (
	"context"
	"log/slog"

	"github.com/languro/drill-api/internal/domain"
	"github.com/languro/drill-api/internal/platform/logger"
	"github.com/languro/drill-api/internal/store"
)

// PostgresConjugationStore implements the store.ConjugationStore interface
// using a PostgreSQL database. Conjugations are immutable reference data,
// written by content generation and only read here.
type PostgresConjugationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresConjugationStore creates a new PostgresConjugationStore with
// the provided database connection and logger.
func NewPostgresConjugationStore(db store.DBTX, log *slog.Logger) *PostgresConjugationStore {
	// ALLOW-PANIC: Constructor enforces non-nil dependency
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresConjugationStore{
		db:     db,
		logger: log.With(slog.String("component", "conjugation_store")),
	}
}

// Verify PostgresConjugationStore implements store.ConjugationStore interface
var _ store.ConjugationStore = (*PostgresConjugationStore)(nil)

// FindSiblings implements store.ConjugationStore.FindSiblings.
func (s *PostgresConjugationStore) FindSiblings(
	ctx context.Context,
	verbTranslationID, excludeConjugationID int64,
) ([]*domain.Conjugation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT c.id, c.verb_translation_id, c.tense_id, c.pronoun_id,
		       c.display_form, t.name, t.mood, p.code, p.display_label
		FROM conjugations c
		JOIN tenses t ON t.id = c.tense_id
		JOIN pronouns p ON p.id = c.pronoun_id
		WHERE c.verb_translation_id = $1
		  AND c.id <> $2`

	rows, err := s.db.QueryContext(ctx, query, verbTranslationID, excludeConjugationID)
	if err != nil {
		log.Error("failed to query sibling conjugations",
			slog.String("error", err.Error()),
			slog.Int64("verb_translation_id", verbTranslationID))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	siblings := make([]*domain.Conjugation, 0)
	for rows.Next() {
		var c domain.Conjugation
		err := rows.Scan(
			&c.ID,
			&c.VerbTranslationID,
			&c.TenseID,
			&c.PronounID,
			&c.DisplayForm,
			&c.TenseName,
			&c.Mood,
			&c.PronounCode,
			&c.PronounLabel,
		)
		if err != nil {
			log.Error("failed to scan conjugation row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		siblings = append(siblings, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return siblings, nil
}
