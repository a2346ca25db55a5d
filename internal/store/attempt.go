package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
)

// AttemptStore defines the interface for the append-only attempt log.
type AttemptStore interface {
	// Create appends one attempt row. It handles domain validation
	// internally and never updates existing rows.
	// Returns ErrInvalidEntity if the drill item or user reference is
	// broken (foreign key violation).
	Create(ctx context.Context, attempt *domain.Attempt) error

	// FindByUserSince retrieves up to limit attempts by the user made at
	// or after since, oldest first, with the content item's infinitive
	// joined in for result summaries.
	FindByUserSince(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*domain.Attempt, error)

	// WithTx returns a new AttemptStore instance that uses the provided
	// transaction. Attempt creation runs inside the submission
	// transaction so the log never disagrees with mastery state.
	WithTx(tx *sql.Tx) AttemptStore
}
