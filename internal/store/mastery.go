package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
)

// MasteryStore defines the interface for per-(user, drill item) mastery
// state. The (user_id, drill_item_id) pair is unique.
type MasteryStore interface {
	// Get retrieves the mastery record for a user and drill item.
	// Returns ErrMasteryNotFound if no record exists.
	// NOTE: This method provides no row locking; use GetForUpdate inside
	// a transaction when the record will be modified.
	Get(ctx context.Context, userID, drillItemID uuid.UUID) (*domain.Mastery, error)

	// GetForUpdate retrieves the mastery record with a row-level lock
	// using SELECT FOR UPDATE. Must be called within a transaction; it
	// protects the read-modify-write cycle of the submission flow from
	// concurrent submissions for the same pair.
	// Returns ErrMasteryNotFound if no record exists.
	GetForUpdate(ctx context.Context, userID, drillItemID uuid.UUID) (*domain.Mastery, error)

	// Upsert inserts the mastery record or replaces the existing row for
	// its (user, drill item) pair. It handles domain validation
	// internally.
	Upsert(ctx context.Context, mastery *domain.Mastery) error

	// FindDue retrieves up to limit mastery records for the user whose
	// next review time is at or before asOf, soonest first, with the
	// content item's infinitive joined in.
	FindDue(ctx context.Context, userID uuid.UUID, asOf time.Time, limit int) ([]*domain.MasteryDue, error)

	// WithTx returns a new MasteryStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) MasteryStore
}
