package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
)

// EligibilityFilter selects the drill items a learner may practice: items
// whose content item is reachable through at least one of the learner's
// active lists, optionally narrowed to one list, one language, or a set of
// tense display names (ORed together).
type EligibilityFilter struct {
	UserID     uuid.UUID
	ListID     *uuid.UUID
	LanguageID *int64
	Tenses     []string
}

// DrillItemStore defines the interface for drill item persistence. Drill
// items are immutable practice units; this store is read-only.
type DrillItemStore interface {
	// GetByID retrieves a drill item by its unique ID, with the prompt
	// template and validation rule decoded from their stored JSON and the
	// content item's language name joined in.
	// Returns ErrDrillItemNotFound if the drill item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DrillItem, error)

	// FindEligible retrieves up to limit drill items matching the filter.
	// Order is unspecified; callers that need randomness shuffle the
	// result themselves. Returns an empty slice when nothing matches.
	FindEligible(ctx context.Context, filter EligibilityFilter, limit int) ([]*domain.DrillItem, error)

	// CountEligible counts drill items reachable through the learner's
	// active lists (one specific list when listID is non-nil). The
	// language and tense filters deliberately do not apply here: pool
	// statistics describe the raw list pool.
	CountEligible(ctx context.Context, userID uuid.UUID, listID *uuid.UUID) (int, error)

	// CountEligibleVerbs counts the distinct content items reachable the
	// same way as CountEligible.
	CountEligibleVerbs(ctx context.Context, userID uuid.UUID, listID *uuid.UUID) (int, error)

	// WithTx returns a new DrillItemStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) DrillItemStore
}
