package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
	"github.com/languro/drill-api/internal/platform/logger"
	"github.com/languro/drill-api/internal/store"
)

// PostgresDrillItemStore implements the store.DrillItemStore interface using
// a PostgreSQL database. Drill items are read-only to the drill engine, so
// this store only ever selects.
type PostgresDrillItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDrillItemStore creates a new PostgresDrillItemStore with the
// provided database connection and logger.
func NewPostgresDrillItemStore(db store.DBTX, log *slog.Logger) *PostgresDrillItemStore {
	// ALLOW-PANIC: Constructor enforces non-nil dependency
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresDrillItemStore{
		db:     db,
		logger: log.With(slog.String("component", "drill_item_store")),
	}
}

// Verify PostgresDrillItemStore implements store.DrillItemStore interface
var _ store.DrillItemStore = (*PostgresDrillItemStore)(nil)

// WithTx implements store.DrillItemStore.WithTx. It returns a new store
// instance bound to the given transaction.
func (s *PostgresDrillItemStore) WithTx(tx *sql.Tx) store.DrillItemStore {
	return &PostgresDrillItemStore{
		db:     tx,
		logger: s.logger,
	}
}

// drillItemColumns is the select list shared by every drill item query.
// Language name is joined from the content item's language.
const drillItemColumns = `
	di.id, di.content_item_id, di.prompt_template, di.validation_rule,
	di.created_at, l.name AS language_name`

const drillItemJoins = `
	FROM drill_items di
	JOIN content_items ci ON ci.id = di.content_item_id
	JOIN languages l ON l.id = ci.language_id`

// GetByID implements store.DrillItemStore.GetByID.
func (s *PostgresDrillItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DrillItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving drill item by ID", slog.String("drill_item_id", id.String()))

	query := `SELECT` + drillItemColumns + drillItemJoins + `
		WHERE di.id = $1`

	item, err := scanDrillItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debug("drill item not found", slog.String("drill_item_id", id.String()))
			return nil, store.ErrDrillItemNotFound
		}
		log.Error("failed to get drill item",
			slog.String("error", err.Error()),
			slog.String("drill_item_id", id.String()))
		return nil, MapError(err)
	}

	return item, nil
}

// eligibilityPredicate appends the WHERE clause selecting drill items
// reachable through the user's active lists, plus the optional narrowing
// filters, to the given query builder. It returns the next positional
// parameter index.
func eligibilityPredicate(sb *strings.Builder, args *[]interface{}, filter store.EligibilityFilter) {
	*args = append(*args, filter.UserID)
	fmt.Fprintf(sb, `
		WHERE EXISTS (
			SELECT 1
			FROM user_list_items uli
			JOIN user_lists ul ON ul.id = uli.user_list_id
			WHERE uli.content_item_id = di.content_item_id
			  AND ul.user_id = $%d
			  AND ul.is_active`, len(*args))

	if filter.ListID != nil {
		*args = append(*args, *filter.ListID)
		fmt.Fprintf(sb, `
			  AND ul.id = $%d`, len(*args))
	}
	sb.WriteString(`
		)`)

	if filter.LanguageID != nil {
		*args = append(*args, *filter.LanguageID)
		fmt.Fprintf(sb, `
		  AND ci.language_id = $%d`, len(*args))
	}

	if len(filter.Tenses) > 0 {
		*args = append(*args, filter.Tenses)
		fmt.Fprintf(sb, `
		  AND di.prompt_template->>'tense_name' = ANY($%d)`, len(*args))
	}
}

// FindEligible implements store.DrillItemStore.FindEligible.
func (s *PostgresDrillItemStore) FindEligible(
	ctx context.Context,
	filter store.EligibilityFilter,
	limit int,
) ([]*domain.DrillItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sb strings.Builder
	var args []interface{}
	sb.WriteString(`SELECT` + drillItemColumns + drillItemJoins)
	eligibilityPredicate(&sb, &args, filter)

	args = append(args, limit)
	fmt.Fprintf(&sb, `
		LIMIT $%d`, len(args))

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		log.Error("failed to query eligible drill items",
			slog.String("error", err.Error()),
			slog.String("user_id", filter.UserID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*domain.DrillItem, 0)
	for rows.Next() {
		item, err := scanDrillItem(rows)
		if err != nil {
			log.Error("failed to scan drill item row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("found eligible drill items",
		slog.Int("count", len(items)),
		slog.String("user_id", filter.UserID.String()))
	return items, nil
}

// CountEligible implements store.DrillItemStore.CountEligible.
func (s *PostgresDrillItemStore) CountEligible(ctx context.Context, userID uuid.UUID, listID *uuid.UUID) (int, error) {
	return s.countEligible(ctx, "COUNT(*)", userID, listID)
}

// CountEligibleVerbs implements store.DrillItemStore.CountEligibleVerbs.
func (s *PostgresDrillItemStore) CountEligibleVerbs(ctx context.Context, userID uuid.UUID, listID *uuid.UUID) (int, error) {
	return s.countEligible(ctx, "COUNT(DISTINCT di.content_item_id)", userID, listID)
}

func (s *PostgresDrillItemStore) countEligible(
	ctx context.Context,
	aggregate string,
	userID uuid.UUID,
	listID *uuid.UUID,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sb strings.Builder
	var args []interface{}
	sb.WriteString(`SELECT ` + aggregate + drillItemJoins)
	eligibilityPredicate(&sb, &args, store.EligibilityFilter{UserID: userID, ListID: listID})

	var count int
	if err := s.db.QueryRowContext(ctx, sb.String(), args...).Scan(&count); err != nil {
		log.Error("failed to count eligible drill items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDrillItem scans one drill item row, decoding the JSONB prompt
// template and validation rule columns.
func scanDrillItem(row rowScanner) (*domain.DrillItem, error) {
	var item domain.DrillItem
	var promptJSON, ruleJSON []byte

	err := row.Scan(
		&item.ID,
		&item.ContentItemID,
		&promptJSON,
		&ruleJSON,
		&item.CreatedAt,
		&item.LanguageName,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(promptJSON, &item.PromptTemplate); err != nil {
		return nil, fmt.Errorf("failed to decode prompt template: %w", err)
	}
	if err := json.Unmarshal(ruleJSON, &item.ValidationRule); err != nil {
		return nil, fmt.Errorf("failed to decode validation rule: %w", err)
	}

	return &item, nil
}
