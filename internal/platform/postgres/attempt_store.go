package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
	"github.com/languro/drill-api/internal/platform/logger"
	"github.com/languro/drill-api/internal/store"
)

// PostgresAttemptStore implements the store.AttemptStore interface using a
// PostgreSQL database. Attempts are an append-only log.
type PostgresAttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAttemptStore creates a new PostgresAttemptStore with the
// provided database connection and logger.
func NewPostgresAttemptStore(db store.DBTX, log *slog.Logger) *PostgresAttemptStore {
	// ALLOW-PANIC: Constructor enforces non-nil dependency
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresAttemptStore{
		db:     db,
		logger: log.With(slog.String("component", "attempt_store")),
	}
}

// Verify PostgresAttemptStore implements store.AttemptStore interface
var _ store.AttemptStore = (*PostgresAttemptStore)(nil)

// WithTx implements store.AttemptStore.WithTx. It returns a new store
// instance bound to the given transaction.
func (s *PostgresAttemptStore) WithTx(tx *sql.Tx) store.AttemptStore {
	return &PostgresAttemptStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.AttemptStore.Create.
func (s *PostgresAttemptStore) Create(ctx context.Context, attempt *domain.Attempt) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := attempt.Validate(); err != nil {
		log.Warn("attempt validation failed during creation",
			slog.String("error", err.Error()),
			slog.String("user_id", attempt.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	var detailsJSON []byte
	if attempt.ErrorDetail != nil {
		var err error
		detailsJSON, err = json.Marshal(attempt.ErrorDetail)
		if err != nil {
			return fmt.Errorf("failed to encode error details: %w", err)
		}
	}

	query := `
		INSERT INTO attempts
			(id, user_id, drill_item_id, user_input, is_correct,
			 error_type, error_details, time_spent_ms, attempted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.UserID,
		attempt.DrillItemID,
		attempt.UserInput,
		attempt.IsCorrect,
		attempt.ErrorType,
		detailsJSON,
		attempt.TimeSpentMs,
		attempt.AttemptedAt,
	)
	if err != nil {
		log.Error("failed to create attempt",
			slog.String("error", err.Error()),
			slog.String("user_id", attempt.UserID.String()),
			slog.String("drill_item_id", attempt.DrillItemID.String()))
		return MapError(err)
	}

	log.Debug("attempt created",
		slog.String("attempt_id", attempt.ID.String()),
		slog.Bool("is_correct", attempt.IsCorrect))
	return nil
}

// FindByUserSince implements store.AttemptStore.FindByUserSince.
func (s *PostgresAttemptStore) FindByUserSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
	limit int,
) ([]*domain.Attempt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT a.id, a.user_id, a.drill_item_id, a.user_input, a.is_correct,
		       a.error_type, a.error_details, a.time_spent_ms, a.attempted_at,
		       ci.infinitive
		FROM attempts a
		JOIN drill_items di ON di.id = a.drill_item_id
		JOIN content_items ci ON ci.id = di.content_item_id
		WHERE a.user_id = $1
		  AND a.attempted_at >= $2
		ORDER BY a.attempted_at ASC
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, userID, since, limit)
	if err != nil {
		log.Error("failed to query attempts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	attempts := make([]*domain.Attempt, 0)
	for rows.Next() {
		var a domain.Attempt
		var errorType sql.NullString
		var detailsJSON []byte
		var timeSpent sql.NullInt64

		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.DrillItemID,
			&a.UserInput,
			&a.IsCorrect,
			&errorType,
			&detailsJSON,
			&timeSpent,
			&a.AttemptedAt,
			&a.Infinitive,
		)
		if err != nil {
			log.Error("failed to scan attempt row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		if errorType.Valid {
			kind := domain.ErrorKind(errorType.String)
			a.ErrorType = &kind
		}
		if len(detailsJSON) > 0 {
			var details domain.ErrorDetails
			if err := json.Unmarshal(detailsJSON, &details); err != nil {
				return nil, fmt.Errorf("failed to decode error details: %w", err)
			}
			a.ErrorDetail = &details
		}
		if timeSpent.Valid {
			ms := int(timeSpent.Int64)
			a.TimeSpentMs = &ms
		}

		attempts = append(attempts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("found attempts",
		slog.Int("count", len(attempts)),
		slog.String("user_id", userID.String()))
	return attempts, nil
}
