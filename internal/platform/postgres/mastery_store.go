package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
	"github.com/languro/drill-api/internal/platform/logger"
	"github.com/languro/drill-api/internal/store"
)

// PostgresMasteryStore implements the store.MasteryStore interface using a
// PostgreSQL database. Mastery rows are unique per (user, drill item) and
// are only mutated inside the submission transaction.
type PostgresMasteryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMasteryStore creates a new PostgresMasteryStore with the
// provided database connection and logger.
func NewPostgresMasteryStore(db store.DBTX, log *slog.Logger) *PostgresMasteryStore {
	// ALLOW-PANIC: Constructor enforces non-nil dependency
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresMasteryStore{
		db:     db,
		logger: log.With(slog.String("component", "mastery_store")),
	}
}

// Verify PostgresMasteryStore implements store.MasteryStore interface
var _ store.MasteryStore = (*PostgresMasteryStore)(nil)

// WithTx implements store.MasteryStore.WithTx. It returns a new store
// instance bound to the given transaction.
func (s *PostgresMasteryStore) WithTx(tx *sql.Tx) store.MasteryStore {
	return &PostgresMasteryStore{
		db:     tx,
		logger: s.logger,
	}
}

const masteryColumns = `
	id, user_id, drill_item_id, score, correct_streak, seen_count,
	last_attempt_at, next_review_at, created_at, updated_at`

// Get implements store.MasteryStore.Get.
func (s *PostgresMasteryStore) Get(ctx context.Context, userID, drillItemID uuid.UUID) (*domain.Mastery, error) {
	return s.get(ctx, userID, drillItemID, false)
}

// GetForUpdate implements store.MasteryStore.GetForUpdate. The row lock
// serializes concurrent submissions for the same (user, drill item) pair.
func (s *PostgresMasteryStore) GetForUpdate(ctx context.Context, userID, drillItemID uuid.UUID) (*domain.Mastery, error) {
	return s.get(ctx, userID, drillItemID, true)
}

func (s *PostgresMasteryStore) get(
	ctx context.Context,
	userID, drillItemID uuid.UUID,
	forUpdate bool,
) (*domain.Mastery, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT` + masteryColumns + `
		FROM mastery
		WHERE user_id = $1 AND drill_item_id = $2`
	if forUpdate {
		query += `
		FOR UPDATE`
	}

	var m domain.Mastery
	var lastAttempt sql.NullTime
	err := s.db.QueryRowContext(ctx, query, userID, drillItemID).Scan(
		&m.ID,
		&m.UserID,
		&m.DrillItemID,
		&m.Score,
		&m.CorrectStreak,
		&m.SeenCount,
		&lastAttempt,
		&m.NextReviewAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrMasteryNotFound
		}
		log.Error("failed to get mastery",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("drill_item_id", drillItemID.String()))
		return nil, MapError(err)
	}
	if lastAttempt.Valid {
		m.LastAttemptAt = lastAttempt.Time
	}

	return &m, nil
}

// Upsert implements store.MasteryStore.Upsert. The conflict target is the
// (user_id, drill_item_id) unique constraint so retries and races converge
// on one row.
func (s *PostgresMasteryStore) Upsert(ctx context.Context, mastery *domain.Mastery) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := mastery.Validate(); err != nil {
		log.Warn("mastery validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", mastery.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	var lastAttempt interface{}
	if !mastery.LastAttemptAt.IsZero() {
		lastAttempt = mastery.LastAttemptAt
	}

	query := `
		INSERT INTO mastery
			(id, user_id, drill_item_id, score, correct_streak, seen_count,
			 last_attempt_at, next_review_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, drill_item_id) DO UPDATE SET
			score = EXCLUDED.score,
			correct_streak = EXCLUDED.correct_streak,
			seen_count = EXCLUDED.seen_count,
			last_attempt_at = EXCLUDED.last_attempt_at,
			next_review_at = EXCLUDED.next_review_at,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		mastery.ID,
		mastery.UserID,
		mastery.DrillItemID,
		mastery.Score,
		mastery.CorrectStreak,
		mastery.SeenCount,
		lastAttempt,
		mastery.NextReviewAt,
		mastery.CreatedAt,
		mastery.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert mastery",
			slog.String("error", err.Error()),
			slog.String("user_id", mastery.UserID.String()),
			slog.String("drill_item_id", mastery.DrillItemID.String()))
		return MapError(err)
	}

	log.Debug("mastery upserted",
		slog.String("user_id", mastery.UserID.String()),
		slog.String("drill_item_id", mastery.DrillItemID.String()),
		slog.Float64("score", mastery.Score),
		slog.Int("correct_streak", mastery.CorrectStreak))
	return nil
}

// FindDue implements store.MasteryStore.FindDue.
func (s *PostgresMasteryStore) FindDue(
	ctx context.Context,
	userID uuid.UUID,
	asOf time.Time,
	limit int,
) ([]*domain.MasteryDue, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT m.id, m.user_id, m.drill_item_id, m.score, m.correct_streak,
		       m.seen_count, m.last_attempt_at, m.next_review_at,
		       m.created_at, m.updated_at, ci.infinitive
		FROM mastery m
		JOIN drill_items di ON di.id = m.drill_item_id
		JOIN content_items ci ON ci.id = di.content_item_id
		WHERE m.user_id = $1
		  AND m.next_review_at <= $2
		ORDER BY m.next_review_at ASC
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, userID, asOf, limit)
	if err != nil {
		log.Error("failed to query due mastery records",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	due := make([]*domain.MasteryDue, 0)
	for rows.Next() {
		var d domain.MasteryDue
		var lastAttempt sql.NullTime
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.DrillItemID,
			&d.Score,
			&d.CorrectStreak,
			&d.SeenCount,
			&lastAttempt,
			&d.NextReviewAt,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.Infinitive,
		)
		if err != nil {
			log.Error("failed to scan mastery row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		if lastAttempt.Valid {
			d.LastAttemptAt = lastAttempt.Time
		}
		due = append(due, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("found due mastery records",
		slog.Int("count", len(due)),
		slog.String("user_id", userID.String()))
	return due, nil
}
