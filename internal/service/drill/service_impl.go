package drill

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
	"github.com/languro/drill-api/internal/domain/srs"
	"github.com/languro/drill-api/internal/platform/logger"
	"github.com/languro/drill-api/internal/store"
)

// dueReviewLimit caps the due-review listing.
const dueReviewLimit = 50

// Verify interface compliance at compile time
var _ DrillService = (*drillService)(nil)

// drillService implements the DrillService interface.
type drillService struct {
	drillItems store.DrillItemStore
	attempts   store.AttemptStore
	mastery    store.MasteryStore
	validator  *AnswerValidator
	srsService srs.Service
	transactor store.Transactor
	logger     *slog.Logger

	overFetchMultiplier int

	rngMu sync.Mutex
	rng   *rand.Rand

	// now is swapped in tests for deterministic timestamps.
	now func() time.Time
}

// NewDrillService creates a new DrillService implementation. rng may be nil,
// in which case a time-seeded source is used; tests inject a seeded one for
// deterministic sessions.
func NewDrillService(
	drillItems store.DrillItemStore,
	attempts store.AttemptStore,
	mastery store.MasteryStore,
	validator *AnswerValidator,
	srsService srs.Service,
	transactor store.Transactor,
	rng *rand.Rand,
	log *slog.Logger,
) DrillService {
	// ALLOW-PANIC: Constructor enforces non-nil dependencies
	if drillItems == nil {
		panic("drillItems cannot be nil")
	}
	if attempts == nil {
		panic("attempts cannot be nil")
	}
	if mastery == nil {
		panic("mastery cannot be nil")
	}
	if validator == nil {
		panic("validator cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if transactor == nil {
		panic("transactor cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &drillService{
		drillItems:          drillItems,
		attempts:            attempts,
		mastery:             mastery,
		validator:           validator,
		srsService:          srsService,
		transactor:          transactor,
		logger:              log.With(slog.String("component", "drill_service")),
		overFetchMultiplier: defaultOverFetchMultiplier,
		rng:                 rng,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// SubmitAnswer implements DrillService.SubmitAnswer.
func (s *drillService) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	drillItemID uuid.UUID,
	answer SubmittedAnswer,
) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing answer submission",
		slog.String("user_id", userID.String()),
		slog.String("drill_item_id", drillItemID.String()))

	// Resolve the drill item before any writes so unknown ids leave no
	// trace in the attempt log.
	item, err := s.drillItems.GetByID(ctx, drillItemID)
	if err != nil {
		if errors.Is(err, store.ErrDrillItemNotFound) {
			log.Warn("drill item not found for submission",
				slog.String("user_id", userID.String()),
				slog.String("drill_item_id", drillItemID.String()))
			return nil, ErrDrillItemNotFound
		}
		return nil, fmt.Errorf("failed to get drill item: %w", err)
	}

	result, err := s.validator.Validate(ctx, item, answer.UserInput)
	if err != nil {
		log.Error("failed to validate answer",
			slog.String("error", err.Error()),
			slog.String("drill_item_id", drillItemID.String()))
		return nil, fmt.Errorf("failed to validate answer: %w", err)
	}

	now := s.now()

	attempt, err := domain.NewAttempt(
		userID,
		drillItemID,
		answer.UserInput,
		result.IsCorrect,
		result.ErrorType,
		result.Details,
		answer.TimeSpentMs,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// The attempt row and the mastery update commit or roll back together.
	var updated *domain.Mastery
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.attempts.WithTx(tx).Create(ctx, attempt); err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}

		masteryStore := s.mastery.WithTx(tx)

		current, err := masteryStore.GetForUpdate(ctx, userID, drillItemID)
		if err != nil {
			if !errors.Is(err, store.ErrMasteryNotFound) {
				return fmt.Errorf("failed to get mastery: %w", err)
			}
			current, err = domain.NewMastery(userID, drillItemID, now)
			if err != nil {
				return fmt.Errorf("failed to create mastery: %w", err)
			}
		}

		updated, err = s.srsService.ApplyAttempt(current, result.IsCorrect, now)
		if err != nil {
			return fmt.Errorf("failed to apply srs update: %w", err)
		}

		if err := masteryStore.Upsert(ctx, updated); err != nil {
			return fmt.Errorf("failed to upsert mastery: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error("failed to submit answer",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("drill_item_id", drillItemID.String()))
		return nil, fmt.Errorf("failed to submit answer: %w", err)
	}

	log.Debug("answer submission processed",
		slog.String("user_id", userID.String()),
		slog.String("drill_item_id", drillItemID.String()),
		slog.Bool("is_correct", result.IsCorrect),
		slog.Float64("score", updated.Score),
		slog.Int("correct_streak", updated.CorrectStreak),
		slog.Time("next_review_at", updated.NextReviewAt))

	submitResult := &SubmitResult{
		IsCorrect: result.IsCorrect,
		ErrorType: result.ErrorType,
		Feedback:  feedbackFor(result),
		Mastery:   updated,
	}
	if !result.IsCorrect {
		submitResult.ExpectedAnswer = item.ValidationRule.ExpectedForm
	}

	return submitResult, nil
}

// GetResults implements DrillService.GetResults.
func (s *drillService) GetResults(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
	limit int,
) (*SessionResults, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	attempts, err := s.attempts.FindByUserSince(ctx, userID, since, limit)
	if err != nil {
		log.Error("failed to fetch attempts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	return summarizeAttempts(attempts), nil
}

// summarizeAttempts aggregates attempt rows into a session report.
func summarizeAttempts(attempts []*domain.Attempt) *SessionResults {
	results := &SessionResults{
		ErrorBreakdown: make(map[domain.ErrorKind]int),
		Attempts:       attempts,
	}

	var timedAttempts, totalTimeMs int
	for _, a := range attempts {
		if a.IsCorrect {
			results.Summary.Correct++
		} else {
			results.Summary.Incorrect++
			if a.ErrorType != nil {
				results.ErrorBreakdown[*a.ErrorType]++
			} else {
				results.ErrorBreakdown[domain.ErrorKindOther]++
			}
		}
		if a.TimeSpentMs != nil {
			timedAttempts++
			totalTimeMs += *a.TimeSpentMs
		}
	}

	results.Summary.TotalAttempts = len(attempts)
	if results.Summary.TotalAttempts > 0 {
		results.Summary.Accuracy = math.Round(
			float64(results.Summary.Correct) / float64(results.Summary.TotalAttempts) * 100,
		)
	}
	if timedAttempts > 0 {
		results.Summary.AvgTimeSpentMs = totalTimeMs / timedAttempts
	}

	return results
}

// GetDueReviews implements DrillService.GetDueReviews.
func (s *drillService) GetDueReviews(
	ctx context.Context,
	userID uuid.UUID,
	asOf time.Time,
) ([]*domain.MasteryDue, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	due, err := s.mastery.FindDue(ctx, userID, asOf, dueReviewLimit)
	if err != nil {
		log.Error("failed to fetch due reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get due reviews: %w", err)
	}

	return due, nil
}
