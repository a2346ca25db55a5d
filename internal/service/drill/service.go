package drill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
)

// Common error types for DrillService
var (
	// ErrDrillItemNotFound indicates that the drill item does not exist.
	ErrDrillItemNotFound = errors.New("drill item not found")

	// ErrInvalidSessionSize indicates a session was requested with a
	// non-positive item count.
	ErrInvalidSessionSize = errors.New("session size must be positive")
)

// SessionConfig describes one session request: how many items the learner
// wants and the optional filters narrowing the eligible pool.
type SessionConfig struct {
	UserID     uuid.UUID
	Count      int
	ListID     *uuid.UUID
	LanguageID *int64
	Tenses     []string
}

// SessionStats summarizes the learner's drill pool so the client can size a
// session sensibly.
type SessionStats struct {
	TotalDrills            int `json:"total_drills"`
	UniqueVerbs            int `json:"unique_verbs"`
	RecommendedSessionSize int `json:"recommended_session_size"`
}

// SubmittedAnswer is the learner's typed answer to one drill item.
type SubmittedAnswer struct {
	UserInput   string
	TimeSpentMs *int
}

// ValidationResult is the outcome of checking a learner's answer against a
// drill item. ErrorType and Details are nil for correct answers.
type ValidationResult struct {
	IsCorrect bool
	ErrorType *domain.ErrorKind
	Details   *domain.ErrorDetails
}

// SubmitResult is what a submission returns to the client: the verdict,
// feedback text, and the updated mastery state. ExpectedAnswer is only
// populated for incorrect answers so clients cannot leak it early.
type SubmitResult struct {
	IsCorrect      bool
	ErrorType      *domain.ErrorKind
	ExpectedAnswer string
	Feedback       string
	Mastery        *domain.Mastery
}

// ResultsSummary aggregates one stretch of attempts. Accuracy is a
// percentage rounded to the nearest integer; AvgTimeSpentMs averages only
// the attempts that reported a duration.
type ResultsSummary struct {
	TotalAttempts  int     `json:"total_attempts"`
	Correct        int     `json:"correct"`
	Incorrect      int     `json:"incorrect"`
	Accuracy       float64 `json:"accuracy"`
	AvgTimeSpentMs int     `json:"avg_time_spent_ms"`
}

// SessionResults is the per-session report: the summary, the incorrect
// attempts broken down by error classification, and the raw attempt rows.
type SessionResults struct {
	Summary        ResultsSummary           `json:"summary"`
	ErrorBreakdown map[domain.ErrorKind]int `json:"error_breakdown"`
	Attempts       []*domain.Attempt        `json:"attempts"`
}

// DrillService is the drill engine's application surface: session
// construction, answer submission, and progress reporting.
type DrillService interface {
	// BuildSession assembles a randomized practice session of up to
	// cfg.Count drill items from the learner's eligible pool. An empty
	// pool yields an empty slice and a nil error; deciding how to present
	// emptiness is the caller's concern.
	BuildSession(ctx context.Context, cfg SessionConfig) ([]*domain.DrillItem, error)

	// GetSessionStats reports the size of the learner's drill pool,
	// optionally narrowed to one list. Language and tense filters do not
	// apply here.
	GetSessionStats(ctx context.Context, userID uuid.UUID, listID *uuid.UUID) (*SessionStats, error)

	// SubmitAnswer checks the learner's answer against the drill item,
	// classifies any error, and atomically records the attempt and the
	// updated mastery state.
	//
	// Returns ErrDrillItemNotFound without writing anything when the drill
	// item does not exist.
	SubmitAnswer(
		ctx context.Context,
		userID uuid.UUID,
		drillItemID uuid.UUID,
		answer SubmittedAnswer,
	) (*SubmitResult, error)

	// GetResults reports the learner's attempts made at or after since,
	// with an aggregate summary and error breakdown.
	GetResults(ctx context.Context, userID uuid.UUID, since time.Time, limit int) (*SessionResults, error)

	// GetDueReviews lists the learner's mastery records due for review at
	// asOf, soonest first, capped at 50 rows.
	GetDueReviews(ctx context.Context, userID uuid.UUID, asOf time.Time) ([]*domain.MasteryDue, error)
}

// ServiceError wraps errors from the drill service with operation context,
// so consumers can differentiate failures with errors.As instead of string
// matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
