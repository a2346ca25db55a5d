package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
	"github.com/languro/drill-api/internal/service/drill"
)

// SessionRequest is the body of POST /api/drills/session.
type SessionRequest struct {
	Count      int        `json:"count"                 validate:"required,min=1,max=100"`
	ListID     *uuid.UUID `json:"list_id,omitempty"`
	LanguageID *int64     `json:"language_id,omitempty" validate:"omitempty,min=1"`
	Tenses     []string   `json:"tenses,omitempty"      validate:"omitempty,dive,min=1"`
}

// DrillPromptResponse is one prompt in a session. The expected form is
// deliberately absent.
type DrillPromptResponse struct {
	ID           string `json:"id"`
	Infinitive   string `json:"infinitive"`
	TenseName    string `json:"tense_name"`
	Mood         string `json:"mood"`
	PronounLabel string `json:"pronoun_label"`
	LanguageCode string `json:"language_code"`
	LanguageName string `json:"language_name,omitempty"`
}

// SessionResponse is the body returned by POST /api/drills/session.
type SessionResponse struct {
	Drills []DrillPromptResponse `json:"drills"`
	Count  int                   `json:"count"`
}

// SessionStatsResponse is the body returned by GET /api/drills/stats.
type SessionStatsResponse struct {
	TotalDrills            int `json:"total_drills"`
	UniqueVerbs            int `json:"unique_verbs"`
	RecommendedSessionSize int `json:"recommended_session_size"`
}

// SubmitAnswerRequest is the body of POST /api/drills/{id}/answer.
type SubmitAnswerRequest struct {
	UserInput   string `json:"user_input"              validate:"required"`
	TimeSpentMs *int   `json:"time_spent_ms,omitempty" validate:"omitempty,min=0"`
}

// MasteryStateResponse is the mastery snapshot attached to a submission
// response.
type MasteryStateResponse struct {
	Score         float64   `json:"score"`
	CorrectStreak int       `json:"correct_streak"`
	SeenCount     int       `json:"seen_count"`
	NextReviewAt  time.Time `json:"next_review_at"`
}

// SubmitAnswerResponse is the body returned by POST /api/drills/{id}/answer.
// ExpectedAnswer is only present for incorrect answers.
type SubmitAnswerResponse struct {
	IsCorrect      bool                 `json:"is_correct"`
	ErrorType      *string              `json:"error_type,omitempty"`
	ExpectedAnswer string               `json:"expected_answer,omitempty"`
	Feedback       string               `json:"feedback"`
	Mastery        MasteryStateResponse `json:"mastery"`
}

// AttemptResponse is one attempt row in the results listing.
type AttemptResponse struct {
	Infinitive  string    `json:"infinitive"`
	UserInput   string    `json:"user_input"`
	IsCorrect   bool      `json:"is_correct"`
	ErrorType   *string   `json:"error_type,omitempty"`
	Expected    string    `json:"expected,omitempty"`
	AttemptedAt time.Time `json:"attempted_at"`
}

// ResultsSummaryResponse aggregates the attempts in a results listing.
type ResultsSummaryResponse struct {
	TotalAttempts  int     `json:"total_attempts"`
	Correct        int     `json:"correct"`
	Incorrect      int     `json:"incorrect"`
	Accuracy       float64 `json:"accuracy"`
	AvgTimeSpentMs int     `json:"avg_time_spent_ms"`
}

// ResultsResponse is the body returned by GET /api/drills/results.
type ResultsResponse struct {
	Summary        ResultsSummaryResponse `json:"summary"`
	ErrorBreakdown map[string]int         `json:"error_breakdown"`
	Attempts       []AttemptResponse      `json:"attempts"`
}

// DueReviewResponse is one due mastery row in GET /api/mastery/due.
type DueReviewResponse struct {
	DrillItemID   string    `json:"drill_item_id"`
	Infinitive    string    `json:"infinitive"`
	Score         float64   `json:"score"`
	CorrectStreak int       `json:"correct_streak"`
	SeenCount     int       `json:"seen_count"`
	NextReviewAt  time.Time `json:"next_review_at"`
}

// drillItemToPrompt converts a domain drill item to its client-facing
// prompt.
func drillItemToPrompt(item *domain.DrillItem) DrillPromptResponse {
	return DrillPromptResponse{
		ID:           item.ID.String(),
		Infinitive:   item.PromptTemplate.Infinitive,
		TenseName:    item.PromptTemplate.TenseName,
		Mood:         item.PromptTemplate.Mood,
		PronounLabel: item.PromptTemplate.PronounLabel,
		LanguageCode: item.PromptTemplate.LanguageCode,
		LanguageName: item.LanguageName,
	}
}

// submitResultToResponse converts a service submission result to the
// client-facing response.
func submitResultToResponse(result *drill.SubmitResult) SubmitAnswerResponse {
	resp := SubmitAnswerResponse{
		IsCorrect:      result.IsCorrect,
		ExpectedAnswer: result.ExpectedAnswer,
		Feedback:       result.Feedback,
	}
	if result.ErrorType != nil {
		errorType := string(*result.ErrorType)
		resp.ErrorType = &errorType
	}
	if result.Mastery != nil {
		resp.Mastery = MasteryStateResponse{
			Score:         result.Mastery.Score,
			CorrectStreak: result.Mastery.CorrectStreak,
			SeenCount:     result.Mastery.SeenCount,
			NextReviewAt:  result.Mastery.NextReviewAt,
		}
	}
	return resp
}

// resultsToResponse converts the service session report to the client-facing
// response.
func resultsToResponse(results *drill.SessionResults) ResultsResponse {
	breakdown := make(map[string]int, len(results.ErrorBreakdown))
	for kind, count := range results.ErrorBreakdown {
		breakdown[string(kind)] = count
	}

	attempts := make([]AttemptResponse, 0, len(results.Attempts))
	for _, a := range results.Attempts {
		resp := AttemptResponse{
			Infinitive:  a.Infinitive,
			UserInput:   a.UserInput,
			IsCorrect:   a.IsCorrect,
			AttemptedAt: a.AttemptedAt,
		}
		if a.ErrorType != nil {
			errorType := string(*a.ErrorType)
			resp.ErrorType = &errorType
		}
		if a.ErrorDetail != nil {
			resp.Expected = a.ErrorDetail.Expected
		}
		attempts = append(attempts, resp)
	}

	return ResultsResponse{
		Summary: ResultsSummaryResponse{
			TotalAttempts:  results.Summary.TotalAttempts,
			Correct:        results.Summary.Correct,
			Incorrect:      results.Summary.Incorrect,
			Accuracy:       results.Summary.Accuracy,
			AvgTimeSpentMs: results.Summary.AvgTimeSpentMs,
		},
		ErrorBreakdown: breakdown,
		Attempts:       attempts,
	}
}

// dueToResponse converts due mastery rows to the client-facing listing.
func dueToResponse(due []*domain.MasteryDue) []DueReviewResponse {
	out := make([]DueReviewResponse, 0, len(due))
	for _, d := range due {
		out = append(out, DueReviewResponse{
			DrillItemID:   d.DrillItemID.String(),
			Infinitive:    d.Infinitive,
			Score:         d.Score,
			CorrectStreak: d.CorrectStreak,
			SeenCount:     d.SeenCount,
			NextReviewAt:  d.NextReviewAt,
		})
	}
	return out
}
