package drill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
	"github.com/languro/drill-api/internal/platform/logger"
	"github.com/languro/drill-api/internal/store"
)

// defaultOverFetchMultiplier controls how many candidates are fetched per
// requested session slot before shuffling. Over-fetching keeps small
// sessions from always drawing the same leading rows.
const defaultOverFetchMultiplier = 3

// recommendedSessionCap is the largest session size the stats endpoint will
// recommend regardless of pool size.
const recommendedSessionCap = 20

// BuildSession implements DrillService.BuildSession.
func (s *drillService) BuildSession(ctx context.Context, cfg SessionConfig) ([]*domain.DrillItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if cfg.Count < 1 {
		return nil, ErrInvalidSessionSize
	}

	filter := store.EligibilityFilter{
		UserID:     cfg.UserID,
		ListID:     cfg.ListID,
		LanguageID: cfg.LanguageID,
		Tenses:     cfg.Tenses,
	}

	candidates, err := s.drillItems.FindEligible(ctx, filter, cfg.Count*s.overFetchMultiplier)
	if err != nil {
		log.Error("failed to fetch eligible drill items",
			slog.String("error", err.Error()),
			slog.String("user_id", cfg.UserID.String()))
		return nil, fmt.Errorf("failed to build session: %w", err)
	}

	// Empty pool is a normal condition, not an error.
	if len(candidates) == 0 {
		log.Debug("no eligible drill items",
			slog.String("user_id", cfg.UserID.String()))
		return []*domain.DrillItem{}, nil
	}

	s.shuffle(candidates)

	if len(candidates) > cfg.Count {
		candidates = candidates[:cfg.Count]
	}

	log.Debug("built drill session",
		slog.String("user_id", cfg.UserID.String()),
		slog.Int("requested", cfg.Count),
		slog.Int("returned", len(candidates)))
	return candidates, nil
}

// shuffle permutes items in place with a Fisher-Yates pass. The rng is
// guarded because *rand.Rand is not safe for concurrent use.
func (s *drillService) shuffle(items []*domain.DrillItem) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	s.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// GetSessionStats implements DrillService.GetSessionStats.
func (s *drillService) GetSessionStats(
	ctx context.Context,
	userID uuid.UUID,
	listID *uuid.UUID,
) (*SessionStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	totalDrills, err := s.drillItems.CountEligible(ctx, userID, listID)
	if err != nil {
		log.Error("failed to count eligible drill items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get session stats: %w", err)
	}

	uniqueVerbs, err := s.drillItems.CountEligibleVerbs(ctx, userID, listID)
	if err != nil {
		log.Error("failed to count eligible verbs",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get session stats: %w", err)
	}

	recommended := totalDrills
	if recommended > recommendedSessionCap {
		recommended = recommendedSessionCap
	}

	return &SessionStats{
		TotalDrills:            totalDrills,
		UniqueVerbs:            uniqueVerbs,
		RecommendedSessionSize: recommended,
	}, nil
}
