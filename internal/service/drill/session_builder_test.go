package drill

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/languro/drill-api/internal/domain"
	"github.com/languro/drill-api/internal/domain/srs"
	"github.com/languro/drill-api/internal/textnorm"
)

func newTestService(t *testing.T, drillItems *fakeDrillItemStore, attempts *fakeAttemptStore, mastery *fakeMasteryStore, seed int64) DrillService {
	t.Helper()

	if drillItems == nil {
		drillItems = &fakeDrillItemStore{}
	}
	if attempts == nil {
		attempts = &fakeAttemptStore{}
	}
	if mastery == nil {
		mastery = &fakeMasteryStore{}
	}

	validator := NewAnswerValidator(&fakeConjugationStore{siblings: venirSiblings()}, nil, testLogger())

	return NewDrillService(
		drillItems,
		attempts,
		mastery,
		validator,
		srs.NewDefaultService(),
		&fakeTransactor{},
		rand.New(rand.NewSource(seed)),
		testLogger(),
	)
}

func eligiblePool(n int) []*domain.DrillItem {
	pool := make([]*domain.DrillItem, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, newDrillItem(textnorm.ModeLenientAccents, "vengas"))
	}
	return pool
}

func TestBuildSessionPoolExhaustion(t *testing.T) {
	t.Parallel()

	drillItems := &fakeDrillItemStore{eligible: eligiblePool(5)}
	service := newTestService(t, drillItems, nil, nil, 1)

	session, err := service.BuildSession(context.Background(), SessionConfig{
		UserID: uuid.New(),
		Count:  50,
	})
	require.NoError(t, err)

	assert.Len(t, session, 5)

	seen := make(map[uuid.UUID]bool)
	for _, item := range session {
		assert.False(t, seen[item.ID], "session contains duplicate drill item")
		seen[item.ID] = true
	}
}

func TestBuildSessionEmptyPool(t *testing.T) {
	t.Parallel()

	service := newTestService(t, &fakeDrillItemStore{}, nil, nil, 1)

	session, err := service.BuildSession(context.Background(), SessionConfig{
		UserID: uuid.New(),
		Count:  10,
	})
	require.NoError(t, err)

	assert.NotNil(t, session)
	assert.Empty(t, session)
}

func TestBuildSessionTakesRequestedCount(t *testing.T) {
	t.Parallel()

	drillItems := &fakeDrillItemStore{eligible: eligiblePool(30)}
	service := newTestService(t, drillItems, nil, nil, 1)

	session, err := service.BuildSession(context.Background(), SessionConfig{
		UserID: uuid.New(),
		Count:  10,
	})
	require.NoError(t, err)

	assert.Len(t, session, 10)
}

func TestBuildSessionDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	pool := eligiblePool(30)

	first, err := newTestService(t, &fakeDrillItemStore{eligible: pool}, nil, nil, 42).
		BuildSession(context.Background(), SessionConfig{UserID: uuid.New(), Count: 10})
	require.NoError(t, err)

	// Same seed over the same pool yields the same ordering.
	again, err := newTestService(t, &fakeDrillItemStore{eligible: pool}, nil, nil, 42).
		BuildSession(context.Background(), SessionConfig{UserID: uuid.New(), Count: 10})
	require.NoError(t, err)

	require.Len(t, again, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, again[i].ID)
	}
}

func TestBuildSessionRejectsNonPositiveCount(t *testing.T) {
	t.Parallel()

	service := newTestService(t, &fakeDrillItemStore{eligible: eligiblePool(5)}, nil, nil, 1)

	_, err := service.BuildSession(context.Background(), SessionConfig{UserID: uuid.New(), Count: 0})
	assert.ErrorIs(t, err, ErrInvalidSessionSize)
}

func TestBuildSessionPropagatesStoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	service := newTestService(t, &fakeDrillItemStore{findErr: storeErr}, nil, nil, 1)

	_, err := service.BuildSession(context.Background(), SessionConfig{UserID: uuid.New(), Count: 10})
	assert.ErrorIs(t, err, storeErr)
}

func TestGetSessionStats(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		total       int
		verbs       int
		recommended int
	}{
		{"small pool recommends everything", 7, 3, 7},
		{"large pool is capped", 120, 25, 20},
		{"empty pool", 0, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			drillItems := &fakeDrillItemStore{total: tc.total, verbs: tc.verbs}
			service := newTestService(t, drillItems, nil, nil, 1)

			stats, err := service.GetSessionStats(context.Background(), uuid.New(), nil)
			require.NoError(t, err)

			assert.Equal(t, tc.total, stats.TotalDrills)
			assert.Equal(t, tc.verbs, stats.UniqueVerbs)
			assert.Equal(t, tc.recommended, stats.RecommendedSessionSize)
		})
	}
}
