package drill

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/domain"
	"github.com/languro/drill-api/internal/store"
)

// fakeConjugationStore serves a fixed set of sibling conjugations.
type fakeConjugationStore struct {
	siblings []*domain.Conjugation
	err      error
}

var _ store.ConjugationStore = (*fakeConjugationStore)(nil)

func (f *fakeConjugationStore) FindSiblings(
	_ context.Context,
	_, excludeConjugationID int64,
) ([]*domain.Conjugation, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Conjugation, 0, len(f.siblings))
	for _, c := range f.siblings {
		if c.ID != excludeConjugationID {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeDrillItemStore serves drill items from memory.
type fakeDrillItemStore struct {
	items    map[uuid.UUID]*domain.DrillItem
	eligible []*domain.DrillItem
	findErr  error
	total    int
	verbs    int
	countErr error
}

var _ store.DrillItemStore = (*fakeDrillItemStore)(nil)

func (f *fakeDrillItemStore) GetByID(_ context.Context, id uuid.UUID) (*domain.DrillItem, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, store.ErrDrillItemNotFound
}

func (f *fakeDrillItemStore) FindEligible(
	_ context.Context,
	_ store.EligibilityFilter,
	limit int,
) ([]*domain.DrillItem, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	candidates := f.eligible
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	// Copy so callers shuffling the result cannot mutate the fixture.
	out := make([]*domain.DrillItem, len(candidates))
	copy(out, candidates)
	return out, nil
}

func (f *fakeDrillItemStore) CountEligible(_ context.Context, _ uuid.UUID, _ *uuid.UUID) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.total, nil
}

func (f *fakeDrillItemStore) CountEligibleVerbs(_ context.Context, _ uuid.UUID, _ *uuid.UUID) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.verbs, nil
}

func (f *fakeDrillItemStore) WithTx(_ *sql.Tx) store.DrillItemStore { return f }

// fakeAttemptStore records created attempts in memory.
type fakeAttemptStore struct {
	created   []*domain.Attempt
	createErr error
	history   []*domain.Attempt
	findErr   error
}

var _ store.AttemptStore = (*fakeAttemptStore)(nil)

func (f *fakeAttemptStore) Create(_ context.Context, attempt *domain.Attempt) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, attempt)
	return nil
}

func (f *fakeAttemptStore) FindByUserSince(
	_ context.Context,
	_ uuid.UUID,
	_ time.Time,
	limit int,
) ([]*domain.Attempt, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if len(f.history) > limit {
		return f.history[:limit], nil
	}
	return f.history, nil
}

func (f *fakeAttemptStore) WithTx(_ *sql.Tx) store.AttemptStore { return f }

// fakeMasteryStore keeps mastery rows keyed by (user, drill item).
type fakeMasteryStore struct {
	records   map[string]*domain.Mastery
	upserted  []*domain.Mastery
	getErr    error
	upsertErr error
	due       []*domain.MasteryDue
	dueErr    error
}

var _ store.MasteryStore = (*fakeMasteryStore)(nil)

func masteryKey(userID, drillItemID uuid.UUID) string {
	return userID.String() + "/" + drillItemID.String()
}

func (f *fakeMasteryStore) Get(_ context.Context, userID, drillItemID uuid.UUID) (*domain.Mastery, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if m, ok := f.records[masteryKey(userID, drillItemID)]; ok {
		return m, nil
	}
	return nil, store.ErrMasteryNotFound
}

func (f *fakeMasteryStore) GetForUpdate(ctx context.Context, userID, drillItemID uuid.UUID) (*domain.Mastery, error) {
	return f.Get(ctx, userID, drillItemID)
}

func (f *fakeMasteryStore) Upsert(_ context.Context, mastery *domain.Mastery) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.records == nil {
		f.records = make(map[string]*domain.Mastery)
	}
	f.records[masteryKey(mastery.UserID, mastery.DrillItemID)] = mastery
	f.upserted = append(f.upserted, mastery)
	return nil
}

func (f *fakeMasteryStore) FindDue(
	_ context.Context,
	_ uuid.UUID,
	_ time.Time,
	limit int,
) ([]*domain.MasteryDue, error) {
	if f.dueErr != nil {
		return nil, f.dueErr
	}
	if len(f.due) > limit {
		return f.due[:limit], nil
	}
	return f.due, nil
}

func (f *fakeMasteryStore) WithTx(_ *sql.Tx) store.MasteryStore { return f }

// fakeTransactor runs the function without a real transaction. The fake
// stores ignore the nil *sql.Tx.
type fakeTransactor struct {
	err error
}

var _ store.Transactor = (*fakeTransactor)(nil)

func (f *fakeTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx, nil)
}
