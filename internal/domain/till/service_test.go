package till

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
)

// fakeTxManager runs fn directly; repos here are in-memory.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTillRepo struct {
	sessions map[id.ID]*Session
	entries  []Entry
}

func newFakeTillRepo() *fakeTillRepo {
	return &fakeTillRepo{sessions: make(map[id.ID]*Session)}
}

func (r *fakeTillRepo) CreateSession(ctx context.Context, s *Session) error {
	for _, existing := range r.sessions {
		if existing.Status == StatusOpen && s.Status == StatusOpen {
			return apperror.NewConflict("till already open")
		}
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeTillRepo) UpdateSession(ctx context.Context, s *Session) error {
	if _, ok := r.sessions[s.ID]; !ok {
		return apperror.NewNotFound("cash register", s.ID)
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeTillRepo) GetSession(ctx context.Context, sessionID id.ID) (*Session, error) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, apperror.NewNotFound("cash register", sessionID)
	}
	cp := *s
	return &cp, nil
}

func (r *fakeTillRepo) GetSessionForUpdate(ctx context.Context, sessionID id.ID) (*Session, error) {
	return r.GetSession(ctx, sessionID)
}

func (r *fakeTillRepo) FindOpenSession(ctx context.Context) (*Session, error) {
	for _, s := range r.sessions {
		if s.Status == StatusOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("cash register", nil)
}

func (r *fakeTillRepo) FindOpenSessionForUpdate(ctx context.Context) (*Session, error) {
	return r.FindOpenSession(ctx)
}

func (r *fakeTillRepo) ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error) {
	var out []Session
	for _, s := range r.sessions {
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeTillRepo) DeleteSession(ctx context.Context, sessionID id.ID) error {
	if _, ok := r.sessions[sessionID]; !ok {
		return apperror.NewNotFound("cash register", sessionID)
	}
	delete(r.sessions, sessionID)
	return nil
}

func (r *fakeTillRepo) CreateEntry(ctx context.Context, e *Entry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeTillRepo) ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error) {
	var out []Entry
	for _, e := range r.entries {
		if filter.SessionID != nil && e.SessionID != *filter.SessionID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeTillRepo) DeleteEntriesBySession(ctx context.Context, sessionID id.ID) error {
	var kept []Entry
	for _, e := range r.entries {
		if e.SessionID != sessionID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *fakeTillRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(r.sessions))
	r.sessions = make(map[id.ID]*Session)
	r.entries = nil
	return n, nil
}

func newTestService(repo *fakeTillRepo) *Service {
	check := func(p string) bool { return p == "secret" }
	return NewService(repo, fakeTxManager{}, nil, check)
}

func TestOpen_SeedsFloatWithoutReplay(t *testing.T) {
	repo := newFakeTillRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenInput{OpeningAmount: types.NewMoney(500), OpenedBy: "Ali"})
	require.NoError(t, err)

	assert.Equal(t, StatusOpen, session.Status)
	assert.True(t, session.ExpectedCash.Equal(types.NewMoney(500)))
	// The opening float entry must not double into the running totals.
	assert.True(t, session.TotalCashIn.IsZero())
	assert.True(t, session.TotalCashOut.IsZero())

	entries, err := repo.ListEntries(ctx, EntryFilter{SessionID: &session.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, CategoryOpeningFloat, entries[0].Category)
	assert.Equal(t, EntryIn, entries[0].Type)
}

func TestOpen_ConflictWhenAlreadyOpen(t *testing.T) {
	repo := newFakeTillRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Open(ctx, OpenInput{OpeningAmount: types.NewMoney(100)})
	require.NoError(t, err)

	_, err = svc.Open(ctx, OpenInput{OpeningAmount: types.NewMoney(200)})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Len(t, repo.sessions, 1)
}

func TestOpen_NegativeAmountRejected(t *testing.T) {
	svc := newTestService(newFakeTillRepo())

	_, err := svc.Open(context.Background(), OpenInput{OpeningAmount: types.NewMoney(-10)})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestAppend_UpdatesRunningTotals(t *testing.T) {
	repo := newFakeTillRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenInput{OpeningAmount: types.NewMoney(1000)})
	require.NoError(t, err)

	_, err = svc.Append(ctx, AppendInput{
		Type: EntryIn, Amount: types.NewMoney(250), Category: CategorySale,
	})
	require.NoError(t, err)

	_, err = svc.Append(ctx, AppendInput{
		Type: EntryOut, Amount: types.NewMoney(100), Category: CategoryExpense,
	})
	require.NoError(t, err)

	got, err := repo.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalCashIn.Equal(types.NewMoney(250)))
	assert.True(t, got.TotalCashOut.Equal(types.NewMoney(100)))
	// expectedCash = opening + in - out
	want := got.OpeningAmount.Add(got.TotalCashIn).Sub(got.TotalCashOut)
	assert.True(t, got.ExpectedCash.Equal(want))
	assert.True(t, got.ExpectedCash.Equal(types.NewMoney(1150)))
}

func TestAppend_NoOpenTill(t *testing.T) {
	svc := newTestService(newFakeTillRepo())

	_, err := svc.Append(context.Background(), AppendInput{
		Type: EntryIn, Amount: types.NewMoney(50), Category: CategorySale,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestAppendBestEffort_SkipsWithoutTill(t *testing.T) {
	svc := newTestService(newFakeTillRepo())

	entry, skipped, err := svc.AppendBestEffort(context.Background(), AppendInput{
		Type: EntryIn, Amount: types.NewMoney(75), Category: CategorySale,
	})
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Nil(t, entry)
}

func TestAppend_InvalidEntryRejected(t *testing.T) {
	repo := newFakeTillRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Open(ctx, OpenInput{OpeningAmount: types.NewMoney(100)})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   AppendInput
	}{
		{"zero amount", AppendInput{Type: EntryIn, Amount: types.Zero(), Category: CategorySale}},
		{"bad type", AppendInput{Type: "sideways", Amount: types.NewMoney(10), Category: CategorySale}},
		{"bad category", AppendInput{Type: EntryIn, Amount: types.NewMoney(10), Category: "bribe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Append(ctx, tt.in)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestClose_FreezesSession(t *testing.T) {
	repo := newFakeTillRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenInput{OpeningAmount: types.NewMoney(1000)})
	require.NoError(t, err)
	_, err = svc.Append(ctx, AppendInput{Type: EntryIn, Amount: types.NewMoney(500), Category: CategorySale})
	require.NoError(t, err)

	closed, err := svc.Close(ctx, session.ID, CloseInput{ActualCash: types.NewMoney(1450), ClosedBy: "Ali"})
	require.NoError(t, err)

	assert.Equal(t, StatusClosed, closed.Status)
	require.NotNil(t, closed.ActualCash)
	assert.True(t, closed.ActualCash.Equal(types.NewMoney(1450)))
	// difference = actual - expected
	assert.True(t, closed.Difference.Equal(types.NewMoney(-50)))
	require.NotNil(t, closed.ClosingDate)
	require.NotNil(t, closed.ClosedBy)
	assert.Equal(t, "Ali", *closed.ClosedBy)
}

func TestClose_AlreadyClosed(t *testing.T) {
	repo := newFakeTillRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenInput{OpeningAmount: types.NewMoney(100)})
	require.NoError(t, err)
	_, err = svc.Close(ctx, session.ID, CloseInput{ActualCash: types.NewMoney(100)})
	require.NoError(t, err)

	_, err = svc.Close(ctx, session.ID, CloseInput{ActualCash: types.NewMoney(100)})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestClosedSessionRejectsAppend(t *testing.T) {
	repo := newFakeTillRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenInput{OpeningAmount: types.NewMoney(100)})
	require.NoError(t, err)
	_, err = svc.Close(ctx, session.ID, CloseInput{ActualCash: types.NewMoney(100)})
	require.NoError(t, err)

	_, err = svc.Append(ctx, AppendInput{Type: EntryIn, Amount: types.NewMoney(20), Category: CategorySale})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_RemovesSessionAndEntries(t *testing.T) {
	repo := newFakeTillRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Open(ctx, OpenInput{OpeningAmount: types.NewMoney(100)})
	require.NoError(t, err)
	_, err = svc.Append(ctx, AppendInput{Type: EntryIn, Amount: types.NewMoney(10), Category: CategorySale})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, session.ID))

	assert.Empty(t, repo.sessions)
	assert.Empty(t, repo.entries)
}

func TestClear_RequiresAdminPassword(t *testing.T) {
	repo := newFakeTillRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Open(ctx, OpenInput{OpeningAmount: types.NewMoney(100)})
	require.NoError(t, err)

	_, err = svc.Clear(ctx, "wrong")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Len(t, repo.sessions, 1)

	deleted, err := svc.Clear(ctx, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Empty(t, repo.sessions)
}
