package customer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
)

type fakeRepo struct {
	customers map[id.ID]*Customer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{customers: make(map[id.ID]*Customer)}
}

func (r *fakeRepo) Create(ctx context.Context, c *Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, c *Customer) error {
	if _, ok := r.customers[c.ID]; !ok {
		return apperror.NewNotFound("customer", c.ID)
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, customerID id.ID) (*Customer, error) {
	c, ok := r.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("customer", phone)
}

func (r *fakeRepo) List(ctx context.Context, limit int) ([]Customer, error) {
	var out []Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeRepo) Delete(ctx context.Context, customerID id.ID) error {
	delete(r.customers, customerID)
	return nil
}

func TestCreate_DuplicatePhoneRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first := New("Ayşe", "Yılmaz", "+90 532 000 11 22")
	require.NoError(t, svc.Create(ctx, first))

	second := New("Fatma", "Kaya", "+90 532 000 11 22")
	err := svc.Create(ctx, second)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Len(t, repo.customers, 1)
}

func TestUpdate_KeepingOwnPhoneAllowed(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	c := New("Ayşe", "Yılmaz", "+90 532 000 11 22")
	require.NoError(t, svc.Create(ctx, c))

	c.Address = "Kadıköy"
	require.NoError(t, svc.Update(ctx, c))

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kadıköy", got.Address)
}

func TestUpdate_TakingAnotherPhoneRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a := New("Ayşe", "Yılmaz", "+90 532 000 11 22")
	b := New("Mehmet", "Demir", "+90 541 333 44 55")
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	b.Phone = a.Phone
	err := svc.Update(ctx, b)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestVisitStatistics(t *testing.T) {
	c := New("Ayşe", "Yılmaz", "+90 532 000 11 22")
	at := time.Now().UTC()

	c.RecordVisit(types.NewMoney(100), at)
	c.RecordVisit(types.NewMoney(250), at)
	assert.Equal(t, int64(2), c.VisitCount)
	assert.True(t, c.TotalSpent.Equal(types.NewMoney(350)))
	require.NotNil(t, c.LastVisit)

	c.RevertVisit(types.NewMoney(250))
	assert.Equal(t, int64(1), c.VisitCount)
	assert.True(t, c.TotalSpent.Equal(types.NewMoney(100)))

	// Reverting more than was recorded clamps at zero.
	c.RevertVisit(types.NewMoney(999))
	assert.Equal(t, int64(0), c.VisitCount)
	assert.True(t, c.TotalSpent.IsZero())
	c.RevertVisit(types.NewMoney(1))
	assert.Equal(t, int64(0), c.VisitCount)
}

func TestAdjustSpent_ClampsAtZero(t *testing.T) {
	c := New("Ayşe", "Yılmaz", "+90 532 000 11 22")
	c.TotalSpent = types.NewMoney(100)

	c.AdjustSpent(types.NewMoney(50))
	assert.True(t, c.TotalSpent.Equal(types.NewMoney(150)))

	c.AdjustSpent(types.NewMoney(-500))
	assert.True(t, c.TotalSpent.IsZero())
}
