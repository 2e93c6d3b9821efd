package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeProductRepo struct {
	products map[id.ID]*Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[id.ID]*Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, p *Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return apperror.NewNotFound("product", p.ID)
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Get(ctx context.Context, productID id.ID) (*Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, productID id.ID) (*Product, error) {
	return r.Get(ctx, productID)
}

func (r *fakeProductRepo) List(ctx context.Context, filter ProductFilter) ([]Product, error) {
	var out []Product
	for _, p := range r.products {
		if filter.LowStock && !(p.MinStock > 0 && p.Stock <= p.MinStock) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, productID id.ID) error {
	if _, ok := r.products[productID]; !ok {
		return apperror.NewNotFound("product", productID)
	}
	delete(r.products, productID)
	return nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type fakeMovementRepo struct {
	movements  []Movement
	batchCalls int
}

func (r *fakeMovementRepo) Create(ctx context.Context, m *Movement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeMovementRepo) CreateBatch(ctx context.Context, movements []Movement) error {
	r.batchCalls++
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *fakeMovementRepo) List(ctx context.Context, filter MovementFilter) ([]Movement, error) {
	var out []Movement
	for _, m := range r.movements {
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMovementRepo) signedSum(productID id.ID) int64 {
	var sum int64
	for _, m := range r.movements {
		if m.ProductID == productID {
			sum += m.SignedQuantity()
		}
	}
	return sum
}

func newTestInventory() (*Service, *fakeProductRepo, *fakeMovementRepo) {
	products := newFakeProductRepo()
	movements := &fakeMovementRepo{}
	svc := NewService(products, movements, fakeTxManager{}, nil)
	return svc, products, movements
}

func seedProduct(t *testing.T, repo *fakeProductRepo, stock int64) *Product {
	t.Helper()
	p := NewProduct("Screen protector", "ACC-001", types.NewMoney(150))
	p.Stock = stock
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestApply_WritesMovementWithSnapshots(t *testing.T) {
	svc, products, movements := newTestInventory()
	p := seedProduct(t, products, 10)
	ctx := context.Background()

	movement, err := svc.Apply(ctx, Adjustment{
		ProductID: p.ID,
		Delta:     5,
		Type:      MovementIn,
		Reason:    "restock",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), movement.Quantity)
	assert.Equal(t, int64(10), movement.PreviousStock)
	assert.Equal(t, int64(15), movement.NewStock)
	assert.Equal(t, entity.RelatedManual, movement.RelatedType)

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), got.Stock)
	assert.Len(t, movements.movements, 1)
}

func TestApply_InsufficientStockLeavesNoTrace(t *testing.T) {
	svc, products, movements := newTestInventory()
	p := seedProduct(t, products, 3)
	ctx := context.Background()

	_, err := svc.Apply(ctx, Adjustment{
		ProductID: p.ID,
		Delta:     -5,
		Type:      MovementSale,
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Stock)
	assert.Empty(t, movements.movements)
}

func TestApply_DirectionGuard(t *testing.T) {
	svc, products, _ := newTestInventory()
	p := seedProduct(t, products, 10)
	ctx := context.Background()

	tests := []struct {
		name  string
		delta int64
		typ   MovementType
	}{
		{"positive delta on sale", 4, MovementSale},
		{"negative delta on in", -4, MovementIn},
		{"zero delta", 0, MovementIn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Apply(ctx, Adjustment{ProductID: p.ID, Delta: tt.delta, Type: tt.typ})
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestSetStock_DerivesDelta(t *testing.T) {
	svc, products, movements := newTestInventory()
	p := seedProduct(t, products, 10)
	ctx := context.Background()

	movement, err := svc.SetStock(ctx, p.ID, 4, "yearly count", "")
	require.NoError(t, err)

	assert.Equal(t, MovementCorrection, movement.Type)
	assert.Equal(t, int64(6), movement.Quantity)
	assert.Equal(t, int64(10), movement.PreviousStock)
	assert.Equal(t, int64(4), movement.NewStock)

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Stock)
	assert.Len(t, movements.movements, 1)
}

func TestSetStock_NoopRejected(t *testing.T) {
	svc, products, movements := newTestInventory()
	p := seedProduct(t, products, 10)

	_, err := svc.SetStock(context.Background(), p.ID, 10, "count", "")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, movements.movements)
}

func TestApplyBatch_AllOrNothing(t *testing.T) {
	svc, products, movements := newTestInventory()
	ctx := context.Background()

	rich := seedProduct(t, products, 20)
	poor := NewProduct("Phone battery", "PRT-001", types.NewMoney(650))
	poor.Stock = 1
	require.NoError(t, products.Create(ctx, poor))

	_, err := svc.ApplyBatch(ctx, []BatchLine{
		{ProductID: rich.ID, Quantity: 5},
		{ProductID: poor.ID, Quantity: 2},
	}, MovementService, "service part used", nil, entity.RelatedService, "")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// Pre-validation failed, so the first line must not have been applied.
	gotRich, err := products.Get(ctx, rich.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), gotRich.Stock)
	assert.Empty(t, movements.movements)
}

func TestApplyBatch_RepeatedProductValidatedTogether(t *testing.T) {
	svc, products, movements := newTestInventory()
	ctx := context.Background()

	p := seedProduct(t, products, 5)

	// Each line fits the current stock on its own; together they do not.
	_, err := svc.ApplyBatch(ctx, []BatchLine{
		{ProductID: p.ID, Quantity: 3},
		{ProductID: p.ID, Quantity: 3},
	}, MovementService, "service part used", nil, entity.RelatedService, "")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, int64(6), appErr.Details["requested"])

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)
	assert.Empty(t, movements.movements)
}

func TestApplyBatch_ConsumesEveryLine(t *testing.T) {
	svc, products, movements := newTestInventory()
	ctx := context.Background()

	a := seedProduct(t, products, 20)
	b := NewProduct("USB-C cable", "ACC-002", types.NewMoney(120))
	b.Stock = 7
	require.NoError(t, products.Create(ctx, b))

	result, err := svc.ApplyBatch(ctx, []BatchLine{
		{ProductID: a.ID, Quantity: 5},
		{ProductID: b.ID, Quantity: 3},
	}, MovementService, "service part used", nil, entity.RelatedService, "")
	require.NoError(t, err)
	require.Len(t, result, 2)

	gotA, _ := products.Get(ctx, a.ID)
	gotB, _ := products.Get(ctx, b.ID)
	assert.Equal(t, int64(15), gotA.Stock)
	assert.Equal(t, int64(4), gotB.Stock)

	// Movement history must reconcile with the stock change, and the
	// whole batch goes through one bulk write.
	assert.Equal(t, int64(-5), movements.signedSum(a.ID))
	assert.Equal(t, 1, movements.batchCalls)
}

func TestApplyBatch_DirectionlessTypeRejected(t *testing.T) {
	svc, products, _ := newTestInventory()
	p := seedProduct(t, products, 10)

	_, err := svc.ApplyBatch(context.Background(), []BatchLine{
		{ProductID: p.ID, Quantity: 1},
	}, MovementCorrection, "", nil, entity.RelatedManual, "")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreateProduct_Validates(t *testing.T) {
	svc, _, _ := newTestInventory()

	p := NewProduct("", "X-1", types.NewMoney(10))
	err := svc.CreateProduct(context.Background(), p)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestMovementDirection(t *testing.T) {
	assert.Equal(t, int64(1), MovementIn.Direction())
	assert.Equal(t, int64(1), MovementReturn.Direction())
	assert.Equal(t, int64(-1), MovementOut.Direction())
	assert.Equal(t, int64(-1), MovementSale.Direction())
	assert.Equal(t, int64(-1), MovementService.Direction())
	assert.Equal(t, int64(0), MovementCorrection.Direction())
}
