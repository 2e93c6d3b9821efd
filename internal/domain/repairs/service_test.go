package repairs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
	"dukkan/internal/domain/customer"
	"dukkan/internal/domain/inventory"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeProductRepo struct {
	products map[id.ID]*inventory.Product
}

func (r *fakeProductRepo) Create(ctx context.Context, p *inventory.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *inventory.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Get(ctx context.Context, productID id.ID) (*inventory.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, productID id.ID) (*inventory.Product, error) {
	return r.Get(ctx, productID)
}

func (r *fakeProductRepo) List(ctx context.Context, filter inventory.ProductFilter) ([]inventory.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, productID id.ID) error {
	delete(r.products, productID)
	return nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type fakeMovementRepo struct {
	movements  []inventory.Movement
	batchCalls int
}

func (r *fakeMovementRepo) Create(ctx context.Context, m *inventory.Movement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeMovementRepo) CreateBatch(ctx context.Context, ms []inventory.Movement) error {
	r.batchCalls++
	r.movements = append(r.movements, ms...)
	return nil
}

func (r *fakeMovementRepo) List(ctx context.Context, filter inventory.MovementFilter) ([]inventory.Movement, error) {
	return r.movements, nil
}

type fakeCustomerRepo struct {
	customers map[id.ID]*customer.Customer
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Get(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	c, ok := r.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("customer", phone)
}

func (r *fakeCustomerRepo) List(ctx context.Context, limit int) ([]customer.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, customerID id.ID) error {
	delete(r.customers, customerID)
	return nil
}

type fakeTicketRepo struct {
	tickets map[id.ID]*Ticket
}

func (r *fakeTicketRepo) Create(ctx context.Context, t *Ticket) error {
	cp := *t
	r.tickets[t.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, t *Ticket) error {
	if _, ok := r.tickets[t.ID]; !ok {
		return apperror.NewNotFound("service", t.ID)
	}
	cp := *t
	r.tickets[t.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) Get(ctx context.Context, ticketID id.ID) (*Ticket, error) {
	t, ok := r.tickets[ticketID]
	if !ok {
		return nil, apperror.NewNotFound("service", ticketID)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTicketRepo) List(ctx context.Context, limit int) ([]Ticket, error) {
	var out []Ticket
	for _, t := range r.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTicketRepo) Delete(ctx context.Context, ticketID id.ID) error {
	delete(r.tickets, ticketID)
	return nil
}

type fixture struct {
	svc       *Service
	tickets   *fakeTicketRepo
	products  *fakeProductRepo
	movements *fakeMovementRepo
	customers *fakeCustomerRepo
}

func newFixture() *fixture {
	txm := fakeTxManager{}
	products := &fakeProductRepo{products: make(map[id.ID]*inventory.Product)}
	movements := &fakeMovementRepo{}
	customers := &fakeCustomerRepo{customers: make(map[id.ID]*customer.Customer)}
	tickets := &fakeTicketRepo{tickets: make(map[id.ID]*Ticket)}

	inv := inventory.NewService(products, movements, txm, nil)
	return &fixture{
		svc:       NewService(tickets, inv, customers, txm, nil),
		tickets:   tickets,
		products:  products,
		movements: movements,
		customers: customers,
	}
}

func (f *fixture) seedPart(t *testing.T, stock int64) *inventory.Product {
	t.Helper()
	p := inventory.NewProduct("Phone battery A54", "PRT-001", types.NewMoney(650))
	p.Stock = stock
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) seedCustomer(t *testing.T, phone string) *customer.Customer {
	t.Helper()
	c := customer.New("Mehmet", "Demir", phone)
	require.NoError(t, f.customers.Create(context.Background(), c))
	return c
}

func newTicket(phone string) *Ticket {
	return &Ticket{
		CustomerName:  "Mehmet Demir",
		CustomerPhone: phone,
		Brand:         "Samsung",
		Model:         "A54",
		Problem:       "does not charge",
		LaborCost:     types.NewMoney(300),
	}
}

func TestCreate_ConsumesPartsAndUpdatesCustomer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	part := f.seedPart(t, 5)
	cust := f.seedCustomer(t, "+90 541 333 44 55")

	ticket := newTicket(cust.Phone)
	ticket.PartsCost = types.NewMoney(650)
	ticket.UsedParts = []UsedPart{{ProductID: part.ID, Quantity: 1, UnitPrice: part.Price}}

	require.NoError(t, f.svc.Create(ctx, ticket))

	assert.Equal(t, StatusPending, ticket.Status)
	assert.True(t, ticket.TotalCost.Equal(types.NewMoney(950)))
	// Part names snapshotted from the catalog at intake.
	assert.Equal(t, "Phone battery A54", ticket.UsedParts[0].ProductName)

	got, err := f.products.Get(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Stock)
	// Part consumption goes through the bulk movement write.
	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, inventory.MovementService, f.movements.movements[0].Type)
	assert.Equal(t, 1, f.movements.batchCalls)

	updated, err := f.customers.Get(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.VisitCount)
	assert.True(t, updated.TotalSpent.Equal(types.NewMoney(950)))
}

func TestCreate_UnavailablePartFailsWholeTicket(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	available := f.seedPart(t, 5)
	scarce := inventory.NewProduct("Charging port", "PRT-002", types.NewMoney(200))
	scarce.Stock = 0
	require.NoError(t, f.products.Create(ctx, scarce))

	ticket := newTicket("+90 541 333 44 55")
	ticket.UsedParts = []UsedPart{
		{ProductID: available.ID, Quantity: 1},
		{ProductID: scarce.ID, Quantity: 1},
	}

	err := f.svc.Create(ctx, ticket)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// Nothing consumed, nothing stored.
	got, err := f.products.Get(ctx, available.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)
	assert.Empty(t, f.movements.movements)
	assert.Empty(t, f.tickets.tickets)
}

func TestCreate_UnknownCustomerTolerated(t *testing.T) {
	f := newFixture()

	ticket := newTicket("+90 500 000 00 00")
	require.NoError(t, f.svc.Create(context.Background(), ticket))
	assert.Len(t, f.tickets.tickets, 1)
}

func TestUpdate_PartsImmutableCostShiftApplied(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	part := f.seedPart(t, 5)
	cust := f.seedCustomer(t, "+90 541 333 44 55")

	ticket := newTicket(cust.Phone)
	ticket.PartsCost = types.NewMoney(650)
	ticket.UsedParts = []UsedPart{{ProductID: part.ID, Quantity: 1, UnitPrice: part.Price}}
	require.NoError(t, f.svc.Create(ctx, ticket))

	edited := *ticket
	edited.LaborCost = types.NewMoney(500)
	edited.UsedParts = []UsedPart{{ProductID: part.ID, Quantity: 99}}
	edited.Status = StatusSolved

	require.NoError(t, f.svc.Update(ctx, &edited))

	// Parts restored from the stored ticket, not the request.
	stored, err := f.tickets.Get(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, stored.UsedParts, 1)
	assert.Equal(t, int64(1), stored.UsedParts[0].Quantity)
	assert.Equal(t, StatusSolved, stored.Status)
	assert.True(t, stored.TotalCost.Equal(types.NewMoney(1150)))

	// Customer stats shifted by the cost difference only.
	updated, err := f.customers.Get(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.VisitCount)
	assert.True(t, updated.TotalSpent.Equal(types.NewMoney(1150)))
}

func TestDelete_RestoresPartsAndCustomerStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	part := f.seedPart(t, 5)
	cust := f.seedCustomer(t, "+90 541 333 44 55")

	ticket := newTicket(cust.Phone)
	ticket.PartsCost = types.NewMoney(650)
	ticket.UsedParts = []UsedPart{{ProductID: part.ID, Quantity: 2, UnitPrice: part.Price}}
	require.NoError(t, f.svc.Create(ctx, ticket))

	require.NoError(t, f.svc.Delete(ctx, ticket.ID))

	assert.Empty(t, f.tickets.tickets)

	// Compensating movement put the parts back.
	got, err := f.products.Get(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)
	require.Len(t, f.movements.movements, 2)
	assert.Equal(t, inventory.MovementIn, f.movements.movements[1].Type)

	updated, err := f.customers.Get(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.VisitCount)
	assert.True(t, updated.TotalSpent.IsZero())
}

func TestDelete_ToleratesRemovedPart(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	part := f.seedPart(t, 5)
	ticket := newTicket("+90 541 333 44 55")
	ticket.UsedParts = []UsedPart{{ProductID: part.ID, Quantity: 1}}
	require.NoError(t, f.svc.Create(ctx, ticket))

	require.NoError(t, f.products.Delete(ctx, part.ID))

	require.NoError(t, f.svc.Delete(ctx, ticket.ID))
	assert.Empty(t, f.tickets.tickets)
}

func TestValidate_RequiredFields(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*Ticket)
	}{
		{"no customer name", func(tk *Ticket) { tk.CustomerName = "" }},
		{"no phone", func(tk *Ticket) { tk.CustomerPhone = "" }},
		{"no brand", func(tk *Ticket) { tk.Brand = "" }},
		{"no problem", func(tk *Ticket) { tk.Problem = "" }},
		{"negative labor cost", func(tk *Ticket) { tk.LaborCost = types.NewMoney(-1) }},
		{"zero part quantity", func(tk *Ticket) {
			tk.UsedParts = []UsedPart{{ProductID: id.New(), Quantity: 0}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := newTicket("+90 541 333 44 55")
			tt.mutate(ticket)
			err := f.svc.Create(context.Background(), ticket)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}
