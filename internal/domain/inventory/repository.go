package inventory

import (
	"context"
	"time"

	"dukkan/internal/core/id"
)

// ProductRepository defines persistence for the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error

	// Get returns the product or NotFound.
	Get(ctx context.Context, productID id.ID) (*Product, error)

	// GetForUpdate returns the product with a row lock, so concurrent
	// stock changes serialize instead of losing updates.
	GetForUpdate(ctx context.Context, productID id.ID) (*Product, error)

	List(ctx context.Context, filter ProductFilter) ([]Product, error)
	Delete(ctx context.Context, productID id.ID) error
	Count(ctx context.Context) (int64, error)
}

// MovementRepository defines persistence for the stock movement history.
// Movements are append-only: no update or delete operations exist.
type MovementRepository interface {
	Create(ctx context.Context, m *Movement) error

	// CreateBatch persists the movements of one multi-line operation
	// in a single COPY.
	CreateBatch(ctx context.Context, movements []Movement) error

	List(ctx context.Context, filter MovementFilter) ([]Movement, error)
}

// ProductFilter narrows product queries.
type ProductFilter struct {
	Category *string
	LowStock bool
	Limit    int
}

// MovementFilter narrows movement queries.
type MovementFilter struct {
	ProductID *id.ID
	Type      *MovementType
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
}
