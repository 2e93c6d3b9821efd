package sales

import (
	"context"

	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
)

// Repository defines persistence for sale records.
type Repository interface {
	Create(ctx context.Context, sale *Sale) error

	// Get returns the sale or NotFound.
	Get(ctx context.Context, saleID id.ID) (*Sale, error)

	GetMany(ctx context.Context, ids []id.ID) ([]Sale, error)
	List(ctx context.Context, limit int) ([]Sale, error)
	Delete(ctx context.Context, ids []id.ID) (int64, error)

	// Totals returns sale count and revenue total (sales minus returns)
	// for dashboard reporting.
	Totals(ctx context.Context) (count int64, revenue types.Money, err error)
}
