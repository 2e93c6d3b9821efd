package receivables

import (
	"context"

	"dukkan/internal/core/id"
)

// Repository defines persistence for receivables.
type Repository interface {
	Create(ctx context.Context, r *Receivable) error
	Update(ctx context.Context, r *Receivable) error

	// Get returns the receivable or NotFound.
	Get(ctx context.Context, receivableID id.ID) (*Receivable, error)

	List(ctx context.Context, limit int) ([]Receivable, error)
	Delete(ctx context.Context, receivableID id.ID) error
}
