package customer

import (
	"context"

	"dukkan/internal/core/id"
)

// Repository defines persistence for the customer catalog.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error

	// Get returns the customer or NotFound.
	Get(ctx context.Context, customerID id.ID) (*Customer, error)

	// FindByPhone returns the customer with that phone or NotFound.
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	List(ctx context.Context, limit int) ([]Customer, error)
	Delete(ctx context.Context, customerID id.ID) error
}
