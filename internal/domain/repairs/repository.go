package repairs

import (
	"context"

	"dukkan/internal/core/id"
)

// Repository defines persistence for service tickets and their parts.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error

	// Get returns the ticket with its used parts or NotFound.
	Get(ctx context.Context, ticketID id.ID) (*Ticket, error)

	List(ctx context.Context, limit int) ([]Ticket, error)
	Delete(ctx context.Context, ticketID id.ID) error
}
