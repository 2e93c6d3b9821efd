package receivables

import (
	"context"

	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/pkg/logger"
)

// Service provides receivable bookkeeping.
type Service struct {
	repo Repository
}

// NewService creates a receivables service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new receivable.
func (s *Service) Create(ctx context.Context, r *Receivable) error {
	if r.Status == "" {
		r.Status = StatusUnpaid
	}
	if err := r.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(r.ID) {
		r.Base = entity.NewBase()
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return err
	}
	logger.Info(ctx, "receivable created", "receivable_id", r.ID, "kind", r.Kind, "amount", r.Amount)
	return nil
}

// Update modifies a receivable; marking it paid stamps the payment date.
func (s *Service) Update(ctx context.Context, r *Receivable) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}

	previous, err := s.repo.Get(ctx, r.ID)
	if err != nil {
		return err
	}
	if previous.Status == StatusUnpaid && r.Status == StatusPaid && r.PaidDate == nil {
		r.MarkPaid()
	} else {
		r.Touch()
	}
	return s.repo.Update(ctx, r)
}

// Get returns one receivable.
func (s *Service) Get(ctx context.Context, receivableID id.ID) (*Receivable, error) {
	return s.repo.Get(ctx, receivableID)
}

// List returns receivables, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Receivable, error) {
	return s.repo.List(ctx, limit)
}

// Delete removes a receivable.
func (s *Service) Delete(ctx context.Context, receivableID id.ID) error {
	if _, err := s.repo.Get(ctx, receivableID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, receivableID)
}
