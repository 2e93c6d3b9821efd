package customer

import (
	"context"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/id"
	"dukkan/pkg/logger"
)

// Service provides customer catalog operations.
type Service struct {
	repo Repository
}

// NewService creates a customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new customer. Phone must be unique.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	if existing, err := s.repo.FindByPhone(ctx, c.Phone); err == nil {
		return apperror.NewDuplicate("customer", "phone", c.Phone).
			WithDetail("customerId", existing.ID)
	} else if !apperror.IsNotFound(err) {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	logger.Info(ctx, "customer created", "customer_id", c.ID, "phone", c.Phone)
	return nil
}

// Update modifies a customer.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if existing, err := s.repo.FindByPhone(ctx, c.Phone); err == nil && existing.ID != c.ID {
		return apperror.NewDuplicate("customer", "phone", c.Phone)
	} else if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	c.Touch()
	return s.repo.Update(ctx, c)
}

// Get returns one customer.
func (s *Service) Get(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.Get(ctx, customerID)
}

// FindByPhone returns the customer with that phone.
func (s *Service) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	return s.repo.FindByPhone(ctx, phone)
}

// List returns customers, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Customer, error) {
	return s.repo.List(ctx, limit)
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, customerID id.ID) error {
	if _, err := s.repo.Get(ctx, customerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, customerID)
}
