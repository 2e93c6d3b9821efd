package repairs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/core/tx"
	"dukkan/internal/domain/audit"
	"dukkan/internal/domain/customer"
	"dukkan/internal/domain/inventory"
	"dukkan/pkg/logger"
)

// Service coordinates service tickets with spare-part consumption and
// customer statistics.
type Service struct {
	repo      Repository
	inventory *inventory.Service
	customers customer.Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a repairs service.
func NewService(repo Repository, inv *inventory.Service, customers customer.Repository, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		inventory: inv,
		customers: customers,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Create stores a ticket and consumes its used parts as one unit of work.
// Part validation happens before any stock write, so a ticket with an
// unavailable part leaves every product untouched.
func (s *Service) Create(ctx context.Context, t *Ticket) error {
	if t.Status == "" {
		t.Status = StatusPending
	}
	if err := t.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(t.ID) {
		t.Base = entity.NewBase()
	}
	if t.ReceivedDate.IsZero() {
		t.ReceivedDate = time.Now().UTC()
	}
	t.Recalculate()

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if len(t.UsedParts) > 0 {
			relatedID := t.ID.String()
			lines := make([]inventory.BatchLine, 0, len(t.UsedParts))
			for i := range t.UsedParts {
				part := &t.UsedParts[i]
				product, err := s.inventory.GetProduct(ctx, part.ProductID)
				if err != nil {
					return err
				}
				part.ProductName = product.Name
				part.ProductCode = product.Code
				lines = append(lines, inventory.BatchLine{
					ProductID: part.ProductID,
					Quantity:  part.Quantity,
				})
			}
			_, err := s.inventory.ApplyBatch(ctx, lines, inventory.MovementService,
				"service part used", &relatedID, entity.RelatedService,
				fmt.Sprintf("service: %s %s - %s", t.Brand, t.Model, t.CustomerName))
			if err != nil {
				return err
			}
		}

		if err := s.repo.Create(ctx, t); err != nil {
			return err
		}

		if cust, err := s.customers.FindByPhone(ctx, t.CustomerPhone); err == nil {
			cust.RecordVisit(t.TotalCost, time.Now().UTC())
			if err := s.customers.Update(ctx, cust); err != nil {
				return err
			}
		} else if !apperror.IsNotFound(err) {
			return err
		}

		logger.Info(ctx, "service ticket created",
			"ticket_id", t.ID,
			"device", t.Brand+" "+t.Model,
			"parts", len(t.UsedParts),
			"total_cost", t.TotalCost,
		)
		return nil
	})
}

// Update modifies a ticket. When the total cost changes, the customer's
// statistics shift by the difference. Used parts are not editable after
// intake; part corrections go through stock adjustments.
func (s *Service) Update(ctx context.Context, t *Ticket) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}
	t.Recalculate()

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		previous, err := s.repo.Get(ctx, t.ID)
		if err != nil {
			return err
		}
		t.UsedParts = previous.UsedParts
		t.Touch()

		if err := s.repo.Update(ctx, t); err != nil {
			return err
		}

		if !previous.TotalCost.Equal(t.TotalCost) {
			if cust, err := s.customers.FindByPhone(ctx, t.CustomerPhone); err == nil {
				cust.AdjustSpent(t.TotalCost.Sub(previous.TotalCost))
				if err := s.customers.Update(ctx, cust); err != nil {
					return err
				}
			} else if !apperror.IsNotFound(err) {
				return err
			}
		}
		return nil
	})
}

// Get returns one ticket with its parts.
func (s *Service) Get(ctx context.Context, ticketID id.ID) (*Ticket, error) {
	return s.repo.Get(ctx, ticketID)
}

// List returns tickets, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Ticket, error) {
	return s.repo.List(ctx, limit)
}

// Delete removes a ticket, restoring its used parts through compensating
// movements and rolling the customer statistics back.
func (s *Service) Delete(ctx context.Context, ticketID id.ID) error {
	var removed *Ticket
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.repo.Get(ctx, ticketID)
		if err != nil {
			return err
		}

		relatedID := removed.ID.String()
		for _, part := range removed.UsedParts {
			_, err := s.inventory.Apply(ctx, inventory.Adjustment{
				ProductID:   part.ProductID,
				Delta:       part.Quantity,
				Type:        inventory.MovementIn,
				Reason:      "service deleted",
				RelatedID:   &relatedID,
				RelatedType: entity.RelatedService,
				Notes:       fmt.Sprintf("deleted service: %s %s - %s", removed.Brand, removed.Model, removed.CustomerName),
			})
			if err != nil && !apperror.IsNotFound(err) {
				return err
			}
		}

		if cust, err := s.customers.FindByPhone(ctx, removed.CustomerPhone); err == nil {
			cust.RevertVisit(removed.TotalCost)
			if err := s.customers.Update(ctx, cust); err != nil {
				return err
			}
		} else if !apperror.IsNotFound(err) {
			return err
		}

		return s.repo.Delete(ctx, ticketID)
	})
	if err != nil {
		return err
	}

	if changes, err := json.Marshal(removed); err == nil {
		auditEntry := audit.Entry{
			EntityType: "service",
			EntityID:   ticketID.String(),
			Action:     audit.ActionDelete,
			Changes:    changes,
		}
		if err := s.auditor.Record(ctx, auditEntry); err != nil {
			logger.Error(ctx, "audit record failed", "error", err)
		}
	}

	logger.Info(ctx, "service ticket deleted", "ticket_id", ticketID)
	return nil
}
