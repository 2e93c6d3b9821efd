package sales

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
	"dukkan/internal/domain/till"
	"dukkan/pkg/logger"
)

// Service coordinates sale records with the stock adjuster, customer
// statistics, and the cash ledger.
type Service struct {
	repo      Repository
	inventory *inventory.Service
	customers customer.Repository
	till      *till.Service
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a sales service.
func NewService(repo Repository, inv *inventory.Service, customers customer.Repository, tillSvc *till.Service, txManager tx.Manager, auditor audit.Recorder) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		inventory: inv,
		customers: customers,
		till:      tillSvc,
		txManager: txManager,
		auditor:   auditor,
	}
}

// CreateResult reports a completed sale. LedgerSkipped is set when the sale
// was paid in cash but no till was open; the sale itself still succeeded.
type CreateResult struct {
	Sale          *Sale
	LedgerSkipped bool
}

// Create records a sale or return: stock movement, customer statistics, and
// for cash payments a best-effort ledger entry, all in one transaction.
func (s *Service) Create(ctx context.Context, sale *Sale) (*CreateResult, error) {
	if err := sale.Validate(ctx); err != nil {
		return nil, err
	}
	if id.IsNil(sale.ID) {
		sale.Base = entity.NewBase()
	}

	result := &CreateResult{Sale: sale}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		product, err := s.inventory.GetProduct(ctx, sale.ProductID)
		if err != nil {
			return err
		}
		sale.ProductName = product.Name
		sale.ProductCode = product.Code

		relatedID := sale.ID.String()
		adj := inventory.Adjustment{
			ProductID:   sale.ProductID,
			RelatedID:   &relatedID,
			RelatedType: entity.RelatedTransaction,
			Notes:       fmt.Sprintf("customer: %s", sale.CustomerName),
		}
		switch sale.Type {
		case TypeSale:
			adj.Delta = -sale.Quantity
			adj.Type = inventory.MovementSale
			adj.Reason = "sale"
		case TypeReturn:
			adj.Delta = sale.Quantity
			adj.Type = inventory.MovementReturn
			adj.Reason = "return"
		}
		if _, err := s.inventory.Apply(ctx, adj); err != nil {
			return err
		}

		if sale.Type == TypeSale {
			if cust, err := s.customers.Get(ctx, sale.CustomerID); err == nil {
				cust.RecordVisit(sale.TotalPrice, time.Now().UTC())
				if err := s.customers.Update(ctx, cust); err != nil {
					return err
				}
			} else if !apperror.IsNotFound(err) {
				return err
			}
		}

		if err := s.repo.Create(ctx, sale); err != nil {
			return err
		}

		if sale.PaymentMethod == PayCash {
			entryType := till.EntryIn
			category := till.CategorySale
			if sale.Type == TypeReturn {
				entryType = till.EntryOut
				category = till.CategoryReturn
			}
			_, skipped, err := s.till.AppendBestEffort(ctx, till.AppendInput{
				Type:        entryType,
				Amount:      sale.TotalPrice,
				Category:    category,
				Description: fmt.Sprintf("%s: %s x%d", sale.Type, sale.ProductName, sale.Quantity),
				RelatedID:   &relatedID,
				RelatedType: till.RelatedTransaction,
				PerformedBy: sale.CustomerName,
			})
			if err != nil {
				return err
			}
			result.LedgerSkipped = skipped
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale recorded",
		"sale_id", sale.ID,
		"type", sale.Type,
		"product", sale.ProductName,
		"quantity", sale.Quantity,
		"total", sale.TotalPrice,
		"ledger_skipped", result.LedgerSkipped,
	)
	return result, nil
}

// Get returns one sale.
func (s *Service) Get(ctx context.Context, saleID id.ID) (*Sale, error) {
	return s.repo.Get(ctx, saleID)
}

// List returns sales, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Sale, error) {
	return s.repo.List(ctx, limit)
}

// Delete removes sales by id. Each deleted sale gets a compensating stock
// movement and a customer statistics rollback; the original movements stay
// untouched. All-or-nothing across the batch.
func (s *Service) Delete(ctx context.Context, ids []id.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.NewValidation("no sale ids given")
	}

	var deleted int64
	var removed []Sale
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.repo.GetMany(ctx, ids)
		if err != nil {
			return err
		}

		for i := range removed {
			sale := &removed[i]
			relatedID := sale.ID.String()
			adj := inventory.Adjustment{
				ProductID:   sale.ProductID,
				RelatedID:   &relatedID,
				RelatedType: entity.RelatedTransaction,
				Reason:      "transaction deleted",
				Notes:       fmt.Sprintf("deleted sale: %s", sale.ID),
			}
			// Reverse the original delta: deleted sales restore stock,
			// deleted returns take it back out.
			switch sale.Type {
			case TypeSale:
				adj.Delta = sale.Quantity
				adj.Type = inventory.MovementIn
			case TypeReturn:
				adj.Delta = -sale.Quantity
				adj.Type = inventory.MovementOut
			}
			if _, err := s.inventory.Apply(ctx, adj); err != nil {
				// Product removed since the sale leaves nothing to restore;
				// the customer rollback below still applies.
				if !apperror.IsNotFound(err) {
					return err
				}
			}

			if sale.Type == TypeSale {
				if cust, err := s.customers.Get(ctx, sale.CustomerID); err == nil {
					cust.RevertVisit(sale.TotalPrice)
					if err := s.customers.Update(ctx, cust); err != nil {
						return err
					}
				} else if !apperror.IsNotFound(err) {
					return err
				}
			}
		}

		deleted, err = s.repo.Delete(ctx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}

	if changes, err := json.Marshal(removed); err == nil {
		auditEntry := audit.Entry{
			EntityType: "transaction",
			Action:     audit.ActionDelete,
			Changes:    changes,
		}
		if err := s.auditor.Record(ctx, auditEntry); err != nil {
			logger.Error(ctx, "audit record failed", "error", err)
		}
	}

	logger.Info(ctx, "sales deleted", "count", deleted)
	return deleted, nil
}
