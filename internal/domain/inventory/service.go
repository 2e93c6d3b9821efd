package inventory

import (
	"context"
	"fmt"
	"time"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/core/tx"
	"dukkan/pkg/logger"
	"dukkan/pkg/numerator"
)

// Service provides product CRUD and the stock adjuster.
type Service struct {
	products  ProductRepository
	movements MovementRepository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates an inventory service. numerator may be nil; fallback
// codes are then left blank.
func NewService(products ProductRepository, movements MovementRepository, txManager tx.Manager, num *numerator.Service) *Service {
	return &Service{
		products:  products,
		movements: movements,
		txManager: txManager,
		numerator: num,
	}
}

// --- Product catalog ---

// CreateProduct stores a new product, generating a fallback code when blank.
func (s *Service) CreateProduct(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.ensureCode(ctx, p); err != nil {
		return err
	}
	if id.IsNil(p.ID) {
		p.Base = entity.NewBase()
	}

	if err := s.products.Create(ctx, p); err != nil {
		return err
	}
	logger.Info(ctx, "product created", "product_id", p.ID, "code", p.Code, "stock", p.Stock)
	return nil
}

// UpdateProduct updates catalog fields. Stock is not writable here; stock
// changes go through the adjuster so the movement history stays complete.
func (s *Service) UpdateProduct(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.ensureCode(ctx, p); err != nil {
		return err
	}
	p.Touch()
	return s.products.Update(ctx, p)
}

// GetProduct returns one product.
func (s *Service) GetProduct(ctx context.Context, productID id.ID) (*Product, error) {
	return s.products.Get(ctx, productID)
}

// ListProducts returns products matching the filter, newest first.
func (s *Service) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	return s.products.List(ctx, filter)
}

// DeleteProduct removes a product from the catalog. Its movement history
// is kept.
func (s *Service) DeleteProduct(ctx context.Context, productID id.ID) error {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return err
	}
	return s.products.Delete(ctx, productID)
}

func (s *Service) ensureCode(ctx context.Context, p *Product) error {
	if p.Code != "" || s.numerator == nil {
		return nil
	}
	code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("URN"), nil, time.Now())
	if err != nil {
		return fmt.Errorf("generate product code: %w", err)
	}
	p.Code = code
	return nil
}

// --- Stock adjuster ---

// Adjustment describes one stock change request.
type Adjustment struct {
	ProductID id.ID

	// Delta is the signed quantity change; negative for out-flows.
	Delta int64

	Type        MovementType
	Reason      string
	RelatedID   *string
	RelatedType entity.RelatedType
	Notes       string
}

// Apply applies a signed stock delta and writes the matching movement in
// one transaction. Decrements that would drive stock below zero fail with
// InsufficientStock before any write.
func (s *Service) Apply(ctx context.Context, adj Adjustment) (*Movement, error) {
	var movement *Movement
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		movement, err = s.applyLocked(ctx, adj)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock adjusted",
		"product_id", adj.ProductID,
		"delta", adj.Delta,
		"type", adj.Type,
		"new_stock", movement.NewStock,
	)
	return movement, nil
}

// applyLocked performs the read-validate-write sequence against a locked
// product row and persists the movement. Callers must already be inside a
// transaction.
func (s *Service) applyLocked(ctx context.Context, adj Adjustment) (*Movement, error) {
	movement, err := s.adjustLocked(ctx, adj)
	if err != nil {
		return nil, err
	}
	if err := s.movements.Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// adjustLocked updates the locked product row and builds the matching
// movement without persisting it. Batch callers collect the movements and
// write them in one COPY at the end.
func (s *Service) adjustLocked(ctx context.Context, adj Adjustment) (*Movement, error) {
	if adj.Delta == 0 {
		return nil, apperror.NewValidation("quantity change must not be zero").
			WithDetail("field", "quantity")
	}
	if dir := adj.Type.Direction(); dir != 0 && dir*adj.Delta < 0 {
		return nil, apperror.NewValidation("quantity sign does not match movement type").
			WithDetail("type", string(adj.Type)).
			WithDetail("delta", adj.Delta)
	}

	product, err := s.products.GetForUpdate(ctx, adj.ProductID)
	if err != nil {
		return nil, err
	}

	previous := product.Stock
	next := previous + adj.Delta
	if next < 0 {
		return nil, apperror.NewInsufficientStock(product.Name, product.Code, -adj.Delta, previous)
	}

	product.Stock = next
	product.Touch()
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	quantity := adj.Delta
	if quantity < 0 {
		quantity = -quantity
	}
	relatedType := adj.RelatedType
	if relatedType == "" {
		relatedType = entity.RelatedManual
	}
	movement := &Movement{
		Base:          entity.NewBase(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductCode:   product.Code,
		Type:          adj.Type,
		Quantity:      quantity,
		PreviousStock: previous,
		NewStock:      next,
		Reason:        adj.Reason,
		RelatedID:     adj.RelatedID,
		RelatedType:   relatedType,
		Notes:         adj.Notes,
	}
	return movement, nil
}

// SetStock sets the absolute on-hand quantity by computing the equivalent
// signed delta and following the Apply path (movement type correction).
func (s *Service) SetStock(ctx context.Context, productID id.ID, absolute int64, reason, notes string) (*Movement, error) {
	if absolute < 0 {
		return nil, apperror.NewValidation("stock must not be negative").
			WithDetail("field", "stock")
	}

	var movement *Movement
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		product, err := s.products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		delta := absolute - product.Stock
		if delta == 0 {
			return apperror.NewValidation("stock is already at the requested quantity").
				WithDetail("stock", absolute)
		}
		movement, err = s.applyLocked(ctx, Adjustment{
			ProductID: productID,
			Delta:     delta,
			Type:      MovementCorrection,
			Reason:    reason,
			Notes:     notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// BatchLine is one product consumption in a multi-line operation.
type BatchLine struct {
	ProductID id.ID
	Quantity  int64
}

// ApplyBatch consumes several products as one unit of work. Quantities are
// aggregated per product and the whole batch is validated against current
// stock before any write, so a multi-line operation either fully succeeds
// or fully fails. Movements are persisted in one COPY batch.
func (s *Service) ApplyBatch(ctx context.Context, lines []BatchLine, mvType MovementType, reason string, relatedID *string, relatedType entity.RelatedType, notes string) ([]Movement, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	dir := mvType.Direction()
	if dir == 0 {
		return nil, apperror.NewValidation("batch movement type must carry a direction").
			WithDetail("type", string(mvType))
	}

	var result []Movement
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Validation pass: aggregate per product so repeated lines check
		// against their combined demand, then lock each product and check
		// the full batch before touching stock.
		need := make(map[id.ID]int64, len(lines))
		for _, line := range lines {
			if line.Quantity <= 0 {
				return apperror.NewValidation("quantity must be positive").
					WithDetail("productId", line.ProductID)
			}
			need[line.ProductID] += line.Quantity
		}
		checked := make(map[id.ID]bool, len(need))
		for _, line := range lines {
			if checked[line.ProductID] {
				continue
			}
			checked[line.ProductID] = true
			product, err := s.products.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if dir < 0 && product.Stock < need[line.ProductID] {
				return apperror.NewInsufficientStock(product.Name, product.Code, need[line.ProductID], product.Stock)
			}
		}

		// Apply pass: stock writes per line, movement history in one
		// COPY batch.
		result = make([]Movement, 0, len(lines))
		for _, line := range lines {
			movement, err := s.adjustLocked(ctx, Adjustment{
				ProductID:   line.ProductID,
				Delta:       dir * line.Quantity,
				Type:        mvType,
				Reason:      reason,
				RelatedID:   relatedID,
				RelatedType: relatedType,
				Notes:       notes,
			})
			if err != nil {
				return err
			}
			result = append(result, *movement)
		}
		return s.movements.CreateBatch(ctx, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListMovements returns movement history, newest first.
func (s *Service) ListMovements(ctx context.Context, filter MovementFilter) ([]Movement, error) {
	return s.movements.List(ctx, filter)
}
