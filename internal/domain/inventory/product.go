// Package inventory provides the product catalog, the append-only stock
// movement history, and the adjuster that keeps the two reconciled.
package inventory

import (
	"context"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/types"
)

// Product is a stocked item. Stock is the authoritative on-hand quantity;
// the movement history is the replayable audit trail. Every code path that
// changes Stock writes exactly one matching movement.
type Product struct {
	entity.Base

	Name string `db:"name" json:"name"`

	// Code is a display label; a fallback code is generated when blank.
	// Uniqueness is not enforced at the storage layer.
	Code string `db:"code" json:"code"`

	Category string `db:"category" json:"category"`

	// Stock is the current quantity on hand, never negative.
	Stock int64 `db:"stock" json:"stock"`

	// MinStock is the reorder threshold, reporting only.
	MinStock int64 `db:"min_stock" json:"minStock"`

	Price     types.Money `db:"price" json:"price"`
	CostPrice types.Money `db:"cost_price" json:"costPrice"`

	Description string `db:"description" json:"description"`
	Unit        string `db:"unit" json:"unit"`
}

// NewProduct creates a product with defaults matching the intake form.
func NewProduct(name, code string, price types.Money) *Product {
	return &Product{
		Base:      entity.NewBase(),
		Name:      name,
		Code:      code,
		Price:     price,
		CostPrice: types.Zero(),
		Unit:      "piece",
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.Stock < 0 {
		return apperror.NewValidation("stock must not be negative").
			WithDetail("field", "stock")
	}
	if p.MinStock < 0 {
		return apperror.NewValidation("minStock must not be negative").
			WithDetail("field", "minStock")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}
	if p.CostPrice.IsNegative() {
		return apperror.NewValidation("costPrice must not be negative").
			WithDetail("field", "costPrice")
	}
	return nil
}

// IsLowStock reports whether the product is at or under its reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.MinStock > 0 && p.Stock <= p.MinStock
}
