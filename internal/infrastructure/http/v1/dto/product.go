package dto

import (
	"github.com/shopspring/decimal"

	"dukkan/internal/core/entity"
	"dukkan/internal/domain/inventory"
)

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Code        string          `json:"code"`
	Category    string          `json:"category"`
	Stock       int64           `json:"stock"`
	MinStock    int64           `json:"minStock"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *inventory.Product {
	p := inventory.NewProduct(r.Name, r.Code, r.Price)
	p.Category = r.Category
	p.Stock = r.Stock
	p.MinStock = r.MinStock
	p.CostPrice = r.CostPrice
	p.Description = r.Description
	if r.Unit != "" {
		p.Unit = r.Unit
	}
	return p
}

// UpdateProductRequest is the request body for updating a product.
// Stock is absent on purpose: stock changes go through movements.
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Code        string          `json:"code"`
	Category    string          `json:"category"`
	MinStock    int64           `json:"minStock"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
}

// Apply copies the editable fields onto an existing product.
func (r *UpdateProductRequest) Apply(p *inventory.Product) {
	p.Name = r.Name
	p.Code = r.Code
	p.Category = r.Category
	p.MinStock = r.MinStock
	p.Price = r.Price
	p.CostPrice = r.CostPrice
	p.Description = r.Description
	if r.Unit != "" {
		p.Unit = r.Unit
	}
}

// CreateMovementRequest is the request body for a manual stock adjustment.
// Either a signed Quantity delta, or SetStock for an absolute correction.
type CreateMovementRequest struct {
	ProductID string                 `json:"productId" binding:"required"`
	Type      inventory.MovementType `json:"type"`
	Quantity  int64                  `json:"quantity"`
	SetStock  *int64                 `json:"setStock"`
	Reason    string                 `json:"reason"`
	Notes     string                 `json:"notes"`
}

// RelatedType for manual movements.
const RelatedManual = entity.RelatedManual
