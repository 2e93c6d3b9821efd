// Package sales provides sale and return records, which drive stock
// movements, customer statistics, and cash-ledger entries.
package sales

import (
	"context"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
)

// SaleType distinguishes sales from returns.
type SaleType string

const (
	TypeSale   SaleType = "sale"
	TypeReturn SaleType = "return"
)

// PaymentMethod is how the customer paid. Only cash payments reach the till.
type PaymentMethod string

const (
	PayCash     PaymentMethod = "cash"
	PayCard     PaymentMethod = "card"
	PayTransfer PaymentMethod = "transfer"
)

// Sale is one sale or return line. Customer and product names are
// denormalized snapshots taken at write time.
type Sale struct {
	entity.Base

	CustomerID    id.ID  `db:"customer_id" json:"customerId"`
	CustomerName  string `db:"customer_name" json:"customerName"`
	CustomerPhone string `db:"customer_phone" json:"customerPhone"`

	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`
	ProductCode string `db:"product_code" json:"productCode"`

	Quantity   int64       `db:"quantity" json:"quantity"`
	UnitPrice  types.Money `db:"unit_price" json:"unitPrice"`
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`

	Type          SaleType      `db:"type" json:"type"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	Installments  int           `db:"installments" json:"installments"`
	Notes         string        `db:"notes" json:"notes"`
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if id.IsNil(s.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if id.IsNil(s.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if s.Quantity < 1 {
		return apperror.NewValidation("quantity must be at least 1").
			WithDetail("field", "quantity")
	}
	if s.UnitPrice.IsNegative() || s.TotalPrice.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "unitPrice")
	}
	if s.Type != TypeSale && s.Type != TypeReturn {
		return apperror.NewValidation("type must be sale or return").
			WithDetail("field", "type").
			WithDetail("value", string(s.Type))
	}
	switch s.PaymentMethod {
	case PayCash, PayCard, PayTransfer:
	default:
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "paymentMethod").
			WithDetail("value", string(s.PaymentMethod))
	}
	if s.Installments < 1 {
		return apperror.NewValidation("installments must be at least 1").
			WithDetail("field", "installments")
	}
	return nil
}
