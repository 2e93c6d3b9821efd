package dto

import (
	"github.com/shopspring/decimal"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/domain/sales"
)

// CreateSaleRequest is the request body for recording a sale or return.
type CreateSaleRequest struct {
	CustomerID    string              `json:"customerId"`
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	ProductID     string              `json:"productId" binding:"required"`
	Quantity      int64               `json:"quantity" binding:"required"`
	UnitPrice     decimal.Decimal     `json:"unitPrice"`
	Type          sales.SaleType      `json:"type"`
	PaymentMethod sales.PaymentMethod `json:"paymentMethod"`
	Installments  int                 `json:"installments"`
	Notes         string              `json:"notes"`
}

// ToEntity converts DTO to domain entity. Product snapshot fields and the
// total are filled in by the sales service.
func (r *CreateSaleRequest) ToEntity() (*sales.Sale, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid productId").WithDetail("value", r.ProductID)
	}

	sale := &sales.Sale{
		Base:          entity.NewBase(),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ProductID:     productID,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		Type:          r.Type,
		PaymentMethod: r.PaymentMethod,
		Installments:  r.Installments,
		Notes:         r.Notes,
	}
	if r.CustomerID != "" {
		customerID, err := id.Parse(r.CustomerID)
		if err != nil {
			return nil, apperror.NewValidation("invalid customerId").WithDetail("value", r.CustomerID)
		}
		sale.CustomerID = customerID
	}
	if sale.Type == "" {
		sale.Type = sales.TypeSale
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = sales.PayCash
	}
	return sale, nil
}

// DeleteSalesRequest is the request body for bulk sale deletion.
type DeleteSalesRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ParsedIDs converts the raw id strings.
func (r *DeleteSalesRequest) ParsedIDs() ([]id.ID, error) {
	ids := make([]id.ID, 0, len(r.IDs))
	for _, raw := range r.IDs {
		parsed, err := id.Parse(raw)
		if err != nil {
			return nil, apperror.NewValidation("invalid id").WithDetail("value", raw)
		}
		ids = append(ids, parsed)
	}
	return ids, nil
}

// SaleResponse wraps a created sale with the ledger notice.
type SaleResponse struct {
	Transaction   *sales.Sale `json:"transaction"`
	LedgerSkipped bool        `json:"ledgerSkipped,omitempty"`
	Notice        string      `json:"notice,omitempty"`
}
