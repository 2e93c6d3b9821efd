package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/domain/receivables"
)

// CreateReceivableRequest is the request body for a new receivable.
type CreateReceivableRequest struct {
	CustomerID    string              `json:"customerId" binding:"required"`
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	Amount        decimal.Decimal     `json:"amount" binding:"required"`
	Description   string              `json:"description"`
	Kind          receivables.Kind    `json:"type"`
	DueDate       *time.Time          `json:"dueDate"`
	Notes         string              `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateReceivableRequest) ToEntity() (*receivables.Receivable, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, apperror.NewValidation("invalid customerId").WithDetail("value", r.CustomerID)
	}

	rec := &receivables.Receivable{
		Base:          entity.NewBase(),
		CustomerID:    customerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Amount:        r.Amount,
		Description:   r.Description,
		Kind:          r.Kind,
		Status:        receivables.StatusUnpaid,
		DueDate:       r.DueDate,
		Notes:         r.Notes,
	}
	if rec.Kind == "" {
		rec.Kind = receivables.KindReceivable
	}
	return rec, nil
}

// UpdateReceivableRequest is the request body for updating a receivable.
type UpdateReceivableRequest struct {
	Amount      decimal.Decimal    `json:"amount" binding:"required"`
	Description string             `json:"description"`
	Kind        receivables.Kind   `json:"type" binding:"required"`
	Status      receivables.Status `json:"status" binding:"required"`
	DueDate     *time.Time         `json:"dueDate"`
	Notes       string             `json:"notes"`
}

// Apply copies the editable fields onto an existing receivable.
func (r *UpdateReceivableRequest) Apply(rec *receivables.Receivable) {
	rec.Amount = r.Amount
	rec.Description = r.Description
	rec.Kind = r.Kind
	rec.Status = r.Status
	rec.DueDate = r.DueDate
	rec.Notes = r.Notes
}
