// Package receivables tracks money owed to and by the business.
package receivables

import (
	"context"
	"time"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
)

// Kind distinguishes money owed to the business from money it owes.
type Kind string

const (
	KindReceivable Kind = "receivable"
	KindPayable    Kind = "payable"
)

// Status is the payment state.
type Status string

const (
	StatusUnpaid Status = "unpaid"
	StatusPaid   Status = "paid"
)

// Receivable is one open balance against a customer.
type Receivable struct {
	entity.Base

	CustomerID    id.ID  `db:"customer_id" json:"customerId"`
	CustomerName  string `db:"customer_name" json:"customerName"`
	CustomerPhone string `db:"customer_phone" json:"customerPhone"`

	Amount      types.Money `db:"amount" json:"amount"`
	Description string      `db:"description" json:"description"`

	Kind   Kind   `db:"kind" json:"type"`
	Status Status `db:"status" json:"status"`

	DueDate  *time.Time `db:"due_date" json:"dueDate"`
	PaidDate *time.Time `db:"paid_date" json:"paidDate"`
	Notes    string     `db:"notes" json:"notes"`
}

// Validate implements entity.Validatable.
func (r *Receivable) Validate(ctx context.Context) error {
	if id.IsNil(r.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if !r.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	if r.Kind != KindReceivable && r.Kind != KindPayable {
		return apperror.NewValidation("type must be receivable or payable").
			WithDetail("field", "type").
			WithDetail("value", string(r.Kind))
	}
	if r.Status != StatusUnpaid && r.Status != StatusPaid {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(r.Status))
	}
	return nil
}

// MarkPaid stamps the payment date.
func (r *Receivable) MarkPaid() {
	now := time.Now().UTC()
	r.Status = StatusPaid
	r.PaidDate = &now
	r.Touch()
}
