// Package repairs provides service tickets: device intake, used spare
// parts, and the costs billed for the work.
package repairs

import (
	"context"
	"time"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/core/types"
)

// Status is the ticket workflow state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusSolved     Status = "solved"
	StatusUnsolved   Status = "unsolved"
)

// UsedPart is one spare part consumed by a ticket.
type UsedPart struct {
	ProductID   id.ID       `db:"product_id" json:"productId"`
	ProductName string      `db:"product_name" json:"productName"`
	ProductCode string      `db:"product_code" json:"productCode"`
	Quantity    int64       `db:"quantity" json:"quantity"`
	UnitPrice   types.Money `db:"unit_price" json:"unitPrice"`
}

// Ticket is one service job. TotalCost is always partsCost + laborCost,
// recomputed on save.
type Ticket struct {
	entity.Base

	CustomerID    *id.ID `db:"customer_id" json:"customerId"`
	CustomerName  string `db:"customer_name" json:"customerName"`
	CustomerPhone string `db:"customer_phone" json:"customerPhone"`

	Brand   string `db:"brand" json:"brand"`
	Model   string `db:"model" json:"model"`
	Problem string `db:"problem" json:"problem"`

	WorkDone string `db:"work_done" json:"workDone"`
	Solution string `db:"solution" json:"solution"`

	UsedParts []UsedPart `db:"-" json:"usedProducts"`

	PartsCost types.Money `db:"parts_cost" json:"partsCost"`
	LaborCost types.Money `db:"labor_cost" json:"laborCost"`
	TotalCost types.Money `db:"total_cost" json:"totalCost"`

	Status Status `db:"status" json:"status"`

	ReceivedDate time.Time  `db:"received_date" json:"receivedDate"`
	DeliveryDate *time.Time `db:"delivery_date" json:"deliveryDate"`
	Notes        string     `db:"notes" json:"notes"`
}

// Validate implements entity.Validatable.
func (t *Ticket) Validate(ctx context.Context) error {
	if t.CustomerName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}
	if t.CustomerPhone == "" {
		return apperror.NewValidation("customer phone is required").
			WithDetail("field", "customerPhone")
	}
	if t.Brand == "" || t.Model == "" {
		return apperror.NewValidation("brand and model are required").
			WithDetail("field", "brand")
	}
	if t.Problem == "" {
		return apperror.NewValidation("problem description is required").
			WithDetail("field", "problem")
	}
	switch t.Status {
	case StatusPending, StatusInProgress, StatusSolved, StatusUnsolved:
	default:
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(t.Status))
	}
	if t.PartsCost.IsNegative() || t.LaborCost.IsNegative() {
		return apperror.NewValidation("costs must not be negative").
			WithDetail("field", "partsCost")
	}
	for _, part := range t.UsedParts {
		if part.Quantity < 1 {
			return apperror.NewValidation("part quantity must be at least 1").
				WithDetail("productId", part.ProductID)
		}
	}
	return nil
}

// Recalculate keeps the totalCost identity.
func (t *Ticket) Recalculate() {
	t.TotalCost = t.PartsCost.Add(t.LaborCost)
}
