package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
	"dukkan/internal/domain/repairs"
)

// UsedPartRequest is one consumed part line.
type UsedPartRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateServiceRequest is the request body for a new service ticket.
type CreateServiceRequest struct {
	CustomerID    string            `json:"customerId"`
	CustomerName  string            `json:"customerName" binding:"required"`
	CustomerPhone string            `json:"customerPhone" binding:"required"`
	Brand         string            `json:"brand"`
	Model         string            `json:"model"`
	Problem       string            `json:"problem" binding:"required"`
	UsedParts     []UsedPartRequest `json:"usedProducts"`
	PartsCost     decimal.Decimal   `json:"partsCost"`
	LaborCost     decimal.Decimal   `json:"laborCost"`
	Status        repairs.Status    `json:"status"`
	Notes         string            `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateServiceRequest) ToEntity() (*repairs.Ticket, error) {
	t := &repairs.Ticket{
		Base:          entity.NewBase(),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Brand:         r.Brand,
		Model:         r.Model,
		Problem:       r.Problem,
		PartsCost:     r.PartsCost,
		LaborCost:     r.LaborCost,
		Status:        r.Status,
		Notes:         r.Notes,
	}
	if r.CustomerID != "" {
		customerID, err := id.Parse(r.CustomerID)
		if err != nil {
			return nil, apperror.NewValidation("invalid customerId").WithDetail("value", r.CustomerID)
		}
		t.CustomerID = &customerID
	}
	for _, part := range r.UsedParts {
		productID, err := id.Parse(part.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid productId").WithDetail("value", part.ProductID)
		}
		t.UsedParts = append(t.UsedParts, repairs.UsedPart{
			ProductID: productID,
			Quantity:  part.Quantity,
			UnitPrice: part.UnitPrice,
		})
	}
	return t, nil
}

// UpdateServiceRequest is the request body for updating a ticket.
// Used parts are not editable after intake.
type UpdateServiceRequest struct {
	CustomerName  string          `json:"customerName" binding:"required"`
	CustomerPhone string          `json:"customerPhone" binding:"required"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Problem       string          `json:"problem" binding:"required"`
	WorkDone      string          `json:"workDone"`
	Solution      string          `json:"solution"`
	PartsCost     decimal.Decimal `json:"partsCost"`
	LaborCost     decimal.Decimal `json:"laborCost"`
	Status        repairs.Status  `json:"status"`
	DeliveryDate  *time.Time      `json:"deliveryDate"`
	Notes         string          `json:"notes"`
}

// Apply copies the editable fields onto an existing ticket.
func (r *UpdateServiceRequest) Apply(t *repairs.Ticket) {
	t.CustomerName = r.CustomerName
	t.CustomerPhone = r.CustomerPhone
	t.Brand = r.Brand
	t.Model = r.Model
	t.Problem = r.Problem
	t.WorkDone = r.WorkDone
	t.Solution = r.Solution
	t.PartsCost = r.PartsCost
	t.LaborCost = r.LaborCost
	if r.Status != "" {
		t.Status = r.Status
	}
	t.DeliveryDate = r.DeliveryDate
	t.Notes = r.Notes
}
