// Package customer provides the customer catalog with visit statistics
// maintained by sales and service operations.
package customer

import (
	"context"
	"time"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/entity"
	"dukkan/internal/core/types"
)

// Customer is one person in the catalog. Phone is the unique business key.
type Customer struct {
	entity.Base

	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Phone     string `db:"phone" json:"phone"`
	Email     string `db:"email" json:"email"`
	Address   string `db:"address" json:"address"`
	Notes     string `db:"notes" json:"notes"`

	// Statistics maintained by sales/service creation and deletion.
	TotalSpent types.Money `db:"total_spent" json:"totalSpent"`
	VisitCount int64       `db:"visit_count" json:"visitCount"`
	LastVisit  *time.Time  `db:"last_visit" json:"lastVisit"`
}

// New creates a customer record.
func New(firstName, lastName, phone string) *Customer {
	return &Customer{
		Base:       entity.NewBase(),
		FirstName:  firstName,
		LastName:   lastName,
		Phone:      phone,
		TotalSpent: types.Zero(),
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if c.FirstName == "" {
		return apperror.NewValidation("first name is required").
			WithDetail("field", "firstName")
	}
	if c.LastName == "" {
		return apperror.NewValidation("last name is required").
			WithDetail("field", "lastName")
	}
	if c.Phone == "" {
		return apperror.NewValidation("phone is required").
			WithDetail("field", "phone")
	}
	return nil
}

// RecordVisit adds one purchase to the statistics.
func (c *Customer) RecordVisit(amount types.Money, at time.Time) {
	c.TotalSpent = c.TotalSpent.Add(amount)
	c.VisitCount++
	c.LastVisit = &at
	c.Touch()
}

// RevertVisit rolls one purchase back out of the statistics,
// clamping at zero.
func (c *Customer) RevertVisit(amount types.Money) {
	c.TotalSpent = c.TotalSpent.Sub(amount)
	if c.TotalSpent.IsNegative() {
		c.TotalSpent = types.Zero()
	}
	if c.VisitCount > 0 {
		c.VisitCount--
	}
	c.Touch()
}

// AdjustSpent shifts TotalSpent by a signed difference (service cost edits),
// clamping at zero.
func (c *Customer) AdjustSpent(diff types.Money) {
	c.TotalSpent = c.TotalSpent.Add(diff)
	if c.TotalSpent.IsNegative() {
		c.TotalSpent = types.Zero()
	}
	c.Touch()
}
