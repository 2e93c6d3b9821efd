package dto

import (
	"dukkan/internal/core/entity"
	"dukkan/internal/domain/customer"
)

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	return &customer.Customer{
		Base:      entity.NewBase(),
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		Address:   r.Address,
		Notes:     r.Notes,
	}
}

// UpdateCustomerRequest is the request body for updating a customer.
// Statistics fields are managed by sales and services, not editable here.
type UpdateCustomerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

// Apply copies the editable fields onto an existing customer.
func (r *UpdateCustomerRequest) Apply(c *customer.Customer) {
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.Phone = r.Phone
	c.Email = r.Email
	c.Address = r.Address
	c.Notes = r.Notes
}
