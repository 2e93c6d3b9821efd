package handlers

import (
	"github.com/gin-gonic/gin"

	"dukkan/internal/domain/customer"
	"dukkan/internal/infrastructure/http/v1/dto"
)

// CustomersHandler handles customer catalog endpoints.
type CustomersHandler struct {
	*BaseHandler
	customers *customer.Service
}

// NewCustomersHandler creates a customers handler.
func NewCustomersHandler(customers *customer.Service) *CustomersHandler {
	return &CustomersHandler{BaseHandler: NewBaseHandler(), customers: customers}
}

// List returns customers.
// GET /customers
func (h *CustomersHandler) List(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context(), h.ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, customers)
}

// Create adds a customer. Phone must be unique.
// POST /customers
func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust := req.ToEntity()
	if err := h.customers.Create(c.Request.Context(), cust); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, cust)
}

// Get returns one customer.
// GET /customers/:id
func (h *CustomersHandler) Get(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	cust, err := h.customers.Get(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cust)
}

// Update modifies a customer's contact fields.
// PUT /customers/:id
func (h *CustomersHandler) Update(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust, err := h.customers.Get(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.Apply(cust)

	if err := h.customers.Update(c.Request.Context(), cust); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cust)
}

// Delete removes a customer.
// DELETE /customers/:id
func (h *CustomersHandler) Delete(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.customers.Delete(c.Request.Context(), customerID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "customer deleted")
}
