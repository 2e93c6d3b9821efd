package handlers

import (
	"github.com/gin-gonic/gin"

	"dukkan/internal/domain/repairs"
	"dukkan/internal/infrastructure/http/v1/dto"
)

// ServicesHandler handles service ticket endpoints.
type ServicesHandler struct {
	*BaseHandler
	repairs *repairs.Service
}

// NewServicesHandler creates a services handler.
func NewServicesHandler(repairsSvc *repairs.Service) *ServicesHandler {
	return &ServicesHandler{BaseHandler: NewBaseHandler(), repairs: repairsSvc}
}

// List returns service tickets, newest first.
// GET /services
func (h *ServicesHandler) List(c *gin.Context) {
	tickets, err := h.repairs.List(c.Request.Context(), h.ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, tickets)
}

// Create opens a ticket, consuming its used parts all-or-nothing.
// POST /services
func (h *ServicesHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticket, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.repairs.Create(c.Request.Context(), ticket); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, ticket)
}

// Get returns one ticket with its parts.
// GET /services/:id
func (h *ServicesHandler) Get(c *gin.Context) {
	ticketID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.repairs.Get(c.Request.Context(), ticketID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, ticket)
}

// Update modifies a ticket; cost changes shift customer statistics.
// PUT /services/:id
func (h *ServicesHandler) Update(c *gin.Context) {
	ticketID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateServiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticket, err := h.repairs.Get(c.Request.Context(), ticketID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.Apply(ticket)

	if err := h.repairs.Update(c.Request.Context(), ticket); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, ticket)
}

// Delete removes a ticket, restoring its parts to stock.
// DELETE /services/:id
func (h *ServicesHandler) Delete(c *gin.Context) {
	ticketID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.repairs.Delete(c.Request.Context(), ticketID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "service deleted")
}
