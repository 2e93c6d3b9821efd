package handlers

import (
	"github.com/gin-gonic/gin"

	"dukkan/internal/domain/receivables"
	"dukkan/internal/infrastructure/http/v1/dto"
)

// ReceivablesHandler handles receivable endpoints.
type ReceivablesHandler struct {
	*BaseHandler
	receivables *receivables.Service
}

// NewReceivablesHandler creates a receivables handler.
func NewReceivablesHandler(svc *receivables.Service) *ReceivablesHandler {
	return &ReceivablesHandler{BaseHandler: NewBaseHandler(), receivables: svc}
}

// List returns receivables, newest first.
// GET /receivables
func (h *ReceivablesHandler) List(c *gin.Context) {
	result, err := h.receivables.List(c.Request.Context(), h.ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Create adds a receivable.
// POST /receivables
func (h *ReceivablesHandler) Create(c *gin.Context) {
	var req dto.CreateReceivableRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.receivables.Create(c.Request.Context(), rec); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, rec)
}

// Update modifies a receivable; marking it paid stamps the payment date.
// PUT /receivables/:id
func (h *ReceivablesHandler) Update(c *gin.Context) {
	receivableID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReceivableRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := h.receivables.Get(c.Request.Context(), receivableID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.Apply(rec)

	if err := h.receivables.Update(c.Request.Context(), rec); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rec)
}

// Delete removes a receivable.
// DELETE /receivables/:id
func (h *ReceivablesHandler) Delete(c *gin.Context) {
	receivableID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.receivables.Delete(c.Request.Context(), receivableID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "receivable deleted")
}
