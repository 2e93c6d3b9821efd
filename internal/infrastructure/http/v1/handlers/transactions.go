package handlers

import (
	"github.com/gin-gonic/gin"

	"dukkan/internal/domain/sales"
	"dukkan/internal/infrastructure/http/v1/dto"
)

// TransactionsHandler handles sale and return endpoints.
type TransactionsHandler struct {
	*BaseHandler
	sales *sales.Service
}

// NewTransactionsHandler creates a transactions handler.
func NewTransactionsHandler(salesSvc *sales.Service) *TransactionsHandler {
	return &TransactionsHandler{BaseHandler: NewBaseHandler(), sales: salesSvc}
}

// List returns sales, newest first.
// GET /transactions
func (h *TransactionsHandler) List(c *gin.Context) {
	result, err := h.sales.List(c.Request.Context(), h.ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Create records a sale or return. A cash sale also appends a ledger entry
// when a till is open; with no open till the sale still succeeds and the
// response carries a notice.
// POST /transactions
func (h *TransactionsHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.sales.Create(c.Request.Context(), sale)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.SaleResponse{Transaction: result.Sale, LedgerSkipped: result.LedgerSkipped}
	if result.LedgerSkipped {
		resp.Notice = "no open till: cash entry skipped"
	}
	h.Created(c, resp)
}

// Delete removes sales in bulk, reversing their stock movements and
// customer statistics.
// DELETE /transactions
func (h *TransactionsHandler) Delete(c *gin.Context) {
	var req dto.DeleteSalesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ids, err := req.ParsedIDs()
	if err != nil {
		h.Error(c, err)
		return
	}

	deleted, err := h.sales.Delete(c.Request.Context(), ids)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Success: true, DeletedCount: deleted})
}
