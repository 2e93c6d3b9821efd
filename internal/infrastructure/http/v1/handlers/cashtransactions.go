package handlers

import (
	"github.com/gin-gonic/gin"

	"dukkan/internal/core/apperror"
	"dukkan/internal/core/id"
	"dukkan/internal/domain/till"
	"dukkan/internal/infrastructure/http/v1/dto"
)

// CashTransactionsHandler handles ledger entry endpoints.
type CashTransactionsHandler struct {
	*BaseHandler
	tills *till.Service
}

// NewCashTransactionsHandler creates a cash transactions handler.
func NewCashTransactionsHandler(tills *till.Service) *CashTransactionsHandler {
	return &CashTransactionsHandler{BaseHandler: NewBaseHandler(), tills: tills}
}

// List returns ledger entries, optionally for one session.
// GET /cash-transactions
func (h *CashTransactionsHandler) List(c *gin.Context) {
	filter := till.EntryFilter{Limit: h.ParseIntQuery(c, "limit", 0)}
	if raw := c.Query("cashRegisterId"); raw != "" {
		sessionID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid cashRegisterId").WithDetail("value", raw))
			return
		}
		filter.SessionID = &sessionID
	}

	entries, err := h.tills.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}

// Create appends a ledger entry to the open till.
// POST /cash-transactions
func (h *CashTransactionsHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in := req.ToInput()
	if in.PerformedBy == "" {
		in.PerformedBy = h.UserName(c)
	}

	entry, err := h.tills.Append(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entry)
}
