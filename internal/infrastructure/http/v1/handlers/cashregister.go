package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"dukkan/internal/core/apperror"
	"dukkan/internal/domain/reports"
	"dukkan/internal/domain/till"
	"dukkan/internal/infrastructure/http/v1/dto"
)

// CashRegisterHandler handles till session endpoints.
type CashRegisterHandler struct {
	*BaseHandler
	tills   *till.Service
	reports *reports.Service
}

// NewCashRegisterHandler creates a cash register handler.
func NewCashRegisterHandler(tills *till.Service, reportsSvc *reports.Service) *CashRegisterHandler {
	return &CashRegisterHandler{BaseHandler: NewBaseHandler(), tills: tills, reports: reportsSvc}
}

// List returns till sessions, filterable by status and opening date.
// GET /cash-register
func (h *CashRegisterHandler) List(c *gin.Context) {
	var query dto.ListTillsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter := till.SessionFilter{Limit: query.Limit}
	if query.Status != "" {
		status := till.SessionStatus(query.Status)
		filter.Status = &status
	}
	if query.StartDate != "" {
		start, err := time.Parse(time.RFC3339, query.StartDate)
		if err != nil {
			start, err = time.Parse("2006-01-02", query.StartDate)
		}
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid startDate").WithDetail("value", query.StartDate))
			return
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := time.Parse(time.RFC3339, query.EndDate)
		if err != nil {
			end, err = time.Parse("2006-01-02", query.EndDate)
		}
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid endDate").WithDetail("value", query.EndDate))
			return
		}
		filter.EndDate = &end
	}

	sessions, err := h.tills.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sessions)
}

// Open starts a new till session.
// POST /cash-register
func (h *CashRegisterHandler) Open(c *gin.Context) {
	var req dto.OpenTillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	openedBy := req.OpenedBy
	if openedBy == "" {
		openedBy = h.UserName(c)
	}

	session, err := h.tills.Open(c.Request.Context(), till.OpenInput{
		OpeningAmount: req.OpeningAmount,
		OpenedBy:      openedBy,
		Notes:         req.Notes,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, session)
}

// Get returns one session together with its ledger entries.
// GET /cash-register/:id
func (h *CashRegisterHandler) Get(c *gin.Context) {
	sessionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	session, entries, err := h.tills.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.TillDetailResponse{Register: session, Transactions: entries})
}

// Close freezes a session.
// PATCH /cash-register/:id
func (h *CashRegisterHandler) Close(c *gin.Context) {
	sessionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CloseTillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	closedBy := req.ClosedBy
	if closedBy == "" {
		closedBy = h.UserName(c)
	}

	session, err := h.tills.Close(c.Request.Context(), sessionID, till.CloseInput{
		ActualCash: req.ActualCash,
		ClosedBy:   closedBy,
		Notes:      req.Notes,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, session)
}

// Delete removes a session and its entries.
// DELETE /cash-register/:id
func (h *CashRegisterHandler) Delete(c *gin.Context) {
	sessionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.tills.Delete(c.Request.Context(), sessionID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "cash register deleted")
}

// Clear wipes every session and entry. Requires the admin password.
// POST /cash-register/clear
func (h *CashRegisterHandler) Clear(c *gin.Context) {
	var req dto.ClearRequest
	if !h.BindJSON(c, &req) {
		return
	}

	deleted, err := h.tills.Clear(c.Request.Context(), req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Success: true, DeletedCount: deleted})
}

// Report returns the till report for a period.
// GET /cash-register/reports
func (h *CashRegisterHandler) Report(c *gin.Context) {
	period := reports.Period(c.DefaultQuery("period", string(reports.PeriodToday)))

	var start, end time.Time
	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid startDate").WithDetail("value", raw))
			return
		}
		start = parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid endDate").WithDetail("value", raw))
			return
		}
		// Inclusive day bound.
		end = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	report, err := h.reports.TillReport(c.Request.Context(), period, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}
