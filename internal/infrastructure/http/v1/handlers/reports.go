package handlers

import (
	"github.com/gin-gonic/gin"

	"dukkan/internal/domain/reports"
)

// ReportsHandler handles dashboard reporting.
type ReportsHandler struct {
	*BaseHandler
	reports *reports.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(reportsSvc *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: NewBaseHandler(), reports: reportsSvc}
}

// Dashboard returns the landing-page summary.
// GET /reports/dashboard
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	dash, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dash)
}
