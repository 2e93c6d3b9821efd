package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"dukkan/internal/core/apperror"
	"dukkan/internal/domain/audit"
	"dukkan/internal/domain/auth"
	"dukkan/internal/infrastructure/http/v1/dto"
	"dukkan/internal/infrastructure/storage/postgres"
	"dukkan/pkg/logger"
)

// AdminHandler handles destructive admin operations.
type AdminHandler struct {
	*BaseHandler
	auth    *auth.Service
	reset   *postgres.ResetStore
	auditor audit.Recorder
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(authSvc *auth.Service, reset *postgres.ResetStore, auditor audit.Recorder) *AdminHandler {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &AdminHandler{BaseHandler: NewBaseHandler(), auth: authSvc, reset: reset, auditor: auditor}
}

// Reset wipes all business data. Requires the admin password in the body on
// top of the bearer token.
// POST /admin/reset
func (h *AdminHandler) Reset(c *gin.Context) {
	var req dto.ClearRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if !h.auth.VerifyAdminPassword(req.Password) {
		h.Error(c, apperror.NewUnauthorized("wrong admin password"))
		return
	}

	ctx := c.Request.Context()
	if err := h.reset.Reset(ctx); err != nil {
		h.Error(c, err)
		return
	}

	changes, _ := json.Marshal(gin.H{"scope": "all business tables"})
	if err := h.auditor.Record(ctx, audit.Entry{
		EntityType: "database",
		EntityID:   "all",
		Action:     audit.ActionReset,
		Changes:    changes,
	}); err != nil {
		logger.Error(ctx, "audit record failed", "error", err)
	}

	logger.Warn(ctx, "database reset executed")
	h.Success(c, "database reset")
}
