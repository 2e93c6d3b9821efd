package handlers

import (
	"github.com/gin-gonic/gin"

	"dukkan/internal/domain/auth"
	"dukkan/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles login and session checks.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Login authenticates the admin and returns a token.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Session reports the authenticated user. Reaching this handler at all means
// the token passed the auth middleware.
// GET /auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	h.OK(c, dto.SessionResponse{
		Name:          h.UserName(c),
		Authenticated: true,
	})
}
