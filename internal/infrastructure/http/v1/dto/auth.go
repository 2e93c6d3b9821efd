package dto

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse describes the authenticated user.
type SessionResponse struct {
	Name          string `json:"name"`
	Authenticated bool   `json:"authenticated"`
}
