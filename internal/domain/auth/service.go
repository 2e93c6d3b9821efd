package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dukkan/internal/core/apperror"
	"dukkan/pkg/logger"
)

// ServiceConfig holds auth service configuration. The shop runs with a
// single admin account defined entirely in config.
type ServiceConfig struct {
	AdminUser     string
	AdminPassHash string
	AdminPassword string
}

// Service authenticates the admin account and issues tokens.
type Service struct {
	config     ServiceConfig
	jwtService *JWTService
}

// NewService creates a new auth service.
func NewService(config ServiceConfig, jwtService *JWTService) *Service {
	if config.AdminUser == "" {
		config.AdminUser = "admin"
	}
	return &Service{config: config, jwtService: jwtService}
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login verifies the admin credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUser)) != 1 {
		// Still run the hash compare so both failure paths cost the same.
		_ = bcrypt.CompareHashAndPassword([]byte(s.config.AdminPassHash), []byte(password))
		return nil, apperror.NewUnauthorized("invalid credentials")
	}
	if !s.VerifyAdminPassword(password) {
		logger.Warn(ctx, "failed login attempt", "user", username)
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwtService.GenerateToken(s.config.AdminUser)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "admin logged in", "user", username)
	return &LoginResult{Token: token, Name: s.config.AdminUser, ExpiresAt: expiresAt}, nil
}

// VerifyAdminPassword checks a password against the configured admin
// credential. A bcrypt hash takes precedence; the plaintext fallback exists
// for local development setups.
func (s *Service) VerifyAdminPassword(password string) bool {
	if s.config.AdminPassHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.config.AdminPassHash), []byte(password)) == nil
	}
	if s.config.AdminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) == 1
}

// Validator exposes token validation for the HTTP middleware.
func (s *Service) Validator() *JWTService {
	return s.jwtService
}
