package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dukkan/internal/core/apperror"
)

func newTestJWT() *JWTService {
	cfg := DefaultJWTConfig("test-secret")
	cfg.TokenTTL = time.Hour
	return NewJWTService(cfg)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWT()

	token, expiresAt, err := svc.GenerateToken("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Name)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newTestJWT().GenerateToken("admin")
	require.NoError(t, err)

	other := NewJWTService(DefaultJWTConfig("other-secret"))
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newTestJWT().ValidateToken("not.a.token")
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc := NewService(ServiceConfig{
		AdminUser:     "admin",
		AdminPassword: "hunter2",
	}, newTestJWT())
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, "admin", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "admin", result.Name)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin", "hunter3")
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, err := svc.Login(ctx, "root", "hunter2")
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})
}

func TestVerifyAdminPassword_HashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewService(ServiceConfig{
		AdminUser:     "admin",
		AdminPassHash: string(hash),
		AdminPassword: "plaintext-ignored",
	}, newTestJWT())

	assert.True(t, svc.VerifyAdminPassword("correct"))
	assert.False(t, svc.VerifyAdminPassword("plaintext-ignored"))
}

func TestVerifyAdminPassword_NoCredentialConfigured(t *testing.T) {
	svc := NewService(ServiceConfig{AdminUser: "admin"}, newTestJWT())
	assert.False(t, svc.VerifyAdminPassword(""))
	assert.False(t, svc.VerifyAdminPassword("anything"))
}
