package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour, "atolye-test")
	userID := uuid.New()
	tenantID := uuid.New()

	token, err := service.GenerateToken(userID, tenantID, "ayse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, "ayse", claims.Username)
	assert.Equal(t, "atolye-test", claims.Issuer)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := NewJWTService("test-secret", -time.Minute, "atolye-test")

	token, err := service.GenerateToken(uuid.New(), uuid.New(), "ayse")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	issuing := NewJWTService("secret-a", time.Hour, "atolye-test")
	validating := NewJWTService("secret-b", time.Hour, "atolye-test")

	token, err := issuing.GenerateToken(uuid.New(), uuid.New(), "ayse")
	require.NoError(t, err)

	_, err = validating.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_WrongIssuer(t *testing.T) {
	issuing := NewJWTService("test-secret", time.Hour, "issuer-a")
	validating := NewJWTService("test-secret", time.Hour, "issuer-b")

	token, err := issuing.GenerateToken(uuid.New(), uuid.New(), "ayse")
	require.NoError(t, err)

	_, err = validating.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour, "atolye-test")

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
