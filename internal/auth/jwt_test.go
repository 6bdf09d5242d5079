package auth

import (
	"testing"

	"flatmates_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWTConfig(t *testing.T, ttlMinutes int) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit_test_secret"
	cfg.JWT.TTL = ttlMinutes
	config.AppConfig = cfg
}

func TestGenerateAndParseToken(t *testing.T) {
	setupJWTConfig(t, 60)

	token, err := GenerateToken("user-123", "tenant@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "tenant@example.com", claims.Email)
}

func TestParseToken_Garbage(t *testing.T) {
	setupJWTConfig(t, 60)

	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	setupJWTConfig(t, -1)

	token, err := GenerateToken("user-123", "tenant@example.com")
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setupJWTConfig(t, 60)
	token, err := GenerateToken("user-123", "tenant@example.com")
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "a_different_secret"
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
