package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute)

	token, err := m.GenerateAccessToken("user-123", "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", 15*time.Minute)
	token, err := m.GenerateAccessToken("user-123", "jane@example.com")
	require.NoError(t, err)

	other := NewJWTManager("secret-b", 15*time.Minute)
	_, err = other.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)
	token, err := m.GenerateAccessToken("user-123", "jane@example.com")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}

func TestRefreshTokenIsRandom(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute)
	a, err := m.GenerateRefreshToken()
	require.NoError(t, err)
	b, err := m.GenerateRefreshToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
