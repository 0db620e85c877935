package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret-key", "learnhub-api", 60)

	token, err := tm.GenerateToken(42, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "learnhub-api", claims.Issuer)
	assert.Equal(t, "admin", claims.Subject)
}

func TestTokenManager_ValidateToken_WrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-one", "learnhub-api", 60)
	other := NewTokenManager("secret-two", "learnhub-api", 60)

	token, err := tm.GenerateToken(1, "admin")
	require.NoError(t, err)

	claims, err := other.ValidateToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ValidateToken_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret-key", "learnhub-api", 0)
	// ttl of 0 minutes means the token is already expired at issue time
	token, err := tm.GenerateToken(1, "admin")
	require.NoError(t, err)

	// Give the clock a moment to pass the expiry instant
	time.Sleep(10 * time.Millisecond)

	claims, err := tm.ValidateToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_ValidateToken_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret-key", "learnhub-api", 60)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.e30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tm.ValidateToken(tt.token)
			assert.Nil(t, claims)
			assert.Error(t, err)
		})
	}
}

func TestTokenManager_GetExpirationTime(t *testing.T) {
	tm := NewTokenManager("test-secret-key", "learnhub-api", 90)
	assert.Equal(t, 90*time.Minute, tm.GetExpirationTime())
}

func TestTimingSafeCompare(t *testing.T) {
	assert.True(t, TimingSafeCompare("token", "token"))
	assert.False(t, TimingSafeCompare("token", "other"))
	assert.False(t, TimingSafeCompare("token", "token2"))
	assert.True(t, TimingSafeCompare("", ""))
}
