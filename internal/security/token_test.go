package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "token-test-secret-at-least-32-chars-long"

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	token, err := tm.GenerateAccessToken(42, "user@example.com", "VOLUNTEER")
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "VOLUNTEER", claims.UserType)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestTokenManager_RefreshTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	token, err := tm.GenerateRefreshToken(42, "user@example.com")
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager(testSecret, -time.Minute, 24*time.Hour)

	token, err := tm.GenerateAccessToken(42, "user@example.com", "VOLUNTEER")
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, 24*time.Hour)
	other := NewTokenManager("another-secret-that-is-also-32-chars!!", time.Hour, 24*time.Hour)

	token, err := tm.GenerateAccessToken(42, "user@example.com", "VOLUNTEER")
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_GarbageToken(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	_, err := tm.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ZeroExpiryDefaults(t *testing.T) {
	tm := NewTokenManager(testSecret, 0, 0)

	token, err := tm.GenerateAccessToken(42, "user@example.com", "VOLUNTEER")
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(30*time.Minute)))
}
