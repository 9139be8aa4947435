package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key-with-at-least-32-characters"

func TestTokenManager_RoundTrip(t *testing.T) {
	mgr := NewTokenManager(testSecret, 7)

	token, err := mgr.GenerateSessionToken("user-1", true)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestTokenManager_RejectsTampered(t *testing.T) {
	mgr := NewTokenManager(testSecret, 7)

	token, err := mgr.GenerateSessionToken("user-1", false)
	assert.NoError(t, err)

	_, err = mgr.ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	mgr := NewTokenManager(testSecret, 7)
	other := NewTokenManager("another-secret-key-with-32-characters!!", 7)

	token, err := mgr.GenerateSessionToken("user-1", false)
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	mgr := NewTokenManager(testSecret, -1)

	token, err := mgr.GenerateSessionToken("user-1", false)
	assert.NoError(t, err)

	_, err = mgr.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
