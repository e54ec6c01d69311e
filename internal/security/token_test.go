package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	token, err := mgr.GenerateAccessToken(42, "MOTO042", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "MOTO042", claims.Code)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "fleettrack", claims.Issuer)
}

func TestExpiredTokenRejected(t *testing.T) {
	mgr := NewTokenManager("test-secret", -time.Minute)

	token, err := mgr.GenerateAccessToken(1, "MOTO001", false)
	require.NoError(t, err)

	_, err = mgr.ValidateToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).GenerateAccessToken(1, "MOTO001", false)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)
	_, err := mgr.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
