package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_TokenKinds(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour)

	access, err := svc.GenerateAccessToken("user-1", "ana@example.com", "admin")
	require.NoError(t, err)
	refreshID, refresh, err := svc.GenerateRefreshToken("user-1", "ana@example.com", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, refreshID)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "admin", claims.Rol)
	assert.NotEmpty(t, claims.ID)

	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenKind)
	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenKind)

	claims, err = svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, refreshID, claims.ID)
}

func TestJWTService_RejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour)

	foreign, err := NewJWTService("other", time.Minute, time.Hour).GenerateAccessToken("user-1", "", "user")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(foreign)
	assert.Error(t, err)

	expired := &JWTService{secret: []byte("secret"), accessExpiry: -time.Minute, refreshExpiry: time.Hour}
	token, err := expired.GenerateAccessToken("user-1", "", "user")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRemaining(t *testing.T) {
	assert.Zero(t, Remaining(nil))

	svc := NewJWTService("secret", time.Minute, time.Hour)
	token, err := svc.GenerateAccessToken("user-1", "", "user")
	require.NoError(t, err)
	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	left := Remaining(claims)
	assert.Greater(t, left, 50*time.Second)
	assert.LessOrEqual(t, left, time.Minute)
}
