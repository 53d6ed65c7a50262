package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	a, err := HashPassword("same password")
	require.NoError(t, err)
	b, err := HashPassword("same password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

const testKeyHex = "0000000000000000000000000000000000000000000000000000000000000001"

func TestSessionTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	user := &domain.User{
		Username: "alice",
		IsStaff:  true,
	}
	user.ID = "user-abc123"

	token, err := svc.GenerateSessionToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-abc123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, "user-abc123", claims.Subject)
}

func TestVerifySessionTokenGarbage(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifySessionToken("v4.local.garbage")
	assert.Error(t, err)
}

func TestVerifySessionTokenWrongKey(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	other, err := NewTokenService("0000000000000000000000000000000000000000000000000000000000000002", time.Hour)
	require.NoError(t, err)

	user := &domain.User{Username: "alice"}
	user.ID = "user-abc123"
	token, err := svc.GenerateSessionToken(user)
	require.NoError(t, err)

	_, err = other.VerifySessionToken(token)
	assert.Error(t, err)
}

func TestVerifySessionTokenExpired(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, -time.Minute)
	require.NoError(t, err)

	user := &domain.User{Username: "alice"}
	user.ID = "user-abc123"
	token, err := svc.GenerateSessionToken(user)
	require.NoError(t, err)

	_, err = svc.VerifySessionToken(token)
	assert.Error(t, err)
}

func TestNewTokenServiceBadKey(t *testing.T) {
	_, err := NewTokenService("short", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(strings.Repeat("z", 64), time.Hour)
	assert.Error(t, err)
}
