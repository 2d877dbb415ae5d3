package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniboard/config"
)

func init() {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret-key"})
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-id-1", "alice", false, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-id-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsAdmin)
}

func TestTokenCarriesAdminFlag(t *testing.T) {
	token, err := GenerateToken("user-id-2", "root", true, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-id-1", "alice", false, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-id-1", "alice", false, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", hash)

	assert.True(t, CheckPassword(hash, "pw1"))
	assert.False(t, CheckPassword(hash, "pw2"))
}
