package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/config"
)

func testManager(expiry time.Duration) *TokenManager {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenExpiry = expiry
	return NewTokenManager(cfg)
}

func TestIssueAndVerify(t *testing.T) {
	m := testManager(time.Hour)

	token, err := m.Issue("65f0c2", "jane@example.com", "Jane", UserTypeStudent, time.Now())
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "65f0c2", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, UserTypeStudent, claims.UserType)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := testManager(time.Minute)

	token, err := m.Issue("65f0c2", "jane@example.com", "Jane", UserTypeStudent, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := testManager(time.Hour).Issue("id", "a@b.c", "A", UserTypeAdmin, time.Now())
	require.NoError(t, err)

	other := &config.Config{}
	other.Auth.JWTSecret = "different-secret"
	other.Auth.TokenExpiry = time.Hour

	_, err = NewTokenManager(other).Verify(token)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", ExtractToken("Bearer abc"))
	assert.Equal(t, "abc", ExtractToken("abc"))
	assert.Equal(t, "", ExtractToken(""))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}
