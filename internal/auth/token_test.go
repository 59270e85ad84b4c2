package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	tokenStr, claims, err := tm.GenerateToken(42, domain.RoleSupport)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	require.NotEmpty(t, claims.ID)

	parsed, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSupport, parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)

	userID, err := parsed.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.True(t, parsed.ExpiresAt.After(time.Now()))
}

func TestParseToken_WrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 60)
	other := NewTokenManager("secret-b", 60)

	tokenStr, _, err := tm.GenerateToken(1, domain.RoleClient)
	require.NoError(t, err)

	_, err = other.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
