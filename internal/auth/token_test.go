package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/service-desk/helpdesk/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 60)
	user := &domain.User{ID: "u1", Name: "Joao Silva", Role: domain.RoleUser}

	token, expiresAt, err := manager.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Joao Silva", claims.Name)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret", 60)
	other := NewTokenManager("another-secret", 60)
	user := &domain.User{ID: "u1", Name: "Joao Silva", Role: domain.RoleUser}

	token, _, err := manager.GenerateToken(user)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", 60)
	_, err := manager.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret-pass"))
	assert.Error(t, ComparePassword(hash, "wrong-pass"))
}
