package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	user := NewUser("Alice@Example.com", "hash")
	user.Name = "Alice"
	user.Role = RoleAdmin

	token, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, "alice@example.com", uc.Email)
	assert.Equal(t, RoleAdmin, uc.Role)
	assert.Equal(t, "Alice", uc.Name)
}

func TestJWT_RejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, _, err := svc.GenerateAccessToken(NewUser("bob@example.com", "hash"))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[2] = strings.Repeat("A", len(parts[2]))

	_, err = svc.ValidateToken(strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-one"))
	verifier := NewJWTService(DefaultJWTConfig("secret-two"))

	token, _, err := issuer.GenerateAccessToken(NewUser("bob@example.com", "hash"))
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken(NewUser("bob@example.com", "hash"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
