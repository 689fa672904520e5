package auth

import (
	"testing"
	"time"

	"github.com/aqari/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Mona Adel", "mona@example.com", "s3cret-pass", identity.RoleOwner)
	require.NoError(t, err)
	return user
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "aqari", Expiration: time.Hour})
	user := newTestUser(t)

	token, expiresAt, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "mona@example.com", claims.Email)
	assert.Equal(t, "OWNER", claims.Role)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "aqari"})
	other := NewJWTService(JWTConfig{Secret: "other-secret", Issuer: "aqari"})

	token, _, err := svc.GenerateToken(newTestUser(t))
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "aqari", Expiration: -time.Minute})

	token, _, err := svc.GenerateToken(newTestUser(t))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret"})
	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
