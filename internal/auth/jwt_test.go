package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-vn/shop-api/internal/auth"
	"github.com/atelier-vn/shop-api/internal/config"
	"github.com/atelier-vn/shop-api/internal/domain"
)

func newTokenManager(t *testing.T, cfg config.AuthConfig) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager(&cfg)
	require.NoError(t, err)
	return tokens
}

func testUser() *domain.User {
	user := &domain.User{
		Email: "staff@example.com",
		Name:  "Nhân viên",
		Role:  domain.RoleAdmin,
	}
	user.ID = uuid.New()
	return user
}

func TestTokenManager_RequiresSecret(t *testing.T) {
	_, err := auth.NewTokenManager(&config.AuthConfig{TokenTTL: 3600})
	assert.Error(t, err)
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	tokens := newTokenManager(t, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  3600,
		Issuer:    "atelier-shop-api",
	})
	user := testUser()

	signed, err := tokens.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userCtx, err := tokens.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userCtx.UserID)
	assert.Equal(t, user.Email, userCtx.Email)
	assert.Equal(t, domain.RoleAdmin, userCtx.Role)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuing := newTokenManager(t, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  3600,
		Issuer:    "atelier-shop-api",
	})
	validating := newTokenManager(t, config.AuthConfig{
		JWTSecret: "other-secret",
		TokenTTL:  3600,
		Issuer:    "atelier-shop-api",
	})

	signed, err := issuing.IssueToken(testUser())
	require.NoError(t, err)

	_, err = validating.ValidateToken(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tokens := newTokenManager(t, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  -60,
		Issuer:    "atelier-shop-api",
	})

	signed, err := tokens.IssueToken(testUser())
	require.NoError(t, err)

	_, err = tokens.ValidateToken(signed)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	issuing := newTokenManager(t, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  3600,
		Issuer:    "someone-else",
	})
	validating := newTokenManager(t, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  3600,
		Issuer:    "atelier-shop-api",
	})

	signed, err := issuing.IssueToken(testUser())
	require.NoError(t, err)

	_, err = validating.ValidateToken(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_GarbageToken(t *testing.T) {
	tokens := newTokenManager(t, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  3600,
		Issuer:    "atelier-shop-api",
	})

	_, err := tokens.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
