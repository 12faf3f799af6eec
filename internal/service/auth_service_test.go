package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/auth"
	"github.com/atelier-vn/shop-api/internal/config"
	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/repository"
	"github.com/atelier-vn/shop-api/internal/service"
	"github.com/atelier-vn/shop-api/internal/testutil"
)

func createAuthService(t *testing.T, db *gorm.DB) *service.AuthService {
	t.Helper()

	tokens, err := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  3600,
		Issuer:    "atelier-shop-api",
	})
	require.NoError(t, err)

	return service.NewAuthService(repository.NewUserRepository(db), tokens, zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)

	resp, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "staff@example.com",
		Password: "secret123",
		Name:     "Nhân viên",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.Equal(t, "staff@example.com", resp.User.Email)
}

func TestAuthService_RegisterAdminRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "boss@example.com",
		Password: "secret123",
		Name:     "Boss",
		Role:     domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, service.ErrAdminRegistration)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)
	ctx := context.Background()

	req := &domain.RegisterRequest{Email: "staff@example.com", Password: "secret123", Name: "Nhân viên"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, service.ErrEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.RegisterRequest{
		Email:    "staff@example.com",
		Password: "secret123",
		Name:     "Nhân viên",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &domain.LoginRequest{Email: "staff@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, &domain.LoginRequest{Email: "staff@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	// unknown account reports the same error as a bad password
	_, err = svc.Login(ctx, &domain.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_GetMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAuthService(t, db)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &domain.RegisterRequest{
		Email:    "staff@example.com",
		Password: "secret123",
		Name:     "Nhân viên",
	})
	require.NoError(t, err)

	me, err := svc.GetMe(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.User.Email, me.Email)

	_, err = svc.GetMe(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
