package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/repository"
	"github.com/atelier-vn/shop-api/internal/service"
	"github.com/atelier-vn/shop-api/internal/testutil"
)

func createCatalogService(db *gorm.DB) *service.CatalogService {
	return service.NewCatalogService(repository.NewServiceRepository(db), zap.NewNop())
}

func TestCatalogService_CreateActiveByDefault(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCatalogService(db)
	ctx := context.Background()

	created, err := svc.CreateService(ctx, &domain.CreateServiceRequest{
		Name:     "Vệ sinh túi da",
		Category: "CLEANING",
		Price:    150000,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, float64(150000), created.Price)

	inactive := false
	created, err = svc.CreateService(ctx, &domain.CreateServiceRequest{
		Name:     "Dịch vụ cũ",
		Category: "LEGACY",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, created.IsActive)
}

func TestCatalogService_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCatalogService(db)
	ctx := context.Background()

	created, err := svc.CreateService(ctx, &domain.CreateServiceRequest{
		Name:     "Xi mạ khoá",
		Category: "HARDWARE",
		Price:    250000,
	})
	require.NoError(t, err)

	newPrice := float64(300000)
	updated, err := svc.UpdateService(ctx, created.ID, &domain.UpdateServiceRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, newPrice, updated.Price)
	assert.Equal(t, created.Name, updated.Name)
}

func TestCatalogService_GetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCatalogService(db)

	_, err := svc.GetService(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrServiceNotFound)
}

func TestCatalogService_ListOrderedAndFiltered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCatalogService(db)
	ctx := context.Background()

	for _, s := range []struct {
		name, category string
	}{
		{"Phục hồi màu", "RESTORATION"},
		{"Vệ sinh giày", "CLEANING"},
		{"Vệ sinh túi", "CLEANING"},
	} {
		_, err := svc.CreateService(ctx, &domain.CreateServiceRequest{Name: s.name, Category: s.category})
		require.NoError(t, err)
	}

	items, pagination, err := svc.ListServices(ctx, "CLEANING", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), pagination.Total)
	assert.Equal(t, "Vệ sinh giày", items[0].Name)

	// category sorts before name over the full catalog
	items, _, err = svc.ListServices(ctx, "", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "CLEANING", items[0].Category)
	assert.Equal(t, "RESTORATION", items[2].Category)
}
