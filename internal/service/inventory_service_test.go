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

func createInventoryService(db *gorm.DB) *service.InventoryService {
	return service.NewInventoryService(repository.NewMaterialRepository(db), zap.NewNop())
}

func TestInventoryService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInventoryService(db)
	ctx := context.Background()

	expiry := "2027-06-30"
	material, err := svc.CreateMaterial(ctx, &domain.CreateMaterialRequest{
		Name:        "Xi đánh bóng",
		SKU:         "WAX-001",
		Category:    "POLISH",
		Unit:        "hộp",
		Quantity:    12,
		MinQuantity: 3,
		ExpiryDate:  &expiry,
	})
	require.NoError(t, err)
	assert.Equal(t, "POLISH", material.Category)
	require.NotNil(t, material.ExpiryDate)
	assert.Equal(t, expiry, *material.ExpiryDate)
}

func TestInventoryService_CreateDefaultCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInventoryService(db)

	material, err := svc.CreateMaterial(context.Background(), &domain.CreateMaterialRequest{Name: "Chỉ khâu"})
	require.NoError(t, err)
	assert.Equal(t, "OTHER", material.Category)
	assert.Nil(t, material.ExpiryDate)
}

func TestInventoryService_InvalidExpiryDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInventoryService(db)
	ctx := context.Background()

	bad := "30/06/2027"
	_, err := svc.CreateMaterial(ctx, &domain.CreateMaterialRequest{Name: "Xi đánh bóng", ExpiryDate: &bad})
	assert.ErrorIs(t, err, service.ErrInvalidExpiryDate)

	material, err := svc.CreateMaterial(ctx, &domain.CreateMaterialRequest{Name: "Xi đánh bóng"})
	require.NoError(t, err)

	_, err = svc.UpdateMaterial(ctx, material.ID, &domain.UpdateMaterialRequest{ExpiryDate: &bad})
	assert.ErrorIs(t, err, service.ErrInvalidExpiryDate)
}

func TestInventoryService_UpdateClearsExpiry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInventoryService(db)
	ctx := context.Background()

	expiry := "2027-06-30"
	material, err := svc.CreateMaterial(ctx, &domain.CreateMaterialRequest{Name: "Xi đánh bóng", ExpiryDate: &expiry})
	require.NoError(t, err)

	empty := ""
	updated, err := svc.UpdateMaterial(ctx, material.ID, &domain.UpdateMaterialRequest{ExpiryDate: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.ExpiryDate)
}

func TestInventoryService_GetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInventoryService(db)

	_, err := svc.GetMaterial(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrMaterialNotFound)
}

func TestInventoryService_ListLowStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInventoryService(db)
	ctx := context.Background()

	fixtures := []domain.CreateMaterialRequest{
		{Name: "Keo dán", Quantity: 2, MinQuantity: 5},
		{Name: "Chỉ khâu", Quantity: 10, MinQuantity: 5},
		{Name: "Sơn cạnh", Quantity: 5, MinQuantity: 5}, // at the threshold counts
		{Name: "Vải lót", Quantity: 0, MinQuantity: 0},  // no threshold set
	}
	for i := range fixtures {
		_, err := svc.CreateMaterial(ctx, &fixtures[i])
		require.NoError(t, err)
	}

	low, err := svc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Keo dán", low[0].Name)
	assert.Equal(t, "Sơn cạnh", low[1].Name)
}

func TestInventoryService_ListCategoryFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInventoryService(db)
	ctx := context.Background()

	_, err := svc.CreateMaterial(ctx, &domain.CreateMaterialRequest{Name: "Xi đánh bóng", Category: "POLISH"})
	require.NoError(t, err)
	_, err = svc.CreateMaterial(ctx, &domain.CreateMaterialRequest{Name: "Chỉ khâu", Category: "SEWING"})
	require.NoError(t, err)

	materials, pagination, err := svc.ListMaterials(ctx, "POLISH", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, "Xi đánh bóng", materials[0].Name)
	assert.Equal(t, int64(1), pagination.Total)
}
