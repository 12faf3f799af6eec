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

func createProductService(db *gorm.DB) *service.ProductService {
	return service.NewProductService(
		repository.NewProductRepository(db),
		repository.NewCustomerRepository(db),
		zap.NewNop(),
	)
}

func TestProductService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProductService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	product, err := svc.CreateProduct(ctx, &domain.CreateProductRequest{
		CustomerID: customer.ID,
		Name:       "Túi Chanel Classic",
		Brand:      "Chanel",
		Color:      "Đen",
		Images:     []string{"uploads/products/front.jpg", "uploads/products/back.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusInProgress, product.Status)
	assert.Equal(t, customer.ID, product.CustomerID)
	assert.Len(t, product.Images, 2)
}

func TestProductService_CreateUnknownCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProductService(db)

	_, err := svc.CreateProduct(context.Background(), &domain.CreateProductRequest{
		CustomerID: uuid.New(),
		Name:       "Túi Chanel",
	})
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestProductService_CreateInvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProductService(db)
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	_, err := svc.CreateProduct(context.Background(), &domain.CreateProductRequest{
		CustomerID: customer.ID,
		Name:       "Túi Chanel",
		Status:     domain.ProductStatus("BROKEN"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestProductService_GetWithDetails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProductService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	created, err := svc.CreateProduct(ctx, &domain.CreateProductRequest{
		CustomerID: customer.ID,
		Name:       "Túi Chanel",
	})
	require.NoError(t, err)

	workflow := &domain.Workflow{ProductID: created.ID, Name: "Phục hồi", Status: domain.WorkflowStatusPending}
	require.NoError(t, db.Create(workflow).Error)

	detail, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Customer)
	assert.Equal(t, customer.Name, detail.Customer.Name)
	assert.Equal(t, int64(1), detail.WorkflowsCount)
}

func TestProductService_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProductService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	created, err := svc.CreateProduct(ctx, &domain.CreateProductRequest{
		CustomerID: customer.ID,
		Name:       "Túi Chanel",
	})
	require.NoError(t, err)

	done := domain.ProductStatusDone
	updated, err := svc.UpdateProduct(ctx, created.ID, &domain.UpdateProductRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, done, updated.Status)
}

func TestProductService_ListByCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProductService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")
	other := testutil.CreateTestCustomer(t, db, "Anh Tuấn")

	_, err := svc.CreateProduct(ctx, &domain.CreateProductRequest{CustomerID: customer.ID, Name: "Túi Chanel"})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, &domain.CreateProductRequest{CustomerID: other.ID, Name: "Giày Gucci"})
	require.NoError(t, err)

	products, pagination, err := svc.ListProducts(ctx, service.ProductListFilter{CustomerID: &customer.ID})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Túi Chanel", products[0].Name)
	assert.Equal(t, int64(1), pagination.Total)
}
