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

func createCustomerService(db *gorm.DB) *service.CustomerService {
	return service.NewCustomerService(repository.NewCustomerRepository(db), zap.NewNop())
}

func TestCustomerService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	ctx := context.Background()

	req := &domain.CreateCustomerRequest{
		Name:    "Chị Lan",
		Phone:   "0912345678",
		Email:   "lan@example.com",
		Address: "12 Hàng Bạc, Hà Nội",
		Notes:   "Prefers pickup on weekends",
	}

	customer, err := svc.CreateCustomer(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, customer.ID)
	assert.Equal(t, req.Name, customer.Name)
	assert.Equal(t, req.Phone, customer.Phone)
	assert.Equal(t, req.Email, customer.Email)
	assert.Equal(t, req.Address, customer.Address)
	assert.Equal(t, req.Notes, customer.Notes)
	assert.Nil(t, customer.LeadID)
}

func TestCustomerService_GetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)

	_, err := svc.GetCustomer(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestCustomerService_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, &domain.CreateCustomerRequest{Name: "Original"})
	require.NoError(t, err)

	newName := "Updated"
	newPhone := "0987654321"
	updated, err := svc.UpdateCustomer(ctx, created.ID, &domain.UpdateCustomerRequest{
		Name:  &newName,
		Phone: &newPhone,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, newPhone, updated.Phone)
	// untouched fields keep their values
	assert.Equal(t, created.Email, updated.Email)
}

func TestCustomerService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, &domain.CreateCustomerRequest{Name: "To Delete"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(ctx, created.ID))

	_, err = svc.GetCustomer(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)

	// deleting again is not an error
	assert.NoError(t, svc.DeleteCustomer(ctx, created.ID))
}

func TestCustomerService_ListSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	ctx := context.Background()

	for _, name := range []string{"Anna Nguyen", "Binh Tran", "Anh Pham"} {
		_, err := svc.CreateCustomer(ctx, &domain.CreateCustomerRequest{Name: name})
		require.NoError(t, err)
	}

	customers, pagination, err := svc.ListCustomers(ctx, "an", 1, 10)
	require.NoError(t, err)
	assert.Len(t, customers, 3) // matches Anna, Tran and Pham
	assert.Equal(t, int64(3), pagination.Total)

	customers, pagination, err = svc.ListCustomers(ctx, "binh", 1, 10)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Binh Tran", customers[0].Name)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestCustomerService_ListPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.CreateCustomer(ctx, &domain.CreateCustomerRequest{Name: "Customer"})
		require.NoError(t, err)
	}

	customers, pagination, err := svc.ListCustomers(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, int64(5), pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
}

func TestCustomerService_UpdateNoFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCustomerService(db)
	customer := testutil.CreateTestCustomer(t, db, "Chị Lan")

	_, err := svc.UpdateCustomer(context.Background(), customer.ID, &domain.UpdateCustomerRequest{})
	assert.ErrorIs(t, err, service.ErrNoFieldsToUpdate)
}
