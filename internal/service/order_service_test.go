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

func createOrderService(db *gorm.DB) *service.OrderService {
	return service.NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCustomerRepository(db),
		zap.NewNop(),
	)
}

func TestOrderService_CreateDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Anh Tuấn")

	order, err := svc.CreateOrder(ctx, &domain.CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []domain.CreateOrderItemRequest{
			{Name: "Xi mạ khoá", Quantity: 2, Price: 250000},
			{Name: "Dưỡng da", Price: 120000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderTypeService, order.Type)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, float64(2*250000+120000), order.TotalAmount)
	assert.Len(t, order.Items, 2)
}

func TestOrderService_DepositStartsDeposited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Anh Tuấn")

	order, err := svc.CreateOrder(ctx, &domain.CreateOrderRequest{
		CustomerID:    customer.ID,
		DepositAmount: 100000,
		Items:         []domain.CreateOrderItemRequest{{Name: "Xi mạ khoá", Price: 250000}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDeposited, order.Status)
	assert.Equal(t, float64(100000), order.DepositAmount)
}

func TestOrderService_CreateInvalidType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Anh Tuấn")

	_, err := svc.CreateOrder(ctx, &domain.CreateOrderRequest{
		CustomerID: customer.ID,
		Type:       domain.OrderType("WHOLESALE"),
		Items:      []domain.CreateOrderItemRequest{{Name: "Xi mạ khoá", Price: 250000}},
	})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestOrderService_CreateUnknownCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)

	_, err := svc.CreateOrder(context.Background(), &domain.CreateOrderRequest{
		CustomerID: uuid.New(),
		Items:      []domain.CreateOrderItemRequest{{Name: "Xi mạ khoá", Price: 250000}},
	})
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Anh Tuấn")

	order, err := svc.CreateOrder(ctx, &domain.CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []domain.CreateOrderItemRequest{{Name: "Xi mạ khoá", Price: 250000}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, &domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, &domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatus("SHIPPED"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestOrderService_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Anh Tuấn")
	other := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	_, err := svc.CreateOrder(ctx, &domain.CreateOrderRequest{
		CustomerID: customer.ID,
		Type:       domain.OrderTypeRetail,
		Items:      []domain.CreateOrderItemRequest{{Name: "Kem dưỡng", Price: 90000}},
	})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, &domain.CreateOrderRequest{
		CustomerID: other.ID,
		Items:      []domain.CreateOrderItemRequest{{Name: "Xi mạ khoá", Price: 250000}},
	})
	require.NoError(t, err)

	orders, pagination, err := svc.ListOrders(ctx, service.OrderListFilter{CustomerID: &customer.ID})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderTypeRetail, orders[0].Type)
	assert.Equal(t, int64(1), pagination.Total)

	orders, _, err = svc.ListOrders(ctx, service.OrderListFilter{Type: string(domain.OrderTypeService)})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, other.ID, orders[0].CustomerID)
}

func TestOrderService_CreateEmptyItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderService(db)
	customer := testutil.CreateTestCustomer(t, db, "Anh Tuấn")

	_, err := svc.CreateOrder(context.Background(), &domain.CreateOrderRequest{
		CustomerID: customer.ID,
	})
	assert.ErrorIs(t, err, service.ErrNoItems)

	var count int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}
