package service_test

import (
	"context"
	"regexp"
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

func createInvoiceService(db *gorm.DB) *service.InvoiceService {
	return service.NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewCustomerRepository(db),
		zap.NewNop(),
	)
}

func TestInvoiceService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	invoice, err := svc.CreateInvoice(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Vệ sinh túi", Quantity: 2, Price: 150000},
			{Name: "Phục hồi màu", Price: 500000}, // quantity defaults to 1
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, float64(2*150000+500000), invoice.TotalAmount)
	assert.Regexp(t, regexp.MustCompile(`^INV-\d{8}-\d{4}$`), invoice.InvoiceNo)
	require.Len(t, invoice.Items, 2)
	assert.Equal(t, 1, invoice.Items[1].Quantity)
}

func TestInvoiceService_CreateUnknownCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)

	_, err := svc.CreateInvoice(context.Background(), &domain.CreateInvoiceRequest{
		CustomerID: uuid.New(),
		Items:      []domain.CreateInvoiceItemRequest{{Name: "Vệ sinh túi", Price: 150000}},
	})
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestInvoiceService_ItemQRCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")
	product := testutil.CreateTestProduct(t, db, customer, "Túi xách")

	invoice, err := svc.CreateInvoice(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Vệ sinh túi", Price: 150000, ProductID: &product.ID},
		},
	})
	require.NoError(t, err)

	require.Len(t, invoice.Items, 1)
	assert.Equal(t, invoice.InvoiceNo+"|"+product.ID.String()+"|", invoice.Items[0].QRCode)
}

func TestInvoiceService_AddItemRecomputesTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	invoice, err := svc.CreateInvoice(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []domain.CreateInvoiceItemRequest{{Name: "Vệ sinh túi", Price: 150000}},
	})
	require.NoError(t, err)
	require.Equal(t, float64(150000), invoice.TotalAmount)

	updated, err := svc.AddItem(ctx, invoice.ID, &domain.CreateInvoiceItemRequest{
		Name:     "Khâu vá",
		Quantity: 3,
		Price:    100000,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(150000+3*100000), updated.TotalAmount)
	assert.Len(t, updated.Items, 2)
}

func TestInvoiceService_UpdateItemRecomputesTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	invoice, err := svc.CreateInvoice(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []domain.CreateInvoiceItemRequest{{Name: "Vệ sinh túi", Price: 150000}},
	})
	require.NoError(t, err)

	newPrice := float64(200000)
	newQuantity := 2
	updated, err := svc.UpdateItem(ctx, invoice.ID, invoice.Items[0].ID, &domain.UpdateInvoiceItemRequest{
		Price:    &newPrice,
		Quantity: &newQuantity,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(400000), updated.TotalAmount)
}

func TestInvoiceService_DeleteItemRecomputesTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	invoice, err := svc.CreateInvoice(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Vệ sinh túi", Price: 150000},
			{Name: "Khâu vá", Price: 100000},
		},
	})
	require.NoError(t, err)

	updated, err := svc.DeleteItem(ctx, invoice.ID, invoice.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, float64(100000), updated.TotalAmount)
	assert.Len(t, updated.Items, 1)
}

func TestInvoiceService_UpdateItemWrongInvoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	invoice, err := svc.CreateInvoice(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []domain.CreateInvoiceItemRequest{{Name: "Vệ sinh túi", Price: 150000}},
	})
	require.NoError(t, err)

	name := "renamed"
	_, err = svc.UpdateItem(ctx, uuid.New(), invoice.Items[0].ID, &domain.UpdateInvoiceItemRequest{Name: &name})
	assert.ErrorIs(t, err, service.ErrInvoiceItemNotFound)
}

func TestInvoiceService_UpdateStatusKeepsItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	invoice, err := svc.CreateInvoice(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []domain.CreateInvoiceItemRequest{{Name: "Vệ sinh túi", Price: 150000}},
	})
	require.NoError(t, err)

	paid := domain.InvoiceStatusPaid
	updated, err := svc.UpdateInvoice(ctx, invoice.ID, &domain.UpdateInvoiceRequest{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, updated.Status)
	assert.Len(t, updated.Items, 1)
}

func TestInvoiceService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	invoice, err := svc.CreateInvoice(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []domain.CreateInvoiceItemRequest{{Name: "Vệ sinh túi", Price: 150000}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvoice(ctx, invoice.ID))

	_, err = svc.GetInvoice(ctx, invoice.ID)
	assert.ErrorIs(t, err, service.ErrInvoiceNotFound)

	// items are gone with the invoice
	var count int64
	require.NoError(t, db.Model(&domain.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInvoiceService_CreateEmptyItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	_, err := svc.CreateInvoice(context.Background(), &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
	})
	assert.ErrorIs(t, err, service.ErrNoItems)

	// nothing was written
	var count int64
	require.NoError(t, db.Model(&domain.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInvoiceService_UpdateNoFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createInvoiceService(db)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")

	invoice, err := svc.CreateInvoice(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []domain.CreateInvoiceItemRequest{{Name: "Vệ sinh túi", Price: 150000}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateInvoice(ctx, invoice.ID, &domain.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, service.ErrNoFieldsToUpdate)

	_, err = svc.UpdateItem(ctx, invoice.ID, invoice.Items[0].ID, &domain.UpdateInvoiceItemRequest{})
	assert.ErrorIs(t, err, service.ErrNoFieldsToUpdate)
}
