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

func createFinanceService(db *gorm.DB) *service.FinanceService {
	return service.NewFinanceService(repository.NewTransactionRepository(db), zap.NewNop())
}

func TestFinanceService_CreateDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createFinanceService(db)

	tx, err := svc.CreateTransaction(context.Background(), &domain.CreateTransactionRequest{
		Type:     domain.TransactionTypeRevenue,
		Amount:   500000,
		Category: "SERVICE",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, tx.Status)
	assert.Equal(t, float64(500000), tx.Amount)
}

func TestFinanceService_CreateInvalidType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createFinanceService(db)

	_, err := svc.CreateTransaction(context.Background(), &domain.CreateTransactionRequest{
		Type:   domain.TransactionType("INCOME"),
		Amount: 100,
	})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestFinanceService_UpdateInvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createFinanceService(db)
	ctx := context.Background()

	tx, err := svc.CreateTransaction(ctx, &domain.CreateTransactionRequest{
		Type:   domain.TransactionTypeExpense,
		Amount: 100000,
	})
	require.NoError(t, err)

	bad := domain.TransactionStatus("VOID")
	_, err = svc.UpdateTransaction(ctx, tx.ID, &domain.UpdateTransactionRequest{Status: &bad})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	approved := domain.TransactionStatusApproved
	updated, err := svc.UpdateTransaction(ctx, tx.ID, &domain.UpdateTransactionRequest{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, approved, updated.Status)
}

func TestFinanceService_GetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createFinanceService(db)

	_, err := svc.GetTransaction(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrTransactionNotFound)
}

func TestFinanceService_ListSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createFinanceService(db)
	ctx := context.Background()

	fixtures := []domain.CreateTransactionRequest{
		{Type: domain.TransactionTypeRevenue, Amount: 500000, Category: "SERVICE"},
		{Type: domain.TransactionTypeRevenue, Amount: 300000, Category: "RETAIL"},
		{Type: domain.TransactionTypeExpense, Amount: 200000, Category: "SUPPLIES"},
	}
	for i := range fixtures {
		_, err := svc.CreateTransaction(ctx, &fixtures[i])
		require.NoError(t, err)
	}

	transactions, summary, pagination, err := svc.ListTransactions(ctx, service.TransactionListFilter{})
	require.NoError(t, err)
	assert.Len(t, transactions, 3)
	assert.Equal(t, int64(3), pagination.Total)
	assert.Equal(t, float64(800000), summary.TotalRevenue)
	assert.Equal(t, float64(200000), summary.TotalExpense)
}

func TestFinanceService_SummaryFollowsFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createFinanceService(db)
	ctx := context.Background()

	fixtures := []domain.CreateTransactionRequest{
		{Type: domain.TransactionTypeRevenue, Amount: 500000, Category: "SERVICE"},
		{Type: domain.TransactionTypeRevenue, Amount: 300000, Category: "RETAIL"},
		{Type: domain.TransactionTypeExpense, Amount: 200000, Category: "RETAIL"},
	}
	for i := range fixtures {
		_, err := svc.CreateTransaction(ctx, &fixtures[i])
		require.NoError(t, err)
	}

	transactions, summary, _, err := svc.ListTransactions(ctx, service.TransactionListFilter{Category: "RETAIL"})
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.Equal(t, float64(300000), summary.TotalRevenue)
	assert.Equal(t, float64(200000), summary.TotalExpense)
}

func TestFinanceService_SummaryCoversAllPages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createFinanceService(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.CreateTransaction(ctx, &domain.CreateTransactionRequest{
			Type:   domain.TransactionTypeRevenue,
			Amount: 100000,
		})
		require.NoError(t, err)
	}

	transactions, summary, _, err := svc.ListTransactions(ctx, service.TransactionListFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
	// the summary is not limited to the page window
	assert.Equal(t, float64(500000), summary.TotalRevenue)
}
