package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
)

// TransactionRepository persists finance ledger entries
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Transaction{}, "id = ?", id).Error
}

func (r *TransactionRepository) List(ctx context.Context, scope ListScope) ([]domain.Transaction, int64, error) {
	var transactions []domain.Transaction
	var total int64

	query := applyScope(r.db.WithContext(ctx).Model(&domain.Transaction{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPage(query, scope).Find(&transactions).Error
	return transactions, total, err
}

// Summarize totals revenue and expense amounts over the same filters the
// list uses
func (r *TransactionRepository) Summarize(ctx context.Context, scope ListScope) (*domain.FinanceSummaryDTO, error) {
	var summary domain.FinanceSummaryDTO
	query := applyScope(r.db.WithContext(ctx).Model(&domain.Transaction{}), scope)
	err := query.
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_revenue, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_expense",
			domain.TransactionTypeRevenue, domain.TransactionTypeExpense,
		).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
