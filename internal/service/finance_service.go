package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/mapper"
	"github.com/atelier-vn/shop-api/internal/repository"
)

const defaultTransactionPageSize = 20

// TransactionListFilter narrows the transaction list
type TransactionListFilter struct {
	Type      string
	Status    string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// FinanceService manages manual revenue and expense bookkeeping
type FinanceService struct {
	transactionRepo *repository.TransactionRepository
	logger          *zap.Logger
}

func NewFinanceService(transactionRepo *repository.TransactionRepository, logger *zap.Logger) *FinanceService {
	return &FinanceService{
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

func (s *FinanceService) CreateTransaction(ctx context.Context, req *domain.CreateTransactionRequest) (*domain.TransactionDTO, error) {
	if !req.Type.IsValid() {
		return nil, ErrInvalidStatus
	}

	status := req.Status
	if status == "" {
		status = domain.TransactionStatusPending
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	transaction := &domain.Transaction{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Status:      status,
		InvoiceID:   req.InvoiceID,
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	dto := mapper.ToTransactionDTO(transaction)
	return &dto, nil
}

func (s *FinanceService) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.TransactionDTO, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	dto := mapper.ToTransactionDTO(transaction)
	return &dto, nil
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, id uuid.UUID, req *domain.UpdateTransactionRequest) (*domain.TransactionDTO, error) {
	if !req.HasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, ErrInvalidStatus
		}
		transaction.Type = *req.Type
	}
	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.Category != nil {
		transaction.Category = *req.Category
	}
	if req.Description != nil {
		transaction.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		transaction.Status = *req.Status
	}
	if req.InvoiceID != nil {
		transaction.InvoiceID = req.InvoiceID
	}

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	dto := mapper.ToTransactionDTO(transaction)
	return &dto, nil
}

// DeleteTransaction removes a transaction. Deleting an unknown id is not an
// error.
func (s *FinanceService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// ListTransactions returns a page of transactions and the revenue and expense
// totals over the same filter, independent of the page window.
func (s *FinanceService) ListTransactions(ctx context.Context, filter TransactionListFilter) ([]domain.TransactionDTO, *domain.FinanceSummaryDTO, domain.Pagination, error) {
	page, limit := clampPage(filter.Page, filter.Limit, defaultTransactionPageSize)

	scope := repository.ListScope{
		Filters:   map[string]interface{}{},
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Page:      page,
		Limit:     limit,
	}
	if filter.Type != "" {
		scope.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		scope.Filters["status"] = filter.Status
	}
	if filter.Category != "" {
		scope.Filters["category"] = filter.Category
	}

	transactions, total, err := s.transactionRepo.List(ctx, scope)
	if err != nil {
		return nil, nil, domain.Pagination{}, fmt.Errorf("failed to list transactions: %w", err)
	}

	summary, err := s.transactionRepo.Summarize(ctx, scope)
	if err != nil {
		return nil, nil, domain.Pagination{}, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	dtos := make([]domain.TransactionDTO, len(transactions))
	for i := range transactions {
		dtos[i] = mapper.ToTransactionDTO(&transactions[i])
	}
	return dtos, summary, newPagination(page, limit, total), nil
}
