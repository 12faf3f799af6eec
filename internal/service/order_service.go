package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/mapper"
	"github.com/atelier-vn/shop-api/internal/repository"
)

const defaultOrderPageSize = 20

// OrderListFilter narrows the order list
type OrderListFilter struct {
	CustomerID *uuid.UUID
	Status     string
	Type       string
	Page       int
	Limit      int
}

type OrderService struct {
	orderRepo    *repository.OrderRepository
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateOrder creates an order with its items. The total is the sum of price
// times quantity over all items. A positive deposit marks the order DEPOSITED.
func (s *OrderService) CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (*domain.OrderWithItemsDTO, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	orderType := req.Type
	if orderType == "" {
		orderType = domain.OrderTypeService
	}
	if !orderType.IsValid() {
		return nil, ErrInvalidStatus
	}

	var total float64
	items := make([]domain.OrderItem, len(req.Items))
	for i, it := range req.Items {
		quantity := it.Quantity
		if quantity < 1 {
			quantity = 1
		}
		total += it.Price * float64(quantity)

		items[i] = domain.OrderItem{
			ProductID:  it.ProductID,
			ServiceID:  it.ServiceID,
			MaterialID: it.MaterialID,
			Name:       it.Name,
			Quantity:   quantity,
			Price:      it.Price,
			Notes:      it.Notes,
		}
	}

	status := domain.OrderStatusPending
	if req.DepositAmount > 0 {
		status = domain.OrderStatusDeposited
	}

	order := &domain.Order{
		CustomerID:    req.CustomerID,
		Type:          orderType,
		Status:        status,
		TotalAmount:   total,
		DepositAmount: req.DepositAmount,
		Notes:         req.Notes,
		Items:         items,
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
		zap.Float64("total_amount", order.TotalAmount),
	)

	return s.GetOrder(ctx, order.ID)
}

// GetOrder returns the full order aggregate
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.OrderWithItemsDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	dto := mapper.ToOrderWithItemsDTO(order)
	return &dto, nil
}

// UpdateStatus moves the order to a new status
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *domain.UpdateOrderStatusRequest) (*domain.OrderWithItemsDTO, error) {
	if !req.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.orderRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return s.GetOrder(ctx, id)
}

// DeleteOrder removes an order and its items. Deleting an unknown id is not
// an error.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (s *OrderService) ListOrders(ctx context.Context, filter OrderListFilter) ([]domain.OrderDTO, domain.Pagination, error) {
	page, limit := clampPage(filter.Page, filter.Limit, defaultOrderPageSize)

	scope := repository.ListScope{
		Filters: map[string]interface{}{},
		Page:    page,
		Limit:   limit,
	}
	if filter.CustomerID != nil {
		scope.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != "" {
		scope.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		scope.Filters["type"] = filter.Type
	}

	orders, total, err := s.orderRepo.List(ctx, scope)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list orders: %w", err)
	}

	dtos := make([]domain.OrderDTO, len(orders))
	for i := range orders {
		dtos[i] = mapper.ToOrderDTO(&orders[i])
	}
	return dtos, newPagination(page, limit, total), nil
}
