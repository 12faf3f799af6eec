package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithItems inserts the order header and its items atomically
func (r *OrderRepository) CreateWithItems(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Service").
		Preload("Items.Material").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, "id = ?", id).Error
	})
}

func (r *OrderRepository) List(ctx context.Context, scope ListScope) ([]domain.Order, int64, error) {
	var orders []domain.Order
	var total int64

	query := applyScope(r.db.WithContext(ctx).Model(&domain.Order{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPage(query, scope).
		Preload("Customer").
		Preload("Items").
		Find(&orders).Error
	return orders, total, err
}
