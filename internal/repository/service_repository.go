package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
)

// ServiceRepository persists the service catalog
type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, service *domain.ServiceItem) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceItem, error) {
	var service domain.ServiceItem
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepository) Update(ctx context.Context, service *domain.ServiceItem) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ServiceItem{}, "id = ?", id).Error
}

// List returns catalog entries ordered by category then name
func (r *ServiceRepository) List(ctx context.Context, scope ListScope) ([]domain.ServiceItem, int64, error) {
	var services []domain.ServiceItem
	var total int64

	query := applyScope(r.db.WithContext(ctx).Model(&domain.ServiceItem{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPage(query, scope).Find(&services).Error
	return services, total, err
}
