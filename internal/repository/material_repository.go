package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
)

// MaterialRepository persists inventory materials
type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, material *domain.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *MaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	var material domain.Material
	err := r.db.WithContext(ctx).First(&material, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) Update(ctx context.Context, material *domain.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Material{}, "id = ?", id).Error
}

func (r *MaterialRepository) List(ctx context.Context, scope ListScope) ([]domain.Material, int64, error) {
	var materials []domain.Material
	var total int64

	query := applyScope(r.db.WithContext(ctx).Model(&domain.Material{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPage(query, scope).Find(&materials).Error
	return materials, total, err
}

// ListLowStock returns materials at or below their minimum quantity
func (r *MaterialRepository) ListLowStock(ctx context.Context) ([]domain.Material, error) {
	var materials []domain.Material
	err := r.db.WithContext(ctx).
		Where("min_quantity > 0 AND quantity <= min_quantity").
		Order("name ASC").
		Find(&materials).Error
	return materials, err
}
