package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.WithContext(ctx).
		Preload("AssignedUser").
		First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// GetWithActivities loads a lead with its activity log, newest first
func (r *LeadRepository) GetWithActivities(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.WithContext(ctx).
		Preload("AssignedUser").
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Activities.Creator").
		First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *LeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Lead{}, "id = ?", id).Error
}

func (r *LeadRepository) List(ctx context.Context, scope ListScope) ([]domain.Lead, int64, error) {
	var leads []domain.Lead
	var total int64

	query := applyScope(r.db.WithContext(ctx).Model(&domain.Lead{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPage(query, scope).Preload("AssignedUser").Find(&leads).Error
	return leads, total, err
}

func (r *LeadRepository) AddActivity(ctx context.Context, activity *domain.LeadActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *LeadRepository) GetActivity(ctx context.Context, id uuid.UUID) (*domain.LeadActivity, error) {
	var activity domain.LeadActivity
	err := r.db.WithContext(ctx).Preload("Creator").First(&activity, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *LeadRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
