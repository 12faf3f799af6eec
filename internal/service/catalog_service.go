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

const defaultServicePageSize = 100

// CatalogService manages the service catalog offered by the shop
type CatalogService struct {
	serviceRepo *repository.ServiceRepository
	logger      *zap.Logger
}

func NewCatalogService(serviceRepo *repository.ServiceRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

func (s *CatalogService) CreateService(ctx context.Context, req *domain.CreateServiceRequest) (*domain.ServiceDTO, error) {
	item := &domain.ServiceItem{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.serviceRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	dto := mapper.ToServiceDTO(item)
	return &dto, nil
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*domain.ServiceDTO, error) {
	item, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	dto := mapper.ToServiceDTO(item)
	return &dto, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, req *domain.UpdateServiceRequest) (*domain.ServiceDTO, error) {
	if !req.HasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	item, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.serviceRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	dto := mapper.ToServiceDTO(item)
	return &dto, nil
}

// DeleteService removes a catalog entry. Deleting an unknown id is not an error.
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

// ListServices returns catalog entries ordered by category then name
func (s *CatalogService) ListServices(ctx context.Context, category, search string, page, limit int) ([]domain.ServiceDTO, domain.Pagination, error) {
	page, limit = clampPage(page, limit, defaultServicePageSize)

	scope := repository.ListScope{
		Filters:       map[string]interface{}{},
		Search:        search,
		SearchColumns: []string{"name", "description"},
		Order:         "category ASC, name ASC",
		Page:          page,
		Limit:         limit,
	}
	if category != "" {
		scope.Filters["category"] = category
	}

	items, total, err := s.serviceRepo.List(ctx, scope)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list services: %w", err)
	}

	dtos := make([]domain.ServiceDTO, len(items))
	for i := range items {
		dtos[i] = mapper.ToServiceDTO(&items[i])
	}
	return dtos, newPagination(page, limit, total), nil
}
