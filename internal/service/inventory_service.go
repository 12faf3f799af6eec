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

const (
	defaultMaterialPageSize = 50
	expiryDateLayout        = "2006-01-02"
)

// InventoryService manages the material stock of the shop
type InventoryService struct {
	materialRepo *repository.MaterialRepository
	logger       *zap.Logger
}

func NewInventoryService(materialRepo *repository.MaterialRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		materialRepo: materialRepo,
		logger:       logger,
	}
}

func parseExpiryDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(expiryDateLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExpiryDate, *value)
	}
	return &t, nil
}

func (s *InventoryService) CreateMaterial(ctx context.Context, req *domain.CreateMaterialRequest) (*domain.MaterialDTO, error) {
	expiry, err := parseExpiryDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = "OTHER"
	}

	material := &domain.Material{
		Name:        req.Name,
		SKU:         req.SKU,
		Category:    category,
		Unit:        req.Unit,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		ExpiryDate:  expiry,
		Location:    req.Location,
		Notes:       req.Notes,
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	dto := mapper.ToMaterialDTO(material)
	return &dto, nil
}

func (s *InventoryService) GetMaterial(ctx context.Context, id uuid.UUID) (*domain.MaterialDTO, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	dto := mapper.ToMaterialDTO(material)
	return &dto, nil
}

func (s *InventoryService) UpdateMaterial(ctx context.Context, id uuid.UUID, req *domain.UpdateMaterialRequest) (*domain.MaterialDTO, error) {
	if !req.HasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	if req.Name != nil {
		material.Name = *req.Name
	}
	if req.SKU != nil {
		material.SKU = *req.SKU
	}
	if req.Category != nil {
		material.Category = *req.Category
	}
	if req.Unit != nil {
		material.Unit = *req.Unit
	}
	if req.Quantity != nil {
		material.Quantity = *req.Quantity
	}
	if req.MinQuantity != nil {
		material.MinQuantity = *req.MinQuantity
	}
	if req.ExpiryDate != nil {
		expiry, err := parseExpiryDate(req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		material.ExpiryDate = expiry
	}
	if req.Location != nil {
		material.Location = *req.Location
	}
	if req.Notes != nil {
		material.Notes = *req.Notes
	}

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to update material: %w", err)
	}

	dto := mapper.ToMaterialDTO(material)
	return &dto, nil
}

// DeleteMaterial removes a material. Deleting an unknown id is not an error.
func (s *InventoryService) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}

func (s *InventoryService) ListMaterials(ctx context.Context, category, search string, page, limit int) ([]domain.MaterialDTO, domain.Pagination, error) {
	page, limit = clampPage(page, limit, defaultMaterialPageSize)

	scope := repository.ListScope{
		Filters:       map[string]interface{}{},
		Search:        search,
		SearchColumns: []string{"name", "sku"},
		Page:          page,
		Limit:         limit,
	}
	if category != "" {
		scope.Filters["category"] = category
	}

	materials, total, err := s.materialRepo.List(ctx, scope)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list materials: %w", err)
	}

	dtos := make([]domain.MaterialDTO, len(materials))
	for i := range materials {
		dtos[i] = mapper.ToMaterialDTO(&materials[i])
	}
	return dtos, newPagination(page, limit, total), nil
}

// ListLowStock returns materials at or below their minimum quantity
func (s *InventoryService) ListLowStock(ctx context.Context) ([]domain.MaterialDTO, error) {
	materials, err := s.materialRepo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock materials: %w", err)
	}

	dtos := make([]domain.MaterialDTO, len(materials))
	for i := range materials {
		dtos[i] = mapper.ToMaterialDTO(&materials[i])
	}
	return dtos, nil
}
