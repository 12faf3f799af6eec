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

const defaultProductPageSize = 20

// ProductListFilter narrows the product list
type ProductListFilter struct {
	CustomerID *uuid.UUID
	Status     string
	Search     string
	Page       int
	Limit      int
}

type ProductService struct {
	productRepo  *repository.ProductRepository
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewProductService(
	productRepo *repository.ProductRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *domain.CreateProductRequest) (*domain.ProductDTO, error) {
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	status := req.Status
	if status == "" {
		status = domain.ProductStatusInProgress
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	product := &domain.Product{
		CustomerID:  req.CustomerID,
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Color:       req.Color,
		Images:      domain.StringList(req.Images),
		Status:      status,
		Notes:       req.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	dto := mapper.ToProductDTO(product)
	return &dto, nil
}

// GetProduct returns a product with its customer and workflow count
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.ProductWithDetailsDTO, error) {
	product, err := s.productRepo.GetWithCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	workflows, err := s.productRepo.WorkflowsCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count workflows: %w", err)
	}

	dto := mapper.ToProductWithDetailsDTO(product, workflows)
	return &dto, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *domain.UpdateProductRequest) (*domain.ProductDTO, error) {
	if !req.HasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Color != nil {
		product.Color = *req.Color
	}
	if req.Images != nil {
		product.Images = domain.StringList(*req.Images)
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		product.Status = *req.Status
	}
	if req.Notes != nil {
		product.Notes = *req.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	dto := mapper.ToProductDTO(product)
	return &dto, nil
}

// DeleteProduct removes a product. Deleting an unknown id is not an error.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter ProductListFilter) ([]domain.ProductDTO, domain.Pagination, error) {
	page, limit := clampPage(filter.Page, filter.Limit, defaultProductPageSize)

	scope := repository.ListScope{
		Filters:       map[string]interface{}{},
		Search:        filter.Search,
		SearchColumns: []string{"name", "brand"},
		Page:          page,
		Limit:         limit,
	}
	if filter.CustomerID != nil {
		scope.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != "" {
		scope.Filters["status"] = filter.Status
	}

	products, total, err := s.productRepo.List(ctx, scope)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list products: %w", err)
	}

	dtos := make([]domain.ProductDTO, len(products))
	for i := range products {
		dtos[i] = mapper.ToProductDTO(&products[i])
	}
	return dtos, newPagination(page, limit, total), nil
}
