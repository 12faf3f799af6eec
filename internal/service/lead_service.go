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

const defaultLeadPageSize = 20

// LeadListFilter narrows the lead list
type LeadListFilter struct {
	Status     string
	Source     string
	AssignedTo *uuid.UUID
	Search     string
	Page       int
	Limit      int
}

type LeadService struct {
	leadRepo     *repository.LeadRepository
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewLeadService(
	leadRepo *repository.LeadRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		leadRepo:     leadRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *LeadService) CreateLead(ctx context.Context, req *domain.CreateLeadRequest) (*domain.LeadDTO, error) {
	lead := &domain.Lead{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Source:     req.Source,
		Status:     req.Status,
		Notes:      req.Notes,
		AssignedTo: req.AssignedTo,
	}
	if lead.Source == "" {
		lead.Source = domain.LeadSourceOther
	}
	if lead.Status == "" {
		lead.Status = domain.LeadStatusReminder
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	created, err := s.leadRepo.GetByID(ctx, lead.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}

	dto := mapper.ToLeadDTO(created)
	return &dto, nil
}

// GetLead returns a lead with its activity log
func (s *LeadService) GetLead(ctx context.Context, id uuid.UUID) (*domain.LeadWithActivitiesDTO, error) {
	lead, err := s.leadRepo.GetWithActivities(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	dto := mapper.ToLeadWithActivitiesDTO(lead)
	return &dto, nil
}

func (s *LeadService) UpdateLead(ctx context.Context, id uuid.UUID, req *domain.UpdateLeadRequest) (*domain.LeadDTO, error) {
	if !req.HasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Source != nil {
		if !req.Source.IsValid() {
			return nil, ErrInvalidStatus
		}
		lead.Source = *req.Source
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		lead.Status = *req.Status
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	if req.AssignedTo != nil {
		lead.AssignedTo = req.AssignedTo
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	updated, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}

	dto := mapper.ToLeadDTO(updated)
	return &dto, nil
}

// DeleteLead removes a lead. Deleting an unknown id is not an error.
func (s *LeadService) DeleteLead(ctx context.Context, id uuid.UUID) error {
	if err := s.leadRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return nil
}

func (s *LeadService) ListLeads(ctx context.Context, filter LeadListFilter) ([]domain.LeadDTO, domain.Pagination, error) {
	page, limit := clampPage(filter.Page, filter.Limit, defaultLeadPageSize)

	scope := repository.ListScope{
		Filters:       map[string]interface{}{},
		Search:        filter.Search,
		SearchColumns: []string{"name", "phone", "email"},
		Page:          page,
		Limit:         limit,
	}
	if filter.Status != "" {
		scope.Filters["status"] = filter.Status
	}
	if filter.Source != "" {
		scope.Filters["source"] = filter.Source
	}
	if filter.AssignedTo != nil {
		scope.Filters["assigned_to"] = *filter.AssignedTo
	}

	leads, total, err := s.leadRepo.List(ctx, scope)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list leads: %w", err)
	}

	dtos := make([]domain.LeadDTO, len(leads))
	for i := range leads {
		dtos[i] = mapper.ToLeadDTO(&leads[i])
	}
	return dtos, newPagination(page, limit, total), nil
}

// AddActivity appends an entry to the lead's activity log
func (s *LeadService) AddActivity(ctx context.Context, leadID uuid.UUID, userID *uuid.UUID, req *domain.AddLeadActivityRequest) (*domain.LeadActivityDTO, error) {
	if !req.Type.IsValid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.leadRepo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	activity := &domain.LeadActivity{
		LeadID:    leadID,
		Type:      req.Type,
		Content:   req.Content,
		CreatedBy: userID,
	}
	if err := s.leadRepo.AddActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to add activity: %w", err)
	}

	created, err := s.leadRepo.GetActivity(ctx, activity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload activity: %w", err)
	}

	dto := mapper.ToLeadActivityDTO(created)
	return &dto, nil
}

// ConvertToCustomer creates a customer from a lead. Request fields override
// the lead's values. A lead can be converted at most once.
func (s *LeadService) ConvertToCustomer(ctx context.Context, leadID uuid.UUID, req *domain.ConvertLeadRequest) (*domain.CustomerDTO, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	existing, err := s.customerRepo.GetByLeadID(ctx, leadID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing customer: %w", err)
	}
	if existing != nil {
		return nil, ErrLeadAlreadyConverted
	}

	customer := &domain.Customer{
		Name:   lead.Name,
		Phone:  lead.Phone,
		Email:  lead.Email,
		Notes:  lead.Notes,
		LeadID: &lead.ID,
	}
	if req != nil {
		if req.Name != "" {
			customer.Name = req.Name
		}
		if req.Phone != "" {
			customer.Phone = req.Phone
		}
		if req.Email != "" {
			customer.Email = req.Email
		}
		if req.Address != "" {
			customer.Address = req.Address
		}
		if req.Notes != "" {
			customer.Notes = req.Notes
		}
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("lead converted to customer",
		zap.String("lead_id", leadID.String()),
		zap.String("customer_id", customer.ID.String()),
	)

	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}
