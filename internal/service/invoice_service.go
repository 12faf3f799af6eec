package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/mapper"
	"github.com/atelier-vn/shop-api/internal/repository"
)

const defaultInvoicePageSize = 20

// InvoiceListFilter narrows the invoice list
type InvoiceListFilter struct {
	CustomerID *uuid.UUID
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

type InvoiceService struct {
	invoiceRepo  *repository.InvoiceRepository
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewInvoiceService(
	invoiceRepo *repository.InvoiceRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// newInvoiceNo builds an invoice number of the form INV-YYYYMMDD-XXXX
// where XXXX is a random four digit suffix.
func newInvoiceNo(now time.Time) string {
	return fmt.Sprintf("INV-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}

// itemQRCode encodes the invoice number and item references for label printing
func itemQRCode(invoiceNo string, productID, serviceID *uuid.UUID) string {
	productPart := ""
	if productID != nil {
		productPart = productID.String()
	}
	servicePart := ""
	if serviceID != nil {
		servicePart = serviceID.String()
	}
	return invoiceNo + "|" + productPart + "|" + servicePart
}

// CreateInvoice creates an invoice with its items. The total is the sum of
// price times quantity over all items.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.InvoiceWithItemsDTO, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	status := req.Status
	if status == "" {
		status = domain.InvoiceStatusPending
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	invoiceNo := newInvoiceNo(time.Now())

	var total float64
	items := make([]domain.InvoiceItem, len(req.Items))
	for i, it := range req.Items {
		quantity := it.Quantity
		if quantity < 1 {
			quantity = 1
		}
		total += it.Price * float64(quantity)

		items[i] = domain.InvoiceItem{
			ProductID: it.ProductID,
			ServiceID: it.ServiceID,
			Name:      it.Name,
			Quantity:  quantity,
			Price:     it.Price,
			Notes:     it.Notes,
			Images:    domain.StringList(it.Images),
			QRCode:    itemQRCode(invoiceNo, it.ProductID, it.ServiceID),
		}
	}

	invoice := &domain.Invoice{
		InvoiceNo:   invoiceNo,
		CustomerID:  req.CustomerID,
		Status:      status,
		TotalAmount: total,
		Notes:       req.Notes,
		Items:       items,
	}

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_no", invoice.InvoiceNo),
		zap.Float64("total_amount", invoice.TotalAmount),
	)

	return s.GetInvoice(ctx, invoice.ID)
}

// GetInvoice returns the full invoice aggregate with per-product grouping
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*domain.InvoiceWithItemsDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	dto := mapper.ToInvoiceWithItemsDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, req *domain.UpdateInvoiceRequest) (*domain.InvoiceWithItemsDTO, error) {
	if !req.HasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		invoice.Status = *req.Status
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}

	// Save the header alone so item associations are untouched
	invoice.Items = nil
	invoice.Customer = nil
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	return s.GetInvoice(ctx, id)
}

// DeleteInvoice removes an invoice and its items. Deleting an unknown id is
// not an error.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, filter InvoiceListFilter) ([]domain.InvoiceDTO, domain.Pagination, error) {
	page, limit := clampPage(filter.Page, filter.Limit, defaultInvoicePageSize)

	scope := repository.ListScope{
		Filters:   map[string]interface{}{},
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Page:      page,
		Limit:     limit,
	}
	if filter.CustomerID != nil {
		scope.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != "" {
		scope.Filters["status"] = filter.Status
	}

	invoices, total, err := s.invoiceRepo.List(ctx, scope)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list invoices: %w", err)
	}

	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = mapper.ToInvoiceDTO(&invoices[i])
	}
	return dtos, newPagination(page, limit, total), nil
}

// AddItem appends an item to an invoice and returns the updated aggregate
func (s *InvoiceService) AddItem(ctx context.Context, invoiceID uuid.UUID, req *domain.CreateInvoiceItemRequest) (*domain.InvoiceWithItemsDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	item := &domain.InvoiceItem{
		InvoiceID: invoiceID,
		ProductID: req.ProductID,
		ServiceID: req.ServiceID,
		Name:      req.Name,
		Quantity:  quantity,
		Price:     req.Price,
		Notes:     req.Notes,
		Images:    domain.StringList(req.Images),
		QRCode:    itemQRCode(invoice.InvoiceNo, req.ProductID, req.ServiceID),
	}

	if err := s.invoiceRepo.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add invoice item: %w", err)
	}

	return s.GetInvoice(ctx, invoiceID)
}

// UpdateItem updates a line item and returns the updated aggregate
func (s *InvoiceService) UpdateItem(ctx context.Context, invoiceID, itemID uuid.UUID, req *domain.UpdateInvoiceItemRequest) (*domain.InvoiceWithItemsDTO, error) {
	if !req.HasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	item, err := s.invoiceRepo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceItemNotFound
		}
		return nil, fmt.Errorf("failed to get invoice item: %w", err)
	}
	if item.InvoiceID != invoiceID {
		return nil, ErrInvoiceItemNotFound
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if req.Images != nil {
		item.Images = domain.StringList(*req.Images)
	}

	if err := s.invoiceRepo.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update invoice item: %w", err)
	}

	return s.GetInvoice(ctx, invoiceID)
}

// DeleteItem removes a line item and returns the updated aggregate
func (s *InvoiceService) DeleteItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*domain.InvoiceWithItemsDTO, error) {
	if _, err := s.invoiceRepo.GetByID(ctx, invoiceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if err := s.invoiceRepo.DeleteItem(ctx, invoiceID, itemID); err != nil {
		return nil, fmt.Errorf("failed to delete invoice item: %w", err)
	}

	return s.GetInvoice(ctx, invoiceID)
}
