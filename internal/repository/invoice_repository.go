package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// CreateWithItems inserts the invoice header and its items atomically
func (r *InvoiceRepository) CreateWithItems(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// GetByID loads the full invoice aggregate. Items keep insertion order.
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Service").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.InvoiceItem{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Invoice{}, "id = ?", id).Error
	})
}

func (r *InvoiceRepository) List(ctx context.Context, scope ListScope) ([]domain.Invoice, int64, error) {
	var invoices []domain.Invoice
	var total int64

	query := applyScope(r.db.WithContext(ctx).Model(&domain.Invoice{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPage(query, scope).
		Preload("Customer").
		Preload("Items").
		Find(&invoices).Error
	return invoices, total, err
}

// ListPaidSince returns PAID invoices created at or after since, oldest first
func (r *InvoiceRepository) ListPaidSince(ctx context.Context, since time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at >= ?", domain.InvoiceStatusPaid, since).
		Order("created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*domain.InvoiceItem, error) {
	var item domain.InvoiceItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddItem inserts an item and recomputes the header total in one transaction
func (r *InvoiceRepository) AddItem(ctx context.Context, item *domain.InvoiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return recomputeInvoiceTotal(tx, item.InvoiceID)
	})
}

// SaveItem updates an item and recomputes the header total in one transaction
func (r *InvoiceRepository) SaveItem(ctx context.Context, item *domain.InvoiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return recomputeInvoiceTotal(tx, item.InvoiceID)
	})
}

// DeleteItem removes an item and recomputes the header total in one transaction
func (r *InvoiceRepository) DeleteItem(ctx context.Context, invoiceID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.InvoiceItem{}, "id = ? AND invoice_id = ?", itemID, invoiceID).Error; err != nil {
			return err
		}
		return recomputeInvoiceTotal(tx, invoiceID)
	})
}

func recomputeInvoiceTotal(tx *gorm.DB, invoiceID uuid.UUID) error {
	var total float64
	err := tx.Model(&domain.InvoiceItem{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	return tx.Model(&domain.Invoice{}).
		Where("id = ?", invoiceID).
		Update("total_amount", total).Error
}
