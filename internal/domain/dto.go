package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	CreatedAt string    `json:"createdAt"` // ISO 8601
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type LeadDTO struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone,omitempty"`
	Email            string     `json:"email,omitempty"`
	Source           LeadSource `json:"source"`
	Status           LeadStatus `json:"status"`
	Notes            string     `json:"notes,omitempty"`
	AssignedTo       *uuid.UUID `json:"assignedTo,omitempty"`
	AssignedUserName string     `json:"assignedUserName,omitempty"`
	CreatedAt        string     `json:"createdAt"`
	UpdatedAt        string     `json:"updatedAt"`
}

// LeadWithActivitiesDTO is the lead detail shape with its activity log
type LeadWithActivitiesDTO struct {
	LeadDTO
	Activities []LeadActivityDTO `json:"activities"`
}

type LeadActivityDTO struct {
	ID          uuid.UUID    `json:"id"`
	LeadID      uuid.UUID    `json:"leadId"`
	Type        ActivityType `json:"type"`
	Content     string       `json:"content"`
	CreatedBy   *uuid.UUID   `json:"createdBy,omitempty"`
	CreatorName string       `json:"creatorName,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

type CustomerDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	Address   string     `json:"address,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	LeadID    *uuid.UUID `json:"leadId,omitempty"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

type ProductDTO struct {
	ID          uuid.UUID     `json:"id"`
	CustomerID  uuid.UUID     `json:"customerId"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Brand       string        `json:"brand,omitempty"`
	Color       string        `json:"color,omitempty"`
	Images      []string      `json:"images"`
	Status      ProductStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

// ProductWithDetailsDTO is the product detail shape
type ProductWithDetailsDTO struct {
	ProductDTO
	Customer       *CustomerDTO `json:"customer,omitempty"`
	WorkflowsCount int64        `json:"workflowsCount"`
}

type ServiceDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type InvoiceDTO struct {
	ID           uuid.UUID     `json:"id"`
	InvoiceNo    string        `json:"invoiceNo"`
	CustomerID   uuid.UUID     `json:"customerId"`
	CustomerName string        `json:"customerName,omitempty"`
	Status       InvoiceStatus `json:"status"`
	TotalAmount  float64       `json:"totalAmount"`
	Notes        string        `json:"notes,omitempty"`
	ItemsCount   int           `json:"itemsCount"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
}

type InvoiceItemDTO struct {
	ID        uuid.UUID  `json:"id"`
	InvoiceID uuid.UUID  `json:"invoiceId"`
	ProductID *uuid.UUID `json:"productId,omitempty"`
	ServiceID *uuid.UUID `json:"serviceId,omitempty"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	Price     float64    `json:"price"`
	Notes     string     `json:"notes,omitempty"`
	Images    []string   `json:"images"`
	QRCode    string     `json:"qrCode,omitempty"`
	CreatedAt string     `json:"createdAt"`
}

// InvoiceGroupItemDTO is one line inside a per-product group
type InvoiceGroupItemDTO struct {
	ID              uuid.UUID  `json:"id"`
	ServiceID       *uuid.UUID `json:"serviceId,omitempty"`
	ServiceName     string     `json:"serviceName,omitempty"`
	ServiceCategory string     `json:"serviceCategory,omitempty"`
	Name            string     `json:"name"`
	Quantity        int        `json:"quantity"`
	Price           float64    `json:"price"`
	Notes           string     `json:"notes,omitempty"`
	Images          []string   `json:"images"`
	QRCode          string     `json:"qrCode,omitempty"`
}

// InvoiceProductGroupDTO groups invoice lines by the product they belong to.
// Lines without a product fall into the "no-product" group.
type InvoiceProductGroupDTO struct {
	ProductID     string                `json:"productId"`
	ProductName   string                `json:"productName,omitempty"`
	ProductImages []string              `json:"productImages,omitempty"`
	Items         []InvoiceGroupItemDTO `json:"items"`
}

// InvoiceWithItemsDTO is the invoice detail shape
type InvoiceWithItemsDTO struct {
	InvoiceDTO
	Customer       *CustomerDTO             `json:"customer,omitempty"`
	Items          []InvoiceItemDTO         `json:"items"`
	ItemsByProduct []InvoiceProductGroupDTO `json:"itemsByProduct"`
}

type OrderDTO struct {
	ID            uuid.UUID   `json:"id"`
	CustomerID    uuid.UUID   `json:"customerId"`
	CustomerName  string      `json:"customerName,omitempty"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Type          OrderType   `json:"type"`
	Status        OrderStatus `json:"status"`
	TotalAmount   float64     `json:"totalAmount"`
	DepositAmount float64     `json:"depositAmount"`
	Notes         string      `json:"notes,omitempty"`
	ItemsCount    int         `json:"itemsCount"`
	CreatedAt     string      `json:"createdAt"`
	UpdatedAt     string      `json:"updatedAt"`
}

type OrderItemDTO struct {
	ID           uuid.UUID  `json:"id"`
	OrderID      uuid.UUID  `json:"orderId"`
	ProductID    *uuid.UUID `json:"productId,omitempty"`
	ProductName  string     `json:"productName,omitempty"`
	ServiceID    *uuid.UUID `json:"serviceId,omitempty"`
	ServiceName  string     `json:"serviceName,omitempty"`
	MaterialID   *uuid.UUID `json:"materialId,omitempty"`
	MaterialName string     `json:"materialName,omitempty"`
	Name         string     `json:"name,omitempty"`
	Quantity     int        `json:"quantity"`
	Price        float64    `json:"price"`
	Notes        string     `json:"notes,omitempty"`
}

// OrderWithItemsDTO is the order detail shape
type OrderWithItemsDTO struct {
	OrderDTO
	Customer *CustomerDTO   `json:"customer,omitempty"`
	Items    []OrderItemDTO `json:"items"`
}

type WorkflowDTO struct {
	ID           uuid.UUID      `json:"id"`
	ProductID    uuid.UUID      `json:"productId"`
	ProductName  string         `json:"productName,omitempty"`
	Name         string         `json:"name"`
	Status       WorkflowStatus `json:"status"`
	CurrentStage string         `json:"currentStage,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	CompletedAt  *string        `json:"completedAt,omitempty"`
	Stages       []StageDTO     `json:"stages"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
}

type StageDTO struct {
	ID               uuid.UUID      `json:"id"`
	WorkflowID       uuid.UUID      `json:"workflowId"`
	Name             string         `json:"name"`
	Order            int            `json:"order"`
	Status           WorkflowStatus `json:"status"`
	AssignedTo       *uuid.UUID     `json:"assignedTo,omitempty"`
	AssignedUserName string         `json:"assignedUserName,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	CompletedAt      *string        `json:"completedAt,omitempty"`
	Tasks            []TaskDTO      `json:"tasks"`
}

type TaskDTO struct {
	ID        uuid.UUID `json:"id"`
	StageID   uuid.UUID `json:"stageId"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Order     int       `json:"order"`
}

type MaterialDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku,omitempty"`
	Category    string    `json:"category"`
	Unit        string    `json:"unit,omitempty"`
	Quantity    float64   `json:"quantity"`
	MinQuantity float64   `json:"minQuantity"`
	ExpiryDate  *string   `json:"expiryDate,omitempty"`
	Location    string    `json:"location,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type TransactionDTO struct {
	ID          uuid.UUID         `json:"id"`
	Type        TransactionType   `json:"type"`
	Amount      float64           `json:"amount"`
	Category    string            `json:"category,omitempty"`
	Description string            `json:"description,omitempty"`
	Status      TransactionStatus `json:"status"`
	InvoiceID   *uuid.UUID        `json:"invoiceId,omitempty"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

// FinanceSummaryDTO totals revenue and expense over the active list filter
type FinanceSummaryDTO struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalExpense float64 `json:"totalExpense"`
}

// Dashboard DTOs

type DashboardOverviewDTO struct {
	TotalLeads         int64   `json:"totalLeads"`
	TotalCustomers     int64   `json:"totalCustomers"`
	ProductsInProgress int64   `json:"productsInProgress"`
	MonthlyRevenue     float64 `json:"monthlyRevenue"`
	YearlyRevenue      float64 `json:"yearlyRevenue"`
	PendingInvoices    int64   `json:"pendingInvoices"`
	ActiveWorkflows    int64   `json:"activeWorkflows"`
	RecentLeads        int64   `json:"recentLeads"`
}

type MonthlyRevenueDTO struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

type DashboardStatsDTO struct {
	Overview       DashboardOverviewDTO `json:"overview"`
	LeadsByStatus  map[string]int64     `json:"leadsByStatus"`
	RevenueByMonth []MonthlyRevenueDTO  `json:"revenueByMonth"`
}

// Report DTOs

type RevenuePeriodDTO struct {
	Period       string  `json:"period"`
	Revenue      float64 `json:"revenue"`
	InvoiceCount int64   `json:"invoiceCount"`
}

type TopItemDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Revenue  float64   `json:"revenue"`
	Quantity int64     `json:"quantity"`
}

type TopCustomerDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	InvoiceCount int64     `json:"invoiceCount"`
	TotalSpent   float64   `json:"totalSpent"`
}

type NewCustomersDTO struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

type ReportSummaryDTO struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalInvoices       int64   `json:"totalInvoices"`
	TotalNewCustomers   int64   `json:"totalNewCustomers"`
	AverageInvoiceValue float64 `json:"averageInvoiceValue"`
}

type ComprehensiveReportDTO struct {
	Revenue      []RevenuePeriodDTO `json:"revenue"`
	TopProducts  []TopItemDTO       `json:"topProducts"`
	TopServices  []TopItemDTO       `json:"topServices"`
	TopCustomers []TopCustomerDTO   `json:"topCustomers"`
	NewCustomers []NewCustomersDTO  `json:"newCustomers"`
	Summary      ReportSummaryDTO   `json:"summary"`
}

// UploadResultDTO is returned by the image upload endpoint
type UploadResultDTO struct {
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Pagination describes the page window of a list response
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// SuccessResponse is returned by delete endpoints
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Request DTOs

type RegisterRequest struct {
	Email    string   `json:"email" validate:"required,email,max=255"`
	Password string   `json:"password" validate:"required,min=6,max=72"`
	Name     string   `json:"name" validate:"required,max=200"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateLeadRequest struct {
	Name       string     `json:"name" validate:"required,max=200"`
	Phone      string     `json:"phone,omitempty" validate:"max=50"`
	Email      string     `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Source     LeadSource `json:"source,omitempty"`
	Status     LeadStatus `json:"status,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	AssignedTo *uuid.UUID `json:"assignedTo,omitempty"`
}

type UpdateLeadRequest struct {
	Name       *string     `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone      *string     `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email      *string     `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Source     *LeadSource `json:"source,omitempty"`
	Status     *LeadStatus `json:"status,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
	AssignedTo *uuid.UUID  `json:"assignedTo,omitempty"`
}

// HasFields reports whether the request carries at least one field to change
func (r *UpdateLeadRequest) HasFields() bool {
	return r.Name != nil || r.Phone != nil || r.Email != nil || r.Source != nil ||
		r.Status != nil || r.Notes != nil || r.AssignedTo != nil
}

type AddLeadActivityRequest struct {
	Type    ActivityType `json:"type" validate:"required"`
	Content string       `json:"content" validate:"required"`
}

type ConvertLeadRequest struct {
	Name    string `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email   string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Address string `json:"address,omitempty" validate:"omitempty,max=500"`
	Notes   string `json:"notes,omitempty"`
}

type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Email   string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Address string `json:"address,omitempty" validate:"max=500"`
	Notes   string `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Notes   *string `json:"notes,omitempty"`
}

func (r *UpdateCustomerRequest) HasFields() bool {
	return r.Name != nil || r.Phone != nil || r.Email != nil || r.Address != nil || r.Notes != nil
}

type CreateProductRequest struct {
	CustomerID  uuid.UUID     `json:"customerId" validate:"required"`
	Name        string        `json:"name" validate:"required,max=200"`
	Description string        `json:"description,omitempty"`
	Brand       string        `json:"brand,omitempty" validate:"max=100"`
	Color       string        `json:"color,omitempty" validate:"max=50"`
	Images      []string      `json:"images,omitempty"`
	Status      ProductStatus `json:"status,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string        `json:"description,omitempty"`
	Brand       *string        `json:"brand,omitempty" validate:"omitempty,max=100"`
	Color       *string        `json:"color,omitempty" validate:"omitempty,max=50"`
	Images      *[]string      `json:"images,omitempty"`
	Status      *ProductStatus `json:"status,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

func (r *UpdateProductRequest) HasFields() bool {
	return r.Name != nil || r.Description != nil || r.Brand != nil || r.Color != nil ||
		r.Images != nil || r.Status != nil || r.Notes != nil
}

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Category    string  `json:"category" validate:"required,max=100"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty" validate:"gte=0"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

func (r *UpdateServiceRequest) HasFields() bool {
	return r.Name != nil || r.Category != nil || r.Description != nil ||
		r.Price != nil || r.IsActive != nil
}

type CreateInvoiceItemRequest struct {
	ProductID *uuid.UUID `json:"productId,omitempty"`
	ServiceID *uuid.UUID `json:"serviceId,omitempty"`
	Name      string     `json:"name" validate:"required,max=200"`
	Quantity  int        `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Price     float64    `json:"price,omitempty" validate:"gte=0"`
	Notes     string     `json:"notes,omitempty"`
	Images    []string   `json:"images,omitempty"`
}

type CreateInvoiceRequest struct {
	CustomerID uuid.UUID                  `json:"customerId" validate:"required"`
	Status     InvoiceStatus              `json:"status,omitempty"`
	Notes      string                     `json:"notes,omitempty"`
	Items      []CreateInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateInvoiceRequest struct {
	Status *InvoiceStatus `json:"status,omitempty"`
	Notes  *string        `json:"notes,omitempty"`
}

func (r *UpdateInvoiceRequest) HasFields() bool {
	return r.Status != nil || r.Notes != nil
}

type UpdateInvoiceItemRequest struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,max=200"`
	Quantity *int      `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Price    *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Notes    *string   `json:"notes,omitempty"`
	Images   *[]string `json:"images,omitempty"`
}

func (r *UpdateInvoiceItemRequest) HasFields() bool {
	return r.Name != nil || r.Quantity != nil || r.Price != nil ||
		r.Notes != nil || r.Images != nil
}

type CreateOrderItemRequest struct {
	ProductID  *uuid.UUID `json:"productId,omitempty"`
	ServiceID  *uuid.UUID `json:"serviceId,omitempty"`
	MaterialID *uuid.UUID `json:"materialId,omitempty"`
	Name       string     `json:"name,omitempty" validate:"max=200"`
	Quantity   int        `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Price      float64    `json:"price,omitempty" validate:"gte=0"`
	Notes      string     `json:"notes,omitempty"`
}

type CreateOrderRequest struct {
	CustomerID    uuid.UUID                `json:"customerId" validate:"required"`
	Type          OrderType                `json:"type,omitempty"`
	DepositAmount float64                  `json:"depositAmount,omitempty" validate:"gte=0"`
	Notes         string                   `json:"notes,omitempty"`
	Items         []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}

type CreateStageRequest struct {
	Name       string         `json:"name" validate:"required,max=200"`
	Order      int            `json:"order,omitempty"`
	Status     WorkflowStatus `json:"status,omitempty"`
	AssignedTo *uuid.UUID     `json:"assignedTo,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	Tasks      []string       `json:"tasks,omitempty"`
}

type CreateWorkflowRequest struct {
	ProductID    uuid.UUID            `json:"productId" validate:"required"`
	Name         string               `json:"name" validate:"required,max=200"`
	CurrentStage string               `json:"currentStage,omitempty" validate:"max=200"`
	Notes        string               `json:"notes,omitempty"`
	Stages       []CreateStageRequest `json:"stages,omitempty" validate:"omitempty,dive"`
}

type UpdateWorkflowRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=200"`
	CurrentStage *string `json:"currentStage,omitempty" validate:"omitempty,max=200"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *UpdateWorkflowRequest) HasFields() bool {
	return r.Name != nil || r.CurrentStage != nil || r.Notes != nil
}

type UpdateStageStatusRequest struct {
	Status WorkflowStatus `json:"status" validate:"required"`
}

type AssignStageRequest struct {
	AssignedTo *uuid.UUID `json:"assignedTo"`
}

type AddTaskRequest struct {
	Title string `json:"title" validate:"required,max=300"`
	Order int    `json:"order,omitempty"`
}

type UpdateTaskCompletionRequest struct {
	Completed bool `json:"completed"`
}

type CreateMaterialRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	SKU         string  `json:"sku,omitempty" validate:"max=100"`
	Category    string  `json:"category,omitempty" validate:"max=100"`
	Unit        string  `json:"unit,omitempty" validate:"max=50"`
	Quantity    float64 `json:"quantity,omitempty" validate:"gte=0"`
	MinQuantity float64 `json:"minQuantity,omitempty" validate:"gte=0"`
	ExpiryDate  *string `json:"expiryDate,omitempty"`
	Location    string  `json:"location,omitempty" validate:"max=200"`
	Notes       string  `json:"notes,omitempty"`
}

type UpdateMaterialRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	SKU         *string  `json:"sku,omitempty" validate:"omitempty,max=100"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Unit        *string  `json:"unit,omitempty" validate:"omitempty,max=50"`
	Quantity    *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	MinQuantity *float64 `json:"minQuantity,omitempty" validate:"omitempty,gte=0"`
	ExpiryDate  *string  `json:"expiryDate,omitempty"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	Notes       *string  `json:"notes,omitempty"`
}

func (r *UpdateMaterialRequest) HasFields() bool {
	return r.Name != nil || r.SKU != nil || r.Category != nil || r.Unit != nil ||
		r.Quantity != nil || r.MinQuantity != nil || r.ExpiryDate != nil ||
		r.Location != nil || r.Notes != nil
}

type CreateTransactionRequest struct {
	Type        TransactionType   `json:"type" validate:"required"`
	Amount      float64           `json:"amount" validate:"required,gt=0"`
	Category    string            `json:"category,omitempty" validate:"max=100"`
	Description string            `json:"description,omitempty"`
	Status      TransactionStatus `json:"status,omitempty"`
	InvoiceID   *uuid.UUID        `json:"invoiceId,omitempty"`
}

type UpdateTransactionRequest struct {
	Type        *TransactionType   `json:"type,omitempty"`
	Amount      *float64           `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Category    *string            `json:"category,omitempty" validate:"omitempty,max=100"`
	Description *string            `json:"description,omitempty"`
	Status      *TransactionStatus `json:"status,omitempty"`
	InvoiceID   *uuid.UUID         `json:"invoiceId,omitempty"`
}

func (r *UpdateTransactionRequest) HasFields() bool {
	return r.Type != nil || r.Amount != nil || r.Category != nil ||
		r.Description != nil || r.Status != nil || r.InvoiceID != nil
}
