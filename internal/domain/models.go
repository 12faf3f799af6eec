package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the ID in the application so inserts work the same
// on Postgres and the SQLite test database.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// StringList stores a list of strings as a JSON column
type StringList []string

// Value implements driver.Valuer
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// UserRole represents the role of a user
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User represents an account that can sign in
type User struct {
	BaseModel
	Email    string   `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password string   `gorm:"type:varchar(255);not null"`
	Name     string   `gorm:"type:varchar(200);not null"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'USER'"`
}

// LeadStatus represents the follow-up state of a lead
type LeadStatus string

const (
	LeadStatusReminder        LeadStatus = "CAN_NHAC"
	LeadStatusPhotoPromised   LeadStatus = "HEN_GUI_ANH"
	LeadStatusShopVisit       LeadStatus = "HEN_QUA_SHOP"
	LeadStatusItemPromised    LeadStatus = "HEN_GUI_SAN_PHAM"
	LeadStatusVisited         LeadStatus = "KHACH_TOI_SHOP"
	LeadStatusQuotedNoAnswer  LeadStatus = "DA_BAO_GIA_IM_LANG"
)

// IsValid checks if the LeadStatus is a valid enum value
func (ls LeadStatus) IsValid() bool {
	switch ls {
	case LeadStatusReminder, LeadStatusPhotoPromised, LeadStatusShopVisit,
		LeadStatusItemPromised, LeadStatusVisited, LeadStatusQuotedNoAnswer:
		return true
	}
	return false
}

// LeadSource represents the channel a lead came from
type LeadSource string

const (
	LeadSourceFacebook LeadSource = "FACEBOOK"
	LeadSourceZalo     LeadSource = "ZALO"
	LeadSourceTiktok   LeadSource = "TIKTOK"
	LeadSourceWebsite  LeadSource = "WEBSITE"
	LeadSourceOther    LeadSource = "OTHER"
)

// IsValid checks if the LeadSource is a valid enum value
func (ls LeadSource) IsValid() bool {
	switch ls {
	case LeadSourceFacebook, LeadSourceZalo, LeadSourceTiktok, LeadSourceWebsite, LeadSourceOther:
		return true
	}
	return false
}

// Lead represents a potential customer being followed up
type Lead struct {
	BaseModel
	Name         string         `gorm:"type:varchar(200);not null;index"`
	Phone        string         `gorm:"type:varchar(50)"`
	Email        string         `gorm:"type:varchar(255)"`
	Source       LeadSource     `gorm:"type:varchar(50);not null;default:'OTHER';index"`
	Status       LeadStatus     `gorm:"type:varchar(50);not null;default:'CAN_NHAC';index"`
	Notes        string         `gorm:"type:text"`
	AssignedTo   *uuid.UUID     `gorm:"type:uuid;index;column:assigned_to"`
	AssignedUser *User          `gorm:"foreignKey:AssignedTo"`
	Activities   []LeadActivity `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
}

// ActivityType represents the kind of lead interaction
type ActivityType string

const (
	ActivityTypeCall    ActivityType = "CALL"
	ActivityTypeEmail   ActivityType = "EMAIL"
	ActivityTypeMessage ActivityType = "MESSAGE"
	ActivityTypeNote    ActivityType = "NOTE"
	ActivityTypeMeeting ActivityType = "MEETING"
)

// IsValid checks if the ActivityType is a valid enum value
func (at ActivityType) IsValid() bool {
	switch at {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeMessage, ActivityTypeNote, ActivityTypeMeeting:
		return true
	}
	return false
}

// LeadActivity represents one logged interaction with a lead
type LeadActivity struct {
	BaseModel
	LeadID    uuid.UUID    `gorm:"type:uuid;not null;index;column:lead_id"`
	Lead      *Lead        `gorm:"foreignKey:LeadID"`
	Type      ActivityType `gorm:"type:varchar(50);not null"`
	Content   string       `gorm:"type:text;not null"`
	CreatedBy *uuid.UUID   `gorm:"type:uuid;column:created_by"`
	Creator   *User        `gorm:"foreignKey:CreatedBy"`
}

// Customer represents a converted, paying customer
type Customer struct {
	BaseModel
	Name     string     `gorm:"type:varchar(200);not null;index"`
	Phone    string     `gorm:"type:varchar(50);index"`
	Email    string     `gorm:"type:varchar(255)"`
	Address  string     `gorm:"type:varchar(500)"`
	Notes    string     `gorm:"type:text"`
	LeadID   *uuid.UUID `gorm:"type:uuid;index;column:lead_id"`
	Lead     *Lead      `gorm:"foreignKey:LeadID"`
	Products []Product  `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Invoices []Invoice  `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Orders   []Order    `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// ProductStatus represents the repair state of a customer item
type ProductStatus string

const (
	ProductStatusInProgress ProductStatus = "DANG_LAM"
	ProductStatusDone       ProductStatus = "DA_XONG"
	ProductStatusIssue      ProductStatus = "CO_VAN_DE"
	ProductStatusComplaint  ProductStatus = "KHIEU_NAI"
)

// IsValid checks if the ProductStatus is a valid enum value
func (ps ProductStatus) IsValid() bool {
	switch ps {
	case ProductStatusInProgress, ProductStatusDone, ProductStatusIssue, ProductStatusComplaint:
		return true
	}
	return false
}

// Product represents a customer item received for care or repair
type Product struct {
	BaseModel
	CustomerID  uuid.UUID     `gorm:"type:uuid;not null;index;column:customer_id"`
	Customer    *Customer     `gorm:"foreignKey:CustomerID"`
	Name        string        `gorm:"type:varchar(200);not null;index"`
	Description string        `gorm:"type:text"`
	Brand       string        `gorm:"type:varchar(100)"`
	Color       string        `gorm:"type:varchar(50)"`
	Images      StringList    `gorm:"type:jsonb"`
	Status      ProductStatus `gorm:"type:varchar(50);not null;default:'DANG_LAM';index"`
	Notes       string        `gorm:"type:text"`
	Workflows   []Workflow    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ServiceItem represents an entry in the service catalog
type ServiceItem struct {
	BaseModel
	Name        string  `gorm:"type:varchar(200);not null;index"`
	Category    string  `gorm:"type:varchar(100);not null;index"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"type:decimal(15,2);not null;default:0"`
	IsActive    bool    `gorm:"not null;default:true;column:is_active"`
}

// TableName overrides the default table name
func (ServiceItem) TableName() string {
	return "services"
}

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the InvoiceStatus is a valid enum value
func (is InvoiceStatus) IsValid() bool {
	switch is {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice represents a bill issued to a customer
type Invoice struct {
	BaseModel
	InvoiceNo   string        `gorm:"type:varchar(50);not null;index;column:invoice_no"`
	CustomerID  uuid.UUID     `gorm:"type:uuid;not null;index;column:customer_id"`
	Customer    *Customer     `gorm:"foreignKey:CustomerID"`
	Status      InvoiceStatus `gorm:"type:varchar(50);not null;default:'PENDING';index"`
	TotalAmount float64       `gorm:"type:decimal(15,2);not null;default:0;column:total_amount"`
	Notes       string        `gorm:"type:text"`
	Items       []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceItem represents one line on an invoice
type InvoiceItem struct {
	BaseModel
	InvoiceID uuid.UUID    `gorm:"type:uuid;not null;index;column:invoice_id"`
	Invoice   *Invoice     `gorm:"foreignKey:InvoiceID"`
	ProductID *uuid.UUID   `gorm:"type:uuid;index;column:product_id"`
	Product   *Product     `gorm:"foreignKey:ProductID"`
	ServiceID *uuid.UUID   `gorm:"type:uuid;index;column:service_id"`
	Service   *ServiceItem `gorm:"foreignKey:ServiceID"`
	Name      string       `gorm:"type:varchar(200);not null"`
	Quantity  int          `gorm:"not null;default:1"`
	Price     float64      `gorm:"type:decimal(15,2);not null;default:0"`
	Notes     string       `gorm:"type:text"`
	Images    StringList   `gorm:"type:jsonb"`
	QRCode    string       `gorm:"type:varchar(200);column:qr_code"`
}

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusDeposited  OrderStatus = "DEPOSITED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the OrderStatus is a valid enum value
func (os OrderStatus) IsValid() bool {
	switch os {
	case OrderStatusPending, OrderStatusDeposited, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderType represents the kind of order
type OrderType string

const (
	OrderTypeService OrderType = "SERVICE"
	OrderTypeRetail  OrderType = "RETAIL"
	OrderTypeMixed   OrderType = "MIXED"
)

// IsValid checks if the OrderType is a valid enum value
func (ot OrderType) IsValid() bool {
	switch ot {
	case OrderTypeService, OrderTypeRetail, OrderTypeMixed:
		return true
	}
	return false
}

// Order represents a customer order, optionally taken with a deposit
type Order struct {
	BaseModel
	CustomerID    uuid.UUID   `gorm:"type:uuid;not null;index;column:customer_id"`
	Customer      *Customer   `gorm:"foreignKey:CustomerID"`
	Type          OrderType   `gorm:"type:varchar(50);not null;default:'SERVICE'"`
	Status        OrderStatus `gorm:"type:varchar(50);not null;default:'PENDING';index"`
	TotalAmount   float64     `gorm:"type:decimal(15,2);not null;default:0;column:total_amount"`
	DepositAmount float64     `gorm:"type:decimal(15,2);not null;default:0;column:deposit_amount"`
	Notes         string      `gorm:"type:text"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem represents one line on an order
type OrderItem struct {
	BaseModel
	OrderID    uuid.UUID    `gorm:"type:uuid;not null;index;column:order_id"`
	Order      *Order       `gorm:"foreignKey:OrderID"`
	ProductID  *uuid.UUID   `gorm:"type:uuid;column:product_id"`
	Product    *Product     `gorm:"foreignKey:ProductID"`
	ServiceID  *uuid.UUID   `gorm:"type:uuid;column:service_id"`
	Service    *ServiceItem `gorm:"foreignKey:ServiceID"`
	MaterialID *uuid.UUID   `gorm:"type:uuid;column:material_id"`
	Material   *Material    `gorm:"foreignKey:MaterialID"`
	Name       string       `gorm:"type:varchar(200)"`
	Quantity   int          `gorm:"not null;default:1"`
	Price      float64      `gorm:"type:decimal(15,2);not null;default:0"`
	Notes      string       `gorm:"type:text"`
}

// WorkflowStatus represents the state of a workflow or a stage
type WorkflowStatus string

const (
	WorkflowStatusPending    WorkflowStatus = "PENDING"
	WorkflowStatusInProgress WorkflowStatus = "IN_PROGRESS"
	WorkflowStatusCompleted  WorkflowStatus = "COMPLETED"
	WorkflowStatusBlocked    WorkflowStatus = "BLOCKED"
)

// IsValid checks if the WorkflowStatus is a valid enum value
func (ws WorkflowStatus) IsValid() bool {
	switch ws {
	case WorkflowStatusPending, WorkflowStatusInProgress, WorkflowStatusCompleted, WorkflowStatusBlocked:
		return true
	}
	return false
}

// Workflow represents the production pipeline for one product
type Workflow struct {
	BaseModel
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index;column:product_id"`
	Product      *Product        `gorm:"foreignKey:ProductID"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Status       WorkflowStatus  `gorm:"type:varchar(50);not null;default:'PENDING';index"`
	CurrentStage string          `gorm:"type:varchar(200);column:current_stage"`
	Notes        string          `gorm:"type:text"`
	CompletedAt  *time.Time      `gorm:"column:completed_at"`
	Stages       []WorkflowStage `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE"`
}

// WorkflowStage represents one ordered step of a workflow
type WorkflowStage struct {
	BaseModel
	WorkflowID   uuid.UUID      `gorm:"type:uuid;not null;index;column:workflow_id"`
	Workflow     *Workflow      `gorm:"foreignKey:WorkflowID"`
	Name         string         `gorm:"type:varchar(200);not null"`
	StageOrder   int            `gorm:"not null;default:0;column:stage_order"`
	Status       WorkflowStatus `gorm:"type:varchar(50);not null;default:'PENDING'"`
	AssignedTo   *uuid.UUID     `gorm:"type:uuid;column:assigned_to"`
	AssignedUser *User          `gorm:"foreignKey:AssignedTo"`
	Notes        string         `gorm:"type:text"`
	CompletedAt  *time.Time     `gorm:"column:completed_at"`
	Tasks        []WorkflowTask `gorm:"foreignKey:StageID;constraint:OnDelete:CASCADE"`
}

// WorkflowTask represents a checklist item inside a stage
type WorkflowTask struct {
	BaseModel
	StageID   uuid.UUID      `gorm:"type:uuid;not null;index;column:stage_id"`
	Stage     *WorkflowStage `gorm:"foreignKey:StageID"`
	Title     string         `gorm:"type:varchar(300);not null"`
	Completed bool           `gorm:"not null;default:false"`
	TaskOrder int            `gorm:"not null;default:0;column:task_order"`
}

// DefaultStageNames are the stages created when a workflow has none specified
var DefaultStageNames = []string{"Vệ sinh", "Khâu vá", "Phục hồi màu", "Xi mạ"}

// Material represents a consumable tracked in inventory
type Material struct {
	BaseModel
	Name        string     `gorm:"type:varchar(200);not null;index"`
	SKU         string     `gorm:"type:varchar(100);index;column:sku"`
	Category    string     `gorm:"type:varchar(100);not null;default:'OTHER';index"`
	Unit        string     `gorm:"type:varchar(50)"`
	Quantity    float64    `gorm:"type:decimal(15,2);not null;default:0"`
	MinQuantity float64    `gorm:"type:decimal(15,2);not null;default:0;column:min_quantity"`
	ExpiryDate  *time.Time `gorm:"type:date;column:expiry_date"`
	Location    string     `gorm:"type:varchar(200)"`
	Notes       string     `gorm:"type:text"`
}

// TransactionType represents the direction of a finance transaction
type TransactionType string

const (
	TransactionTypeRevenue TransactionType = "REVENUE"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// IsValid checks if the TransactionType is a valid enum value
func (tt TransactionType) IsValid() bool {
	switch tt {
	case TransactionTypeRevenue, TransactionTypeExpense:
		return true
	}
	return false
}

// TransactionStatus represents the approval state of a finance transaction
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusApproved TransactionStatus = "APPROVED"
	TransactionStatusRejected TransactionStatus = "REJECTED"
	TransactionStatusPaid     TransactionStatus = "PAID"
)

// IsValid checks if the TransactionStatus is a valid enum value
func (ts TransactionStatus) IsValid() bool {
	switch ts {
	case TransactionStatusPending, TransactionStatusApproved, TransactionStatusRejected, TransactionStatusPaid:
		return true
	}
	return false
}

// Transaction represents a finance ledger entry
type Transaction struct {
	BaseModel
	Type        TransactionType   `gorm:"type:varchar(50);not null;index"`
	Amount      float64           `gorm:"type:decimal(15,2);not null"`
	Category    string            `gorm:"type:varchar(100)"`
	Description string            `gorm:"type:text"`
	Status      TransactionStatus `gorm:"type:varchar(50);not null;default:'PENDING';index"`
	InvoiceID   *uuid.UUID        `gorm:"type:uuid;index;column:invoice_id"`
	Invoice     *Invoice          `gorm:"foreignKey:InvoiceID"`
}
