package service

import "errors"

// Common service errors
var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when registering with an email that is taken
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAdminRegistration is returned when self-registering as ADMIN
	ErrAdminRegistration = errors.New("admin accounts cannot be self-registered")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrLeadAlreadyConverted is returned when a lead already has a customer
	ErrLeadAlreadyConverted = errors.New("lead already converted to a customer")

	// ErrCustomerNotFound is returned when a customer is not found
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrProductNotFound is returned when a product is not found
	ErrProductNotFound = errors.New("product not found")

	// ErrServiceNotFound is returned when a catalog service is not found
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvoiceNotFound is returned when an invoice is not found
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvoiceItemNotFound is returned when an invoice item is not found
	ErrInvoiceItemNotFound = errors.New("invoice item not found")

	// ErrOrderNotFound is returned when an order is not found
	ErrOrderNotFound = errors.New("order not found")

	// ErrWorkflowNotFound is returned when a workflow is not found
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrStageNotFound is returned when a workflow stage is not found
	ErrStageNotFound = errors.New("workflow stage not found")

	// ErrTaskNotFound is returned when a workflow task is not found
	ErrTaskNotFound = errors.New("workflow task not found")

	// ErrMaterialNotFound is returned when an inventory material is not found
	ErrMaterialNotFound = errors.New("material not found")

	// ErrTransactionNotFound is returned when a finance transaction is not found
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNoFieldsToUpdate is returned when an update request carries no fields
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrNoItems is returned when an invoice or order is created without items
	ErrNoItems = errors.New("at least one item is required")

	// ErrInvalidStatus is returned when a status value is not a known enum value
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrInvalidExpiryDate is returned when an expiry date is not YYYY-MM-DD
	ErrInvalidExpiryDate = errors.New("invalid expiry date")
)
