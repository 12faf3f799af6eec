package mapper

import (
	"time"

	"github.com/atelier-vn/shop-api/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: formatTime(user.CreatedAt),
	}
}

// ToLeadDTO converts Lead to LeadDTO
func ToLeadDTO(lead *domain.Lead) domain.LeadDTO {
	dto := domain.LeadDTO{
		ID:         lead.ID,
		Name:       lead.Name,
		Phone:      lead.Phone,
		Email:      lead.Email,
		Source:     lead.Source,
		Status:     lead.Status,
		Notes:      lead.Notes,
		AssignedTo: lead.AssignedTo,
		CreatedAt:  formatTime(lead.CreatedAt),
		UpdatedAt:  formatTime(lead.UpdatedAt),
	}
	if lead.AssignedUser != nil {
		dto.AssignedUserName = lead.AssignedUser.Name
	}
	return dto
}

// ToLeadWithActivitiesDTO converts a lead with its preloaded activity log
func ToLeadWithActivitiesDTO(lead *domain.Lead) domain.LeadWithActivitiesDTO {
	activities := make([]domain.LeadActivityDTO, len(lead.Activities))
	for i := range lead.Activities {
		activities[i] = ToLeadActivityDTO(&lead.Activities[i])
	}
	return domain.LeadWithActivitiesDTO{
		LeadDTO:    ToLeadDTO(lead),
		Activities: activities,
	}
}

// ToLeadActivityDTO converts LeadActivity to LeadActivityDTO
func ToLeadActivityDTO(activity *domain.LeadActivity) domain.LeadActivityDTO {
	dto := domain.LeadActivityDTO{
		ID:        activity.ID,
		LeadID:    activity.LeadID,
		Type:      activity.Type,
		Content:   activity.Content,
		CreatedBy: activity.CreatedBy,
		CreatedAt: formatTime(activity.CreatedAt),
	}
	if activity.Creator != nil {
		dto.CreatorName = activity.Creator.Name
	}
	return dto
}

// ToCustomerDTO converts Customer to CustomerDTO
func ToCustomerDTO(customer *domain.Customer) domain.CustomerDTO {
	return domain.CustomerDTO{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		Email:     customer.Email,
		Address:   customer.Address,
		Notes:     customer.Notes,
		LeadID:    customer.LeadID,
		CreatedAt: formatTime(customer.CreatedAt),
		UpdatedAt: formatTime(customer.UpdatedAt),
	}
}

// ToProductDTO converts Product to ProductDTO
func ToProductDTO(product *domain.Product) domain.ProductDTO {
	images := product.Images
	if images == nil {
		images = domain.StringList{}
	}
	return domain.ProductDTO{
		ID:          product.ID,
		CustomerID:  product.CustomerID,
		Name:        product.Name,
		Description: product.Description,
		Brand:       product.Brand,
		Color:       product.Color,
		Images:      images,
		Status:      product.Status,
		Notes:       product.Notes,
		CreatedAt:   formatTime(product.CreatedAt),
		UpdatedAt:   formatTime(product.UpdatedAt),
	}
}

// ToProductWithDetailsDTO converts a product with its owner and workflow count
func ToProductWithDetailsDTO(product *domain.Product, workflowsCount int64) domain.ProductWithDetailsDTO {
	dto := domain.ProductWithDetailsDTO{
		ProductDTO:     ToProductDTO(product),
		WorkflowsCount: workflowsCount,
	}
	if product.Customer != nil {
		customer := ToCustomerDTO(product.Customer)
		dto.Customer = &customer
	}
	return dto
}

// ToServiceDTO converts ServiceItem to ServiceDTO
func ToServiceDTO(service *domain.ServiceItem) domain.ServiceDTO {
	return domain.ServiceDTO{
		ID:          service.ID,
		Name:        service.Name,
		Category:    service.Category,
		Description: service.Description,
		Price:       service.Price,
		IsActive:    service.IsActive,
		CreatedAt:   formatTime(service.CreatedAt),
		UpdatedAt:   formatTime(service.UpdatedAt),
	}
}

// ToInvoiceDTO converts Invoice to its list row shape
func ToInvoiceDTO(invoice *domain.Invoice) domain.InvoiceDTO {
	dto := domain.InvoiceDTO{
		ID:          invoice.ID,
		InvoiceNo:   invoice.InvoiceNo,
		CustomerID:  invoice.CustomerID,
		Status:      invoice.Status,
		TotalAmount: invoice.TotalAmount,
		Notes:       invoice.Notes,
		ItemsCount:  len(invoice.Items),
		CreatedAt:   formatTime(invoice.CreatedAt),
		UpdatedAt:   formatTime(invoice.UpdatedAt),
	}
	if invoice.Customer != nil {
		dto.CustomerName = invoice.Customer.Name
	}
	return dto
}

// ToInvoiceItemDTO converts InvoiceItem to InvoiceItemDTO
func ToInvoiceItemDTO(item *domain.InvoiceItem) domain.InvoiceItemDTO {
	images := item.Images
	if images == nil {
		images = domain.StringList{}
	}
	return domain.InvoiceItemDTO{
		ID:        item.ID,
		InvoiceID: item.InvoiceID,
		ProductID: item.ProductID,
		ServiceID: item.ServiceID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Notes:     item.Notes,
		Images:    images,
		QRCode:    item.QRCode,
		CreatedAt: formatTime(item.CreatedAt),
	}
}

// noProductGroup is the bucket key for invoice lines without a product
const noProductGroup = "no-product"

// ToInvoiceWithItemsDTO converts the full invoice aggregate, building both
// the flat item list and the per-product grouping
func ToInvoiceWithItemsDTO(invoice *domain.Invoice) domain.InvoiceWithItemsDTO {
	dto := domain.InvoiceWithItemsDTO{
		InvoiceDTO:     ToInvoiceDTO(invoice),
		Items:          make([]domain.InvoiceItemDTO, len(invoice.Items)),
		ItemsByProduct: []domain.InvoiceProductGroupDTO{},
	}
	if invoice.Customer != nil {
		customer := ToCustomerDTO(invoice.Customer)
		dto.Customer = &customer
	}

	groupIndex := make(map[string]int)
	for i := range invoice.Items {
		item := &invoice.Items[i]
		dto.Items[i] = ToInvoiceItemDTO(item)

		key := noProductGroup
		if item.ProductID != nil {
			key = item.ProductID.String()
		}

		idx, ok := groupIndex[key]
		if !ok {
			group := domain.InvoiceProductGroupDTO{
				ProductID: key,
				Items:     []domain.InvoiceGroupItemDTO{},
			}
			if item.Product != nil {
				group.ProductName = item.Product.Name
				group.ProductImages = item.Product.Images
			}
			dto.ItemsByProduct = append(dto.ItemsByProduct, group)
			idx = len(dto.ItemsByProduct) - 1
			groupIndex[key] = idx
		}

		groupItem := domain.InvoiceGroupItemDTO{
			ID:        item.ID,
			ServiceID: item.ServiceID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Notes:     item.Notes,
			Images:    dto.Items[i].Images,
			QRCode:    item.QRCode,
		}
		if item.Service != nil {
			groupItem.ServiceName = item.Service.Name
			groupItem.ServiceCategory = item.Service.Category
		}
		dto.ItemsByProduct[idx].Items = append(dto.ItemsByProduct[idx].Items, groupItem)
	}

	return dto
}

// ToOrderDTO converts Order to its list row shape
func ToOrderDTO(order *domain.Order) domain.OrderDTO {
	dto := domain.OrderDTO{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		Type:          order.Type,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		DepositAmount: order.DepositAmount,
		Notes:         order.Notes,
		ItemsCount:    len(order.Items),
		CreatedAt:     formatTime(order.CreatedAt),
		UpdatedAt:     formatTime(order.UpdatedAt),
	}
	if order.Customer != nil {
		dto.CustomerName = order.Customer.Name
		dto.CustomerPhone = order.Customer.Phone
	}
	return dto
}

// ToOrderItemDTO converts OrderItem to OrderItemDTO
func ToOrderItemDTO(item *domain.OrderItem) domain.OrderItemDTO {
	dto := domain.OrderItemDTO{
		ID:         item.ID,
		OrderID:    item.OrderID,
		ProductID:  item.ProductID,
		ServiceID:  item.ServiceID,
		MaterialID: item.MaterialID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		Price:      item.Price,
		Notes:      item.Notes,
	}
	if item.Product != nil {
		dto.ProductName = item.Product.Name
	}
	if item.Service != nil {
		dto.ServiceName = item.Service.Name
	}
	if item.Material != nil {
		dto.MaterialName = item.Material.Name
	}
	return dto
}

// ToOrderWithItemsDTO converts the full order aggregate
func ToOrderWithItemsDTO(order *domain.Order) domain.OrderWithItemsDTO {
	dto := domain.OrderWithItemsDTO{
		OrderDTO: ToOrderDTO(order),
		Items:    make([]domain.OrderItemDTO, len(order.Items)),
	}
	if order.Customer != nil {
		customer := ToCustomerDTO(order.Customer)
		dto.Customer = &customer
	}
	for i := range order.Items {
		dto.Items[i] = ToOrderItemDTO(&order.Items[i])
	}
	return dto
}

// ToWorkflowDTO converts the workflow aggregate with ordered stages and tasks
func ToWorkflowDTO(workflow *domain.Workflow) domain.WorkflowDTO {
	dto := domain.WorkflowDTO{
		ID:           workflow.ID,
		ProductID:    workflow.ProductID,
		Name:         workflow.Name,
		Status:       workflow.Status,
		CurrentStage: workflow.CurrentStage,
		Notes:        workflow.Notes,
		CompletedAt:  formatTimePtr(workflow.CompletedAt),
		Stages:       make([]domain.StageDTO, len(workflow.Stages)),
		CreatedAt:    formatTime(workflow.CreatedAt),
		UpdatedAt:    formatTime(workflow.UpdatedAt),
	}
	if workflow.Product != nil {
		dto.ProductName = workflow.Product.Name
	}
	for i := range workflow.Stages {
		dto.Stages[i] = ToStageDTO(&workflow.Stages[i])
	}
	return dto
}

// ToStageDTO converts WorkflowStage to StageDTO
func ToStageDTO(stage *domain.WorkflowStage) domain.StageDTO {
	dto := domain.StageDTO{
		ID:          stage.ID,
		WorkflowID:  stage.WorkflowID,
		Name:        stage.Name,
		Order:       stage.StageOrder,
		Status:      stage.Status,
		AssignedTo:  stage.AssignedTo,
		Notes:       stage.Notes,
		CompletedAt: formatTimePtr(stage.CompletedAt),
		Tasks:       make([]domain.TaskDTO, len(stage.Tasks)),
	}
	if stage.AssignedUser != nil {
		dto.AssignedUserName = stage.AssignedUser.Name
	}
	for i := range stage.Tasks {
		dto.Tasks[i] = ToTaskDTO(&stage.Tasks[i])
	}
	return dto
}

// ToTaskDTO converts WorkflowTask to TaskDTO
func ToTaskDTO(task *domain.WorkflowTask) domain.TaskDTO {
	return domain.TaskDTO{
		ID:        task.ID,
		StageID:   task.StageID,
		Title:     task.Title,
		Completed: task.Completed,
		Order:     task.TaskOrder,
	}
}

// ToMaterialDTO converts Material to MaterialDTO
func ToMaterialDTO(material *domain.Material) domain.MaterialDTO {
	dto := domain.MaterialDTO{
		ID:          material.ID,
		Name:        material.Name,
		SKU:         material.SKU,
		Category:    material.Category,
		Unit:        material.Unit,
		Quantity:    material.Quantity,
		MinQuantity: material.MinQuantity,
		Location:    material.Location,
		Notes:       material.Notes,
		CreatedAt:   formatTime(material.CreatedAt),
		UpdatedAt:   formatTime(material.UpdatedAt),
	}
	if material.ExpiryDate != nil {
		s := material.ExpiryDate.UTC().Format("2006-01-02")
		dto.ExpiryDate = &s
	}
	return dto
}

// ToTransactionDTO converts Transaction to TransactionDTO
func ToTransactionDTO(transaction *domain.Transaction) domain.TransactionDTO {
	return domain.TransactionDTO{
		ID:          transaction.ID,
		Type:        transaction.Type,
		Amount:      transaction.Amount,
		Category:    transaction.Category,
		Description: transaction.Description,
		Status:      transaction.Status,
		InvoiceID:   transaction.InvoiceID,
		CreatedAt:   formatTime(transaction.CreatedAt),
		UpdatedAt:   formatTime(transaction.UpdatedAt),
	}
}
