package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/service"
)

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Create an invoice with its line items
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body domain.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} domain.InvoiceWithItemsDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Customer not found"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Customer not found",
			})
			return
		}
		if errors.Is(err, service.ErrNoItems) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "At least one item is required",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid invoice status",
			})
			return
		}
		h.logger.Error("failed to create invoice", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create invoice",
		})
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/invoices/%s", invoice.ID))
	respondJSON(w, http.StatusCreated, invoice)
}

// Get godoc
// @Summary Get an invoice with items grouped by product
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} domain.InvoiceWithItemsDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid invoice ID",
		})
		return
	}

	invoice, err := h.invoiceService.GetInvoice(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Invoice not found",
			})
			return
		}
		h.logger.Error("failed to get invoice", zap.Error(err), zap.String("invoice_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get invoice",
		})
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// Update godoc
// @Summary Update invoice header fields
// @Description Only the provided fields are changed, items are untouched
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body domain.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} domain.InvoiceWithItemsDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid invoice ID",
		})
		return
	}

	var req domain.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Invoice not found",
			})
			return
		}
		if errors.Is(err, service.ErrNoFieldsToUpdate) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "No fields to update",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid invoice status",
			})
			return
		}
		h.logger.Error("failed to update invoice", zap.Error(err), zap.String("invoice_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update invoice",
		})
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// Delete godoc
// @Summary Delete an invoice and its items
// @Tags Invoices
// @Param id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid invoice ID",
		})
		return
	}

	if err := h.invoiceService.DeleteInvoice(r.Context(), id); err != nil {
		h.logger.Error("failed to delete invoice", zap.Error(err), zap.String("invoice_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete invoice",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// List godoc
// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Param customerId query string false "Filter by customer"
// @Param status query string false "Filter by status"
// @Param startDate query string false "Created on or after (YYYY-MM-DD)"
// @Param endDate query string false "Created on or before (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := service.InvoiceListFilter{
		Status:    r.URL.Query().Get("status"),
		StartDate: queryDate(r, "startDate"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}
	if end := queryDate(r, "endDate"); end != nil {
		e := endOfDay(*end)
		filter.EndDate = &e
	}
	if raw := r.URL.Query().Get("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid customerId",
			})
			return
		}
		filter.CustomerID = &customerID
	}

	invoices, pagination, err := h.invoiceService.ListInvoices(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list invoices", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list invoices",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"invoices":   invoices,
		"pagination": pagination,
	})
}

// AddItem godoc
// @Summary Add a line item to an invoice
// @Description The invoice total is recomputed from its items
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body domain.CreateInvoiceItemRequest true "Item data"
// @Success 200 {object} domain.InvoiceWithItemsDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/items [post]
func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid invoice ID",
		})
		return
	}

	var req domain.CreateInvoiceItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.AddItem(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Invoice not found",
			})
			return
		}
		h.logger.Error("failed to add invoice item", zap.Error(err), zap.String("invoice_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to add invoice item",
		})
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// UpdateItem godoc
// @Summary Update an invoice line item
// @Description The invoice total is recomputed from its items
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param itemId path string true "Item ID"
// @Param request body domain.UpdateInvoiceItemRequest true "Fields to update"
// @Success 200 {object} domain.InvoiceWithItemsDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/items/{itemId} [put]
func (h *InvoiceHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid invoice ID",
		})
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid item ID",
		})
		return
	}

	var req domain.UpdateInvoiceItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.UpdateItem(r.Context(), id, itemID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) || errors.Is(err, service.ErrInvoiceItemNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Invoice item not found",
			})
			return
		}
		if errors.Is(err, service.ErrNoFieldsToUpdate) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "No fields to update",
			})
			return
		}
		h.logger.Error("failed to update invoice item", zap.Error(err),
			zap.String("invoice_id", id.String()),
			zap.String("item_id", itemID.String()),
		)
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update invoice item",
		})
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// DeleteItem godoc
// @Summary Remove an invoice line item
// @Description The invoice total is recomputed from the remaining items
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} domain.InvoiceWithItemsDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/items/{itemId} [delete]
func (h *InvoiceHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid invoice ID",
		})
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid item ID",
		})
		return
	}

	invoice, err := h.invoiceService.DeleteItem(r.Context(), id, itemID)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Invoice not found",
			})
			return
		}
		h.logger.Error("failed to delete invoice item", zap.Error(err),
			zap.String("invoice_id", id.String()),
			zap.String("item_id", itemID.String()),
		)
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete invoice item",
		})
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}
