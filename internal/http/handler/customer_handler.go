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

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// Create godoc
// @Summary Create a new customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body domain.CreateCustomerRequest true "Customer data"
// @Success 201 {object} domain.CustomerDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCustomerRequest
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

	customer, err := h.customerService.CreateCustomer(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create customer", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create customer",
		})
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/customers/%s", customer.ID))
	respondJSON(w, http.StatusCreated, customer)
}

// Get godoc
// @Summary Get a customer
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.CustomerDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid customer ID",
		})
		return
	}

	customer, err := h.customerService.GetCustomer(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Customer not found",
			})
			return
		}
		h.logger.Error("failed to get customer", zap.Error(err), zap.String("customer_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get customer",
		})
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

// Update godoc
// @Summary Update a customer
// @Description Only the provided fields are changed
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body domain.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} domain.CustomerDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid customer ID",
		})
		return
	}

	var req domain.UpdateCustomerRequest
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

	customer, err := h.customerService.UpdateCustomer(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Customer not found",
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
		h.logger.Error("failed to update customer", zap.Error(err), zap.String("customer_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update customer",
		})
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

// Delete godoc
// @Summary Delete a customer
// @Tags Customers
// @Param id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid customer ID",
		})
		return
	}

	if err := h.customerService.DeleteCustomer(r.Context(), id); err != nil {
		h.logger.Error("failed to delete customer", zap.Error(err), zap.String("customer_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete customer",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// List godoc
// @Summary List customers
// @Tags Customers
// @Produce json
// @Param search query string false "Search in name, phone and email"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, pagination, err := h.customerService.ListCustomers(
		r.Context(),
		r.URL.Query().Get("search"),
		queryInt(r, "page"),
		queryInt(r, "limit"),
	)
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list customers",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"customers":  customers,
		"pagination": pagination,
	})
}
