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

// ServiceHandler exposes the care-service catalog.
type ServiceHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewServiceHandler(catalogService *service.CatalogService, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Create a catalog service
// @Tags Services
// @Accept json
// @Produce json
// @Param request body domain.CreateServiceRequest true "Service data"
// @Success 201 {object} domain.ServiceDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /services [post]
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateServiceRequest
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

	svc, err := h.catalogService.CreateService(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create service", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create service",
		})
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/services/%s", svc.ID))
	respondJSON(w, http.StatusCreated, svc)
}

// Get godoc
// @Summary Get a catalog service
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} domain.ServiceDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /services/{id} [get]
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid service ID",
		})
		return
	}

	svc, err := h.catalogService.GetService(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Service not found",
			})
			return
		}
		h.logger.Error("failed to get service", zap.Error(err), zap.String("service_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get service",
		})
		return
	}

	respondJSON(w, http.StatusOK, svc)
}

// Update godoc
// @Summary Update a catalog service
// @Description Only the provided fields are changed
// @Tags Services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body domain.UpdateServiceRequest true "Fields to update"
// @Success 200 {object} domain.ServiceDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /services/{id} [put]
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid service ID",
		})
		return
	}

	var req domain.UpdateServiceRequest
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

	svc, err := h.catalogService.UpdateService(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Service not found",
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
		h.logger.Error("failed to update service", zap.Error(err), zap.String("service_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update service",
		})
		return
	}

	respondJSON(w, http.StatusOK, svc)
}

// Delete godoc
// @Summary Delete a catalog service
// @Tags Services
// @Param id path string true "Service ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid service ID",
		})
		return
	}

	if err := h.catalogService.DeleteService(r.Context(), id); err != nil {
		h.logger.Error("failed to delete service", zap.Error(err), zap.String("service_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete service",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// List godoc
// @Summary List catalog services
// @Description Services are ordered by category and name
// @Tags Services
// @Produce json
// @Param category query string false "Filter by category"
// @Param search query string false "Search in name and description"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /services [get]
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, pagination, err := h.catalogService.ListServices(
		r.Context(),
		r.URL.Query().Get("category"),
		r.URL.Query().Get("search"),
		queryInt(r, "page"),
		queryInt(r, "limit"),
	)
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list services",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"services":   services,
		"pagination": pagination,
	})
}
