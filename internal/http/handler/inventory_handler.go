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

type InventoryHandler struct {
	inventoryService *service.InventoryService
	logger           *zap.Logger
}

func NewInventoryHandler(inventoryService *service.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// Create godoc
// @Summary Create a material
// @Tags Materials
// @Accept json
// @Produce json
// @Param request body domain.CreateMaterialRequest true "Material data"
// @Success 201 {object} domain.MaterialDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials [post]
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMaterialRequest
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

	material, err := h.inventoryService.CreateMaterial(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidExpiryDate) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid expiry date, expected YYYY-MM-DD",
			})
			return
		}
		h.logger.Error("failed to create material", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create material",
		})
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/materials/%s", material.ID))
	respondJSON(w, http.StatusCreated, material)
}

// Get godoc
// @Summary Get a material
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} domain.MaterialDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [get]
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid material ID",
		})
		return
	}

	material, err := h.inventoryService.GetMaterial(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Material not found",
			})
			return
		}
		h.logger.Error("failed to get material", zap.Error(err), zap.String("material_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get material",
		})
		return
	}

	respondJSON(w, http.StatusOK, material)
}

// Update godoc
// @Summary Update a material
// @Description Only the provided fields are changed
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param request body domain.UpdateMaterialRequest true "Fields to update"
// @Success 200 {object} domain.MaterialDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [put]
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid material ID",
		})
		return
	}

	var req domain.UpdateMaterialRequest
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

	material, err := h.inventoryService.UpdateMaterial(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Material not found",
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
		if errors.Is(err, service.ErrInvalidExpiryDate) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid expiry date, expected YYYY-MM-DD",
			})
			return
		}
		h.logger.Error("failed to update material", zap.Error(err), zap.String("material_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update material",
		})
		return
	}

	respondJSON(w, http.StatusOK, material)
}

// Delete godoc
// @Summary Delete a material
// @Tags Materials
// @Param id path string true "Material ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [delete]
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid material ID",
		})
		return
	}

	if err := h.inventoryService.DeleteMaterial(r.Context(), id); err != nil {
		h.logger.Error("failed to delete material", zap.Error(err), zap.String("material_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete material",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// List godoc
// @Summary List materials
// @Tags Materials
// @Produce json
// @Param category query string false "Filter by category"
// @Param search query string false "Search in name and SKU"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials [get]
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	materials, pagination, err := h.inventoryService.ListMaterials(
		r.Context(),
		r.URL.Query().Get("category"),
		r.URL.Query().Get("search"),
		queryInt(r, "page"),
		queryInt(r, "limit"),
	)
	if err != nil {
		h.logger.Error("failed to list materials", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list materials",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"materials":  materials,
		"pagination": pagination,
	})
}

// LowStock godoc
// @Summary List materials at or below their minimum stock
// @Tags Materials
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /materials/low-stock [get]
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	materials, err := h.inventoryService.ListLowStock(r.Context())
	if err != nil {
		h.logger.Error("failed to list low stock materials", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list low stock materials",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"materials": materials,
	})
}
