package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/auth"
	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/service"
)

type LeadHandler struct {
	leadService *service.LeadService
	logger      *zap.Logger
}

func NewLeadHandler(leadService *service.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Create a new lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body domain.CreateLeadRequest true "Lead data"
// @Success 201 {object} domain.LeadDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLeadRequest
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

	lead, err := h.leadService.CreateLead(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid lead status or source",
			})
			return
		}
		h.logger.Error("failed to create lead", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create lead",
		})
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/leads/%s", lead.ID))
	respondJSON(w, http.StatusCreated, lead)
}

// Get godoc
// @Summary Get a lead with its activity log
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.LeadWithActivitiesDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id} [get]
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID",
		})
		return
	}

	lead, err := h.leadService.GetLead(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		h.logger.Error("failed to get lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get lead",
		})
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// Update godoc
// @Summary Update a lead
// @Description Only the provided fields are changed
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.UpdateLeadRequest true "Fields to update"
// @Success 200 {object} domain.LeadDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID",
		})
		return
	}

	var req domain.UpdateLeadRequest
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

	lead, err := h.leadService.UpdateLead(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
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
				Message: "Invalid lead status or source",
			})
			return
		}
		h.logger.Error("failed to update lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update lead",
		})
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// Delete godoc
// @Summary Delete a lead
// @Tags Leads
// @Param id path string true "Lead ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id} [delete]
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID",
		})
		return
	}

	if err := h.leadService.DeleteLead(r.Context(), id); err != nil {
		h.logger.Error("failed to delete lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete lead",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// List godoc
// @Summary List leads
// @Tags Leads
// @Produce json
// @Param status query string false "Filter by status"
// @Param source query string false "Filter by source"
// @Param assignedTo query string false "Filter by assigned user ID"
// @Param search query string false "Search in name, phone and email"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := service.LeadListFilter{
		Status: r.URL.Query().Get("status"),
		Source: r.URL.Query().Get("source"),
		Search: r.URL.Query().Get("search"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}
	if raw := r.URL.Query().Get("assignedTo"); raw != "" {
		assignedTo, err := uuid.Parse(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid assignedTo ID",
			})
			return
		}
		filter.AssignedTo = &assignedTo
	}

	leads, pagination, err := h.leadService.ListLeads(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list leads",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"leads":      leads,
		"pagination": pagination,
	})
}

// AddActivity godoc
// @Summary Add an activity to a lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.AddLeadActivityRequest true "Activity data"
// @Success 201 {object} domain.LeadActivityDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id}/activities [post]
func (h *LeadHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID",
		})
		return
	}

	var req domain.AddLeadActivityRequest
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

	var userID *uuid.UUID
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		userID = &userCtx.UserID
	}

	activity, err := h.leadService.AddActivity(r.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid activity type",
			})
			return
		}
		h.logger.Error("failed to add lead activity", zap.Error(err), zap.String("lead_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to add activity",
		})
		return
	}

	respondJSON(w, http.StatusCreated, activity)
}

// Convert godoc
// @Summary Convert a lead into a customer
// @Description Copies the lead's contact details into a new customer record. A lead can be converted at most once.
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.ConvertLeadRequest false "Overrides for the new customer"
// @Success 201 {object} domain.CustomerDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Lead already converted"
// @Security BearerAuth
// @Router /leads/{id}/convert [post]
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID",
		})
		return
	}

	// The body is optional, an empty body converts with the lead's own values
	var req domain.ConvertLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	customer, err := h.leadService.ConvertToCustomer(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		if errors.Is(err, service.ErrLeadAlreadyConverted) {
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: "Lead has already been converted to a customer",
			})
			return
		}
		h.logger.Error("failed to convert lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to convert lead",
		})
		return
	}

	respondJSON(w, http.StatusCreated, customer)
}
