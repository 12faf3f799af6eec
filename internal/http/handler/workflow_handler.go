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

type WorkflowHandler struct {
	workflowService *service.WorkflowService
	logger          *zap.Logger
}

func NewWorkflowHandler(workflowService *service.WorkflowService, logger *zap.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		workflowService: workflowService,
		logger:          logger,
	}
}

// Create godoc
// @Summary Create a workflow for a product
// @Description When no stages are given the default atelier stages are created
// @Tags Workflows
// @Accept json
// @Produce json
// @Param request body domain.CreateWorkflowRequest true "Workflow data"
// @Success 201 {object} domain.WorkflowDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Product not found"
// @Security BearerAuth
// @Router /workflows [post]
func (h *WorkflowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWorkflowRequest
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

	workflow, err := h.workflowService.CreateWorkflow(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Product not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid stage status",
			})
			return
		}
		h.logger.Error("failed to create workflow", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create workflow",
		})
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/workflows/%s", workflow.ID))
	respondJSON(w, http.StatusCreated, workflow)
}

// Get godoc
// @Summary Get a workflow with its stages and tasks
// @Tags Workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} domain.WorkflowDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /workflows/{id} [get]
func (h *WorkflowHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid workflow ID",
		})
		return
	}

	workflow, err := h.workflowService.GetWorkflow(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrWorkflowNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Workflow not found",
			})
			return
		}
		h.logger.Error("failed to get workflow", zap.Error(err), zap.String("workflow_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get workflow",
		})
		return
	}

	respondJSON(w, http.StatusOK, workflow)
}

// Update godoc
// @Summary Update workflow header fields
// @Description Only the provided fields are changed, stages are untouched
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param request body domain.UpdateWorkflowRequest true "Fields to update"
// @Success 200 {object} domain.WorkflowDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /workflows/{id} [put]
func (h *WorkflowHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid workflow ID",
		})
		return
	}

	var req domain.UpdateWorkflowRequest
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

	workflow, err := h.workflowService.UpdateWorkflow(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrWorkflowNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Workflow not found",
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
		h.logger.Error("failed to update workflow", zap.Error(err), zap.String("workflow_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update workflow",
		})
		return
	}

	respondJSON(w, http.StatusOK, workflow)
}

// Delete godoc
// @Summary Delete a workflow with its stages and tasks
// @Tags Workflows
// @Param id path string true "Workflow ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /workflows/{id} [delete]
func (h *WorkflowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid workflow ID",
		})
		return
	}

	if err := h.workflowService.DeleteWorkflow(r.Context(), id); err != nil {
		h.logger.Error("failed to delete workflow", zap.Error(err), zap.String("workflow_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete workflow",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// List godoc
// @Summary List workflows
// @Tags Workflows
// @Produce json
// @Param productId query string false "Filter by product"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /workflows [get]
func (h *WorkflowHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := service.WorkflowListFilter{
		Status: r.URL.Query().Get("status"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}
	if raw := r.URL.Query().Get("productId"); raw != "" {
		productID, err := uuid.Parse(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid productId",
			})
			return
		}
		filter.ProductID = &productID
	}

	workflows, pagination, err := h.workflowService.ListWorkflows(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list workflows", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list workflows",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"workflows":  workflows,
		"pagination": pagination,
	})
}

// UpdateStageStatus godoc
// @Summary Update a stage's status
// @Description The workflow status is re-derived from its stages
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param stageId path string true "Stage ID"
// @Param request body domain.UpdateStageStatusRequest true "New status"
// @Success 200 {object} domain.WorkflowDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /workflows/{id}/stages/{stageId}/status [put]
func (h *WorkflowHandler) UpdateStageStatus(w http.ResponseWriter, r *http.Request) {
	id, stageID, ok := h.workflowStageParams(w, r)
	if !ok {
		return
	}

	var req domain.UpdateStageStatusRequest
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

	workflow, err := h.workflowService.UpdateStageStatus(r.Context(), id, stageID, &req)
	if err != nil {
		h.respondWorkflowError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, workflow)
}

// AssignStage godoc
// @Summary Assign a stage to a user
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param stageId path string true "Stage ID"
// @Param request body domain.AssignStageRequest true "Assignee"
// @Success 200 {object} domain.WorkflowDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /workflows/{id}/stages/{stageId}/assign [put]
func (h *WorkflowHandler) AssignStage(w http.ResponseWriter, r *http.Request) {
	id, stageID, ok := h.workflowStageParams(w, r)
	if !ok {
		return
	}

	var req domain.AssignStageRequest
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

	workflow, err := h.workflowService.AssignStage(r.Context(), id, stageID, &req)
	if err != nil {
		h.respondWorkflowError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, workflow)
}

// AddTask godoc
// @Summary Add a task to a stage
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param stageId path string true "Stage ID"
// @Param request body domain.AddTaskRequest true "Task data"
// @Success 200 {object} domain.WorkflowDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /workflows/{id}/stages/{stageId}/tasks [post]
func (h *WorkflowHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	id, stageID, ok := h.workflowStageParams(w, r)
	if !ok {
		return
	}

	var req domain.AddTaskRequest
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

	workflow, err := h.workflowService.AddTask(r.Context(), id, stageID, &req)
	if err != nil {
		h.respondWorkflowError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, workflow)
}

// UpdateTaskCompletion godoc
// @Summary Mark a task completed or not
// @Description Completing every task in a stage completes the stage
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param stageId path string true "Stage ID"
// @Param taskId path string true "Task ID"
// @Param request body domain.UpdateTaskCompletionRequest true "Completion flag"
// @Success 200 {object} domain.WorkflowDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /workflows/{id}/stages/{stageId}/tasks/{taskId} [put]
func (h *WorkflowHandler) UpdateTaskCompletion(w http.ResponseWriter, r *http.Request) {
	id, stageID, ok := h.workflowStageParams(w, r)
	if !ok {
		return
	}
	taskID, err := uuid.Parse(chi.URLParam(r, "taskId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid task ID",
		})
		return
	}

	var req domain.UpdateTaskCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	workflow, err := h.workflowService.UpdateTaskCompletion(r.Context(), id, stageID, taskID, &req)
	if err != nil {
		h.respondWorkflowError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, workflow)
}

// DeleteTask godoc
// @Summary Remove a task from a stage
// @Tags Workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Param stageId path string true "Stage ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} domain.WorkflowDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /workflows/{id}/stages/{stageId}/tasks/{taskId} [delete]
func (h *WorkflowHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, stageID, ok := h.workflowStageParams(w, r)
	if !ok {
		return
	}
	taskID, err := uuid.Parse(chi.URLParam(r, "taskId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid task ID",
		})
		return
	}

	workflow, err := h.workflowService.DeleteTask(r.Context(), id, stageID, taskID)
	if err != nil {
		h.respondWorkflowError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, workflow)
}

func (h *WorkflowHandler) workflowStageParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid workflow ID",
		})
		return uuid.Nil, uuid.Nil, false
	}
	stageID, err := uuid.Parse(chi.URLParam(r, "stageId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid stage ID",
		})
		return uuid.Nil, uuid.Nil, false
	}
	return id, stageID, true
}

func (h *WorkflowHandler) respondWorkflowError(w http.ResponseWriter, err error, workflowID uuid.UUID) {
	switch {
	case errors.Is(err, service.ErrWorkflowNotFound):
		respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
			Error:   "Not Found",
			Message: "Workflow not found",
		})
	case errors.Is(err, service.ErrStageNotFound):
		respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
			Error:   "Not Found",
			Message: "Stage not found",
		})
	case errors.Is(err, service.ErrTaskNotFound):
		respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
			Error:   "Not Found",
			Message: "Task not found",
		})
	case errors.Is(err, service.ErrInvalidStatus):
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid status value",
		})
	default:
		h.logger.Error("workflow operation failed", zap.Error(err), zap.String("workflow_id", workflowID.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Workflow operation failed",
		})
	}
}
