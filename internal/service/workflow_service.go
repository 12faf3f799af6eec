package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/config"
	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/mapper"
	"github.com/atelier-vn/shop-api/internal/repository"
)

const defaultWorkflowPageSize = 20

// WorkflowListFilter narrows the workflow list
type WorkflowListFilter struct {
	ProductID *uuid.UUID
	Status    string
	Page      int
	Limit     int
}

type WorkflowService struct {
	workflowRepo *repository.WorkflowRepository
	productRepo  *repository.ProductRepository
	autoReopen   bool
	logger       *zap.Logger
}

func NewWorkflowService(
	workflowRepo *repository.WorkflowRepository,
	productRepo *repository.ProductRepository,
	cfg *config.WorkflowConfig,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		workflowRepo: workflowRepo,
		productRepo:  productRepo,
		autoReopen:   cfg.AutoReopenStage,
		logger:       logger,
	}
}

// CreateWorkflow creates a workflow for a product. When no stages are given
// the default atelier stages are used.
func (s *WorkflowService) CreateWorkflow(ctx context.Context, req *domain.CreateWorkflowRequest) (*domain.WorkflowDTO, error) {
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	stageReqs := req.Stages
	if len(stageReqs) == 0 {
		stageReqs = make([]domain.CreateStageRequest, len(domain.DefaultStageNames))
		for i, name := range domain.DefaultStageNames {
			stageReqs[i] = domain.CreateStageRequest{Name: name, Order: i + 1}
		}
	}

	stages := make([]domain.WorkflowStage, len(stageReqs))
	for i, sr := range stageReqs {
		status := sr.Status
		if status == "" {
			status = domain.WorkflowStatusPending
		}
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}

		order := sr.Order
		if order == 0 {
			order = i + 1
		}

		tasks := make([]domain.WorkflowTask, len(sr.Tasks))
		for j, title := range sr.Tasks {
			tasks[j] = domain.WorkflowTask{Title: title, TaskOrder: j + 1}
		}

		stages[i] = domain.WorkflowStage{
			Name:       sr.Name,
			StageOrder: order,
			Status:     status,
			AssignedTo: sr.AssignedTo,
			Notes:      sr.Notes,
			Tasks:      tasks,
		}
	}

	workflow := &domain.Workflow{
		ProductID:    req.ProductID,
		Name:         req.Name,
		Status:       domain.DeriveWorkflowStatus(stages),
		CurrentStage: req.CurrentStage,
		Notes:        req.Notes,
		Stages:       stages,
	}

	if err := s.workflowRepo.CreateWithStages(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	return s.GetWorkflow(ctx, workflow.ID)
}

// GetWorkflow returns the workflow with its stages and tasks
func (s *WorkflowService) GetWorkflow(ctx context.Context, id uuid.UUID) (*domain.WorkflowDTO, error) {
	workflow, err := s.workflowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}

	dto := mapper.ToWorkflowDTO(workflow)
	return &dto, nil
}

func (s *WorkflowService) UpdateWorkflow(ctx context.Context, id uuid.UUID, req *domain.UpdateWorkflowRequest) (*domain.WorkflowDTO, error) {
	if !req.HasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	workflow, err := s.workflowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}

	if req.Name != nil {
		workflow.Name = *req.Name
	}
	if req.CurrentStage != nil {
		workflow.CurrentStage = *req.CurrentStage
	}
	if req.Notes != nil {
		workflow.Notes = *req.Notes
	}

	// Save the row alone so stage associations are untouched
	workflow.Stages = nil
	workflow.Product = nil
	if err := s.workflowRepo.Update(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to update workflow: %w", err)
	}

	return s.GetWorkflow(ctx, id)
}

// DeleteWorkflow removes a workflow with its stages and tasks. Deleting an
// unknown id is not an error.
func (s *WorkflowService) DeleteWorkflow(ctx context.Context, id uuid.UUID) error {
	if err := s.workflowRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}
	return nil
}

func (s *WorkflowService) ListWorkflows(ctx context.Context, filter WorkflowListFilter) ([]domain.WorkflowDTO, domain.Pagination, error) {
	page, limit := clampPage(filter.Page, filter.Limit, defaultWorkflowPageSize)

	scope := repository.ListScope{
		Filters: map[string]interface{}{},
		Page:    page,
		Limit:   limit,
	}
	if filter.ProductID != nil {
		scope.Filters["product_id"] = *filter.ProductID
	}
	if filter.Status != "" {
		scope.Filters["status"] = filter.Status
	}

	workflows, total, err := s.workflowRepo.List(ctx, scope)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list workflows: %w", err)
	}

	dtos := make([]domain.WorkflowDTO, len(workflows))
	for i := range workflows {
		dtos[i] = mapper.ToWorkflowDTO(&workflows[i])
	}
	return dtos, newPagination(page, limit, total), nil
}

// UpdateStageStatus moves a stage to a new status and re-derives the parent
// workflow status. The whole update runs in one transaction.
func (s *WorkflowService) UpdateStageStatus(ctx context.Context, workflowID, stageID uuid.UUID, req *domain.UpdateStageStatusRequest) (*domain.WorkflowDTO, error) {
	if !req.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	err := s.workflowRepo.WithTransaction(ctx, func(txRepo *repository.WorkflowRepository) error {
		stage, err := txRepo.GetStage(ctx, stageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStageNotFound
			}
			return fmt.Errorf("failed to get stage: %w", err)
		}
		if stage.WorkflowID != workflowID {
			return ErrStageNotFound
		}

		// Re-applying COMPLETED must not move the completion timestamp
		if req.Status == domain.WorkflowStatusCompleted {
			if stage.Status != domain.WorkflowStatusCompleted {
				now := time.Now()
				stage.CompletedAt = &now
			}
		} else {
			stage.CompletedAt = nil
		}
		stage.Status = req.Status
		stage.Tasks = nil
		if err := txRepo.UpdateStage(ctx, stage); err != nil {
			return fmt.Errorf("failed to update stage: %w", err)
		}

		return s.deriveAndStore(ctx, txRepo, workflowID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetWorkflow(ctx, workflowID)
}

// AssignStage sets or clears the user responsible for a stage
func (s *WorkflowService) AssignStage(ctx context.Context, workflowID, stageID uuid.UUID, req *domain.AssignStageRequest) (*domain.WorkflowDTO, error) {
	stage, err := s.workflowRepo.GetStage(ctx, stageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	if stage.WorkflowID != workflowID {
		return nil, ErrStageNotFound
	}

	stage.AssignedTo = req.AssignedTo
	stage.Tasks = nil
	if err := s.workflowRepo.UpdateStage(ctx, stage); err != nil {
		return nil, fmt.Errorf("failed to assign stage: %w", err)
	}

	return s.GetWorkflow(ctx, workflowID)
}

// AddTask appends a task to a stage and re-checks stage completion
func (s *WorkflowService) AddTask(ctx context.Context, workflowID, stageID uuid.UUID, req *domain.AddTaskRequest) (*domain.WorkflowDTO, error) {
	err := s.workflowRepo.WithTransaction(ctx, func(txRepo *repository.WorkflowRepository) error {
		stage, err := txRepo.GetStage(ctx, stageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStageNotFound
			}
			return fmt.Errorf("failed to get stage: %w", err)
		}
		if stage.WorkflowID != workflowID {
			return ErrStageNotFound
		}

		order := req.Order
		if order == 0 {
			order = len(stage.Tasks) + 1
		}
		task := &domain.WorkflowTask{
			StageID:   stageID,
			Title:     req.Title,
			TaskOrder: order,
		}
		if err := txRepo.CreateTask(ctx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		return s.cascadeTaskChange(ctx, txRepo, workflowID, stageID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetWorkflow(ctx, workflowID)
}

// UpdateTaskCompletion toggles a task and cascades the change upward. When
// every task of the stage is complete the stage itself completes.
func (s *WorkflowService) UpdateTaskCompletion(ctx context.Context, workflowID, stageID, taskID uuid.UUID, req *domain.UpdateTaskCompletionRequest) (*domain.WorkflowDTO, error) {
	err := s.workflowRepo.WithTransaction(ctx, func(txRepo *repository.WorkflowRepository) error {
		task, err := txRepo.GetTask(ctx, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to get task: %w", err)
		}
		if task.StageID != stageID {
			return ErrTaskNotFound
		}

		task.Completed = req.Completed
		if err := txRepo.UpdateTask(ctx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		return s.cascadeTaskChange(ctx, txRepo, workflowID, stageID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetWorkflow(ctx, workflowID)
}

// DeleteTask removes a task and re-checks stage completion
func (s *WorkflowService) DeleteTask(ctx context.Context, workflowID, stageID, taskID uuid.UUID) (*domain.WorkflowDTO, error) {
	err := s.workflowRepo.WithTransaction(ctx, func(txRepo *repository.WorkflowRepository) error {
		task, err := txRepo.GetTask(ctx, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to get task: %w", err)
		}
		if task.StageID != stageID {
			return ErrTaskNotFound
		}

		if err := txRepo.DeleteTask(ctx, taskID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		return s.cascadeTaskChange(ctx, txRepo, workflowID, stageID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetWorkflow(ctx, workflowID)
}

// cascadeTaskChange re-checks stage completion after a task change and then
// re-derives the workflow status. A stage completes when it has at least one
// task and all of them are done. Reopening a completed stage on an incomplete
// task is opt-in via configuration.
func (s *WorkflowService) cascadeTaskChange(ctx context.Context, txRepo *repository.WorkflowRepository, workflowID, stageID uuid.UUID) error {
	stage, err := txRepo.GetStage(ctx, stageID)
	if err != nil {
		return fmt.Errorf("failed to reload stage: %w", err)
	}

	allDone := domain.AllTasksCompleted(stage.Tasks)

	switch {
	case allDone && stage.Status != domain.WorkflowStatusCompleted:
		now := time.Now()
		stage.Status = domain.WorkflowStatusCompleted
		stage.CompletedAt = &now
	case !allDone && stage.Status == domain.WorkflowStatusCompleted && s.autoReopen:
		stage.Status = domain.WorkflowStatusInProgress
		stage.CompletedAt = nil
	default:
		return s.deriveAndStore(ctx, txRepo, workflowID)
	}

	stage.Tasks = nil
	if err := txRepo.UpdateStage(ctx, stage); err != nil {
		return fmt.Errorf("failed to update stage: %w", err)
	}

	return s.deriveAndStore(ctx, txRepo, workflowID)
}

// deriveAndStore recomputes the workflow status from its stages and writes
// it only when it changed
func (s *WorkflowService) deriveAndStore(ctx context.Context, txRepo *repository.WorkflowRepository, workflowID uuid.UUID) error {
	workflow, err := txRepo.GetByID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkflowNotFound
		}
		return fmt.Errorf("failed to get workflow: %w", err)
	}

	stages, err := txRepo.ListStages(ctx, workflowID)
	if err != nil {
		return fmt.Errorf("failed to list stages: %w", err)
	}

	derived := domain.DeriveWorkflowStatus(stages)
	if derived == workflow.Status {
		return nil
	}

	var completedAt *time.Time
	if derived == domain.WorkflowStatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	if err := txRepo.SetStatus(ctx, workflowID, derived, completedAt); err != nil {
		return fmt.Errorf("failed to set workflow status: %w", err)
	}

	s.logger.Info("workflow status derived",
		zap.String("workflow_id", workflowID.String()),
		zap.String("status", string(derived)),
	)
	return nil
}
