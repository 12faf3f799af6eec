package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
)

type WorkflowRepository struct {
	db *gorm.DB
}

func NewWorkflowRepository(db *gorm.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

// WithTransaction runs fn against a repository bound to one transaction
func (r *WorkflowRepository) WithTransaction(ctx context.Context, fn func(txRepo *WorkflowRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&WorkflowRepository{db: tx})
	})
}

// CreateWithStages inserts the workflow with its stages and tasks atomically
func (r *WorkflowRepository) CreateWithStages(ctx context.Context, workflow *domain.Workflow) error {
	return r.db.WithContext(ctx).Create(workflow).Error
}

func (r *WorkflowRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workflow, error) {
	var workflow domain.Workflow
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_order ASC")
		}).
		Preload("Stages.AssignedUser").
		Preload("Stages.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_order ASC, created_at ASC")
		}).
		First(&workflow, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &workflow, nil
}

func (r *WorkflowRepository) Update(ctx context.Context, workflow *domain.Workflow) error {
	return r.db.WithContext(ctx).Save(workflow).Error
}

// SetStatus writes the derived workflow status and completion timestamp
func (r *WorkflowRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.WorkflowStatus, completedAt *time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Workflow{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
		}).Error
}

func (r *WorkflowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stageIDs []uuid.UUID
		if err := tx.Model(&domain.WorkflowStage{}).
			Where("workflow_id = ?", id).
			Pluck("id", &stageIDs).Error; err != nil {
			return err
		}
		if len(stageIDs) > 0 {
			if err := tx.Delete(&domain.WorkflowTask{}, "stage_id IN ?", stageIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&domain.WorkflowStage{}, "workflow_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Workflow{}, "id = ?", id).Error
	})
}

func (r *WorkflowRepository) List(ctx context.Context, scope ListScope) ([]domain.Workflow, int64, error) {
	var workflows []domain.Workflow
	var total int64

	query := applyScope(r.db.WithContext(ctx).Model(&domain.Workflow{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPage(query, scope).
		Preload("Product").
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_order ASC")
		}).
		Preload("Stages.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_order ASC, created_at ASC")
		}).
		Find(&workflows).Error
	return workflows, total, err
}

func (r *WorkflowRepository) GetStage(ctx context.Context, stageID uuid.UUID) (*domain.WorkflowStage, error) {
	var stage domain.WorkflowStage
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_order ASC, created_at ASC")
		}).
		First(&stage, "id = ?", stageID).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

// ListStages returns all sibling stages of a workflow in stage order
func (r *WorkflowRepository) ListStages(ctx context.Context, workflowID uuid.UUID) ([]domain.WorkflowStage, error) {
	var stages []domain.WorkflowStage
	err := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("stage_order ASC").
		Find(&stages).Error
	return stages, err
}

func (r *WorkflowRepository) UpdateStage(ctx context.Context, stage *domain.WorkflowStage) error {
	return r.db.WithContext(ctx).Save(stage).Error
}

func (r *WorkflowRepository) GetTask(ctx context.Context, taskID uuid.UUID) (*domain.WorkflowTask, error) {
	var task domain.WorkflowTask
	err := r.db.WithContext(ctx).First(&task, "id = ?", taskID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *WorkflowRepository) CreateTask(ctx context.Context, task *domain.WorkflowTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *WorkflowRepository) UpdateTask(ctx context.Context, task *domain.WorkflowTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *WorkflowRepository) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.WorkflowTask{}, "id = ?", taskID).Error
}
