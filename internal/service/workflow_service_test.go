package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/config"
	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/repository"
	"github.com/atelier-vn/shop-api/internal/service"
	"github.com/atelier-vn/shop-api/internal/testutil"
)

func createWorkflowService(db *gorm.DB, autoReopen bool) *service.WorkflowService {
	return service.NewWorkflowService(
		repository.NewWorkflowRepository(db),
		repository.NewProductRepository(db),
		&config.WorkflowConfig{AutoReopenStage: autoReopen},
		zap.NewNop(),
	)
}

func createWorkflowFixture(t *testing.T, db *gorm.DB) *domain.Product {
	t.Helper()
	customer := testutil.CreateTestCustomer(t, db, "Chị Hoa")
	return testutil.CreateTestProduct(t, db, customer, "Túi Chanel")
}

func TestWorkflowService_CreateDefaultStages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)

	workflow, err := svc.CreateWorkflow(context.Background(), &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Phục hồi toàn diện",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.WorkflowStatusPending, workflow.Status)
	require.Len(t, workflow.Stages, len(domain.DefaultStageNames))
	for i, stage := range workflow.Stages {
		assert.Equal(t, domain.DefaultStageNames[i], stage.Name)
		assert.Equal(t, i+1, stage.Order)
		assert.Equal(t, domain.WorkflowStatusPending, stage.Status)
	}
}

func TestWorkflowService_CreateWithStagesAndTasks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)

	workflow, err := svc.CreateWorkflow(context.Background(), &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Vệ sinh nhanh",
		Stages: []domain.CreateStageRequest{
			{Name: "Vệ sinh", Tasks: []string{"Lau bụi", "Giặt lót"}},
			{Name: "Kiểm tra"},
		},
	})
	require.NoError(t, err)

	require.Len(t, workflow.Stages, 2)
	require.Len(t, workflow.Stages[0].Tasks, 2)
	assert.Equal(t, "Lau bụi", workflow.Stages[0].Tasks[0].Title)
	assert.Equal(t, 1, workflow.Stages[0].Tasks[0].Order)
	assert.False(t, workflow.Stages[0].Tasks[0].Completed)
}

func TestWorkflowService_CreateUnknownProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)

	_, err := svc.CreateWorkflow(context.Background(), &domain.CreateWorkflowRequest{
		ProductID: uuid.New(),
		Name:      "Phục hồi",
	})
	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestWorkflowService_StageStatusDerivesWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Phục hồi",
		Stages: []domain.CreateStageRequest{
			{Name: "Vệ sinh"},
			{Name: "Xi mạ"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStageStatus(ctx, workflow.ID, workflow.Stages[0].ID, &domain.UpdateStageStatusRequest{
		Status: domain.WorkflowStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusInProgress, updated.Status)

	updated, err = svc.UpdateStageStatus(ctx, workflow.ID, workflow.Stages[0].ID, &domain.UpdateStageStatusRequest{
		Status: domain.WorkflowStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusPending, updated.Status)
	require.NotNil(t, updated.Stages[0].CompletedAt)

	updated, err = svc.UpdateStageStatus(ctx, workflow.ID, workflow.Stages[1].ID, &domain.UpdateStageStatusRequest{
		Status: domain.WorkflowStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestWorkflowService_BlockedStageBlocksWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Phục hồi",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStageStatus(ctx, workflow.ID, workflow.Stages[0].ID, &domain.UpdateStageStatusRequest{
		Status: domain.WorkflowStatusBlocked,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusBlocked, updated.Status)
}

func TestWorkflowService_StageOfOtherWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Phục hồi",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStageStatus(ctx, uuid.New(), workflow.Stages[0].ID, &domain.UpdateStageStatusRequest{
		Status: domain.WorkflowStatusInProgress,
	})
	assert.ErrorIs(t, err, service.ErrStageNotFound)
}

func TestWorkflowService_TaskCompletionCompletesStage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Vệ sinh nhanh",
		Stages: []domain.CreateStageRequest{
			{Name: "Vệ sinh", Tasks: []string{"Lau bụi", "Giặt lót"}},
		},
	})
	require.NoError(t, err)
	stage := workflow.Stages[0]

	updated, err := svc.UpdateTaskCompletion(ctx, workflow.ID, stage.ID, stage.Tasks[0].ID, &domain.UpdateTaskCompletionRequest{Completed: true})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusPending, updated.Stages[0].Status)

	updated, err = svc.UpdateTaskCompletion(ctx, workflow.ID, stage.ID, stage.Tasks[1].ID, &domain.UpdateTaskCompletionRequest{Completed: true})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusCompleted, updated.Stages[0].Status)
	assert.Equal(t, domain.WorkflowStatusCompleted, updated.Status)
}

func TestWorkflowService_AutoReopenStage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, true)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Vệ sinh nhanh",
		Stages: []domain.CreateStageRequest{
			{Name: "Vệ sinh", Tasks: []string{"Lau bụi"}},
		},
	})
	require.NoError(t, err)
	stage := workflow.Stages[0]

	updated, err := svc.UpdateTaskCompletion(ctx, workflow.ID, stage.ID, stage.Tasks[0].ID, &domain.UpdateTaskCompletionRequest{Completed: true})
	require.NoError(t, err)
	require.Equal(t, domain.WorkflowStatusCompleted, updated.Stages[0].Status)

	updated, err = svc.UpdateTaskCompletion(ctx, workflow.ID, stage.ID, stage.Tasks[0].ID, &domain.UpdateTaskCompletionRequest{Completed: false})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusInProgress, updated.Stages[0].Status)
	assert.Nil(t, updated.Stages[0].CompletedAt)
}

func TestWorkflowService_NoAutoReopenKeepsStageCompleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Vệ sinh nhanh",
		Stages: []domain.CreateStageRequest{
			{Name: "Vệ sinh", Tasks: []string{"Lau bụi"}},
		},
	})
	require.NoError(t, err)
	stage := workflow.Stages[0]

	updated, err := svc.UpdateTaskCompletion(ctx, workflow.ID, stage.ID, stage.Tasks[0].ID, &domain.UpdateTaskCompletionRequest{Completed: true})
	require.NoError(t, err)
	require.Equal(t, domain.WorkflowStatusCompleted, updated.Stages[0].Status)

	updated, err = svc.UpdateTaskCompletion(ctx, workflow.ID, stage.ID, stage.Tasks[0].ID, &domain.UpdateTaskCompletionRequest{Completed: false})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusCompleted, updated.Stages[0].Status)
}

func TestWorkflowService_DeleteTaskCompletesStage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Vệ sinh nhanh",
		Stages: []domain.CreateStageRequest{
			{Name: "Vệ sinh", Tasks: []string{"Lau bụi", "Giặt lót"}},
		},
	})
	require.NoError(t, err)
	stage := workflow.Stages[0]

	_, err = svc.UpdateTaskCompletion(ctx, workflow.ID, stage.ID, stage.Tasks[0].ID, &domain.UpdateTaskCompletionRequest{Completed: true})
	require.NoError(t, err)

	// removing the open task leaves only completed tasks
	updated, err := svc.DeleteTask(ctx, workflow.ID, stage.ID, stage.Tasks[1].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusCompleted, updated.Stages[0].Status)
	assert.Len(t, updated.Stages[0].Tasks, 1)
}

func TestWorkflowService_AddTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Vệ sinh nhanh",
		Stages: []domain.CreateStageRequest{
			{Name: "Vệ sinh", Tasks: []string{"Lau bụi"}},
		},
	})
	require.NoError(t, err)
	stage := workflow.Stages[0]

	updated, err := svc.AddTask(ctx, workflow.ID, stage.ID, &domain.AddTaskRequest{Title: "Sấy khô"})
	require.NoError(t, err)
	require.Len(t, updated.Stages[0].Tasks, 2)
	assert.Equal(t, "Sấy khô", updated.Stages[0].Tasks[1].Title)
	assert.Equal(t, 2, updated.Stages[0].Tasks[1].Order)
}

func TestWorkflowService_AssignStage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	user := &domain.User{Email: "tech@example.com", Password: "x", Name: "Kỹ thuật viên"}
	require.NoError(t, db.Create(user).Error)

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Phục hồi",
	})
	require.NoError(t, err)

	updated, err := svc.AssignStage(ctx, workflow.ID, workflow.Stages[0].ID, &domain.AssignStageRequest{
		AssignedTo: &user.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Stages[0].AssignedTo)
	assert.Equal(t, user.ID, *updated.Stages[0].AssignedTo)

	// clearing the assignment
	updated, err = svc.AssignStage(ctx, workflow.ID, workflow.Stages[0].ID, &domain.AssignStageRequest{})
	require.NoError(t, err)
	assert.Nil(t, updated.Stages[0].AssignedTo)
}

func TestWorkflowService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Phục hồi",
		Stages: []domain.CreateStageRequest{
			{Name: "Vệ sinh", Tasks: []string{"Lau bụi"}},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWorkflow(ctx, workflow.ID))

	_, err = svc.GetWorkflow(ctx, workflow.ID)
	assert.ErrorIs(t, err, service.ErrWorkflowNotFound)

	var stageCount, taskCount int64
	require.NoError(t, db.Model(&domain.WorkflowStage{}).Where("workflow_id = ?", workflow.ID).Count(&stageCount).Error)
	assert.Zero(t, stageCount)
	require.NoError(t, db.Model(&domain.WorkflowTask{}).Count(&taskCount).Error)
	assert.Zero(t, taskCount)
}

func TestWorkflowService_ReapplyCompletedKeepsTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Vệ sinh nhanh",
		Stages:    []domain.CreateStageRequest{{Name: "Vệ sinh"}},
	})
	require.NoError(t, err)
	stageID := workflow.Stages[0].ID

	_, err = svc.UpdateStageStatus(ctx, workflow.ID, stageID, &domain.UpdateStageStatusRequest{
		Status: domain.WorkflowStatusCompleted,
	})
	require.NoError(t, err)

	var first domain.WorkflowStage
	require.NoError(t, db.First(&first, "id = ?", stageID).Error)
	require.NotNil(t, first.CompletedAt)

	time.Sleep(10 * time.Millisecond)

	updated, err := svc.UpdateStageStatus(ctx, workflow.ID, stageID, &domain.UpdateStageStatusRequest{
		Status: domain.WorkflowStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowStatusCompleted, updated.Status)

	var second domain.WorkflowStage
	require.NoError(t, db.First(&second, "id = ?", stageID).Error)
	require.NotNil(t, second.CompletedAt)
	assert.Equal(t, first.CompletedAt.UnixNano(), second.CompletedAt.UnixNano())
}

func TestWorkflowService_UpdateNoFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createWorkflowService(db, false)
	product := createWorkflowFixture(t, db)
	ctx := context.Background()

	workflow, err := svc.CreateWorkflow(ctx, &domain.CreateWorkflowRequest{
		ProductID: product.ID,
		Name:      "Phục hồi",
	})
	require.NoError(t, err)

	_, err = svc.UpdateWorkflow(ctx, workflow.ID, &domain.UpdateWorkflowRequest{})
	assert.ErrorIs(t, err, service.ErrNoFieldsToUpdate)
}
