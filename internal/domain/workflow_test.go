package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atelier-vn/shop-api/internal/domain"
)

func TestDeriveWorkflowStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []domain.WorkflowStatus
		expected domain.WorkflowStatus
	}{
		{
			name:     "no stages",
			statuses: nil,
			expected: domain.WorkflowStatusPending,
		},
		{
			name:     "all pending",
			statuses: []domain.WorkflowStatus{domain.WorkflowStatusPending, domain.WorkflowStatusPending},
			expected: domain.WorkflowStatusPending,
		},
		{
			name:     "all completed",
			statuses: []domain.WorkflowStatus{domain.WorkflowStatusCompleted, domain.WorkflowStatusCompleted},
			expected: domain.WorkflowStatusCompleted,
		},
		{
			name:     "one in progress",
			statuses: []domain.WorkflowStatus{domain.WorkflowStatusCompleted, domain.WorkflowStatusInProgress},
			expected: domain.WorkflowStatusInProgress,
		},
		{
			name:     "blocked wins over in progress",
			statuses: []domain.WorkflowStatus{domain.WorkflowStatusInProgress, domain.WorkflowStatusBlocked},
			expected: domain.WorkflowStatusBlocked,
		},
		{
			name:     "completion wins over blockage only when every stage is done",
			statuses: []domain.WorkflowStatus{domain.WorkflowStatusCompleted, domain.WorkflowStatusBlocked},
			expected: domain.WorkflowStatusBlocked,
		},
		{
			name:     "completed and pending",
			statuses: []domain.WorkflowStatus{domain.WorkflowStatusCompleted, domain.WorkflowStatusPending},
			expected: domain.WorkflowStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stages := make([]domain.WorkflowStage, len(tt.statuses))
			for i, s := range tt.statuses {
				stages[i] = domain.WorkflowStage{Status: s}
			}
			assert.Equal(t, tt.expected, domain.DeriveWorkflowStatus(stages))
		})
	}
}

func TestAllTasksCompleted(t *testing.T) {
	t.Run("no tasks is not complete", func(t *testing.T) {
		assert.False(t, domain.AllTasksCompleted(nil))
	})

	t.Run("one open task", func(t *testing.T) {
		tasks := []domain.WorkflowTask{
			{Title: "Clean", Completed: true},
			{Title: "Dry", Completed: false},
		}
		assert.False(t, domain.AllTasksCompleted(tasks))
	})

	t.Run("all checked off", func(t *testing.T) {
		tasks := []domain.WorkflowTask{
			{Title: "Clean", Completed: true},
			{Title: "Dry", Completed: true},
		}
		assert.True(t, domain.AllTasksCompleted(tasks))
	})
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, domain.LeadStatusReminder.IsValid())
	assert.False(t, domain.LeadStatus("UNKNOWN").IsValid())

	assert.True(t, domain.OrderStatusDeposited.IsValid())
	assert.False(t, domain.OrderStatus("").IsValid())

	assert.True(t, domain.TransactionTypeRevenue.IsValid())
	assert.False(t, domain.TransactionType("INCOME").IsValid())

	assert.True(t, domain.WorkflowStatusBlocked.IsValid())
	assert.False(t, domain.WorkflowStatus("DONE").IsValid())
}
