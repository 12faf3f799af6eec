package domain

// DeriveWorkflowStatus reduces the statuses of a workflow's stages into the
// workflow status. Completion wins over blockage; an empty stage list is
// PENDING.
func DeriveWorkflowStatus(stages []WorkflowStage) WorkflowStatus {
	if len(stages) == 0 {
		return WorkflowStatusPending
	}

	allCompleted := true
	anyBlocked := false
	anyInProgress := false
	for _, s := range stages {
		if s.Status != WorkflowStatusCompleted {
			allCompleted = false
		}
		if s.Status == WorkflowStatusBlocked {
			anyBlocked = true
		}
		if s.Status == WorkflowStatusInProgress {
			anyInProgress = true
		}
	}

	switch {
	case allCompleted:
		return WorkflowStatusCompleted
	case anyBlocked:
		return WorkflowStatusBlocked
	case anyInProgress:
		return WorkflowStatusInProgress
	default:
		return WorkflowStatusPending
	}
}

// AllTasksCompleted reports whether a stage has at least one task and every
// task is checked off.
func AllTasksCompleted(tasks []WorkflowTask) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}
