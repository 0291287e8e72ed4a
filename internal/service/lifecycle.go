package service

import (
	"volunteer-marketplace-backend/internal/domain"
)

// DeriveProjectStatus recomputes a project's status from the aggregate state
// of its tasks. The derivation is forward-only along
// New → Design → WaitingStaff → InProgress → WaitingReview; review rejection
// regresses the task stage but never the project status. Draft exits only
// via an explicit publish and Completed only via an explicit finish, so
// neither is derived here.
//
// taskVolunteers maps task id to its current volunteer count.
func DeriveProjectStatus(current domain.ProjectStatus, tasks []domain.ProjectTask, taskVolunteers map[int32]int32) domain.ProjectStatus {
	status := current
	for {
		next := advanceProjectStatus(status, tasks, taskVolunteers)
		if next == status {
			return status
		}
		status = next
	}
}

func advanceProjectStatus(current domain.ProjectStatus, tasks []domain.ProjectTask, taskVolunteers map[int32]int32) domain.ProjectStatus {
	switch current {
	case domain.ProjectStatusNew:
		// Scoping begins once the scoping volunteer is on board.
		for _, t := range tasks {
			if t.Type == domain.TaskTypeScoping && taskVolunteers[t.ID] > 0 {
				return domain.ProjectStatusDesign
			}
		}
	case domain.ProjectStatusDesign:
		for _, t := range tasks {
			if t.Type == domain.TaskTypeScoping && t.Stage == domain.TaskStageCompleted {
				return domain.ProjectStatusWaitingStaff
			}
		}
	case domain.ProjectStatusWaitingStaff:
		if allWorkTasksStaffed(tasks, taskVolunteers) {
			return domain.ProjectStatusInProgress
		}
	case domain.ProjectStatusInProgress:
		// The domain-work task is the primary deliverable.
		for _, t := range tasks {
			if t.Type == domain.TaskTypeDomainWork && t.Stage == domain.TaskStageCompleted {
				return domain.ProjectStatusWaitingReview
			}
		}
	}
	return current
}

// allWorkTasksStaffed reports whether every published non-scoping, non-QA
// task has at least one volunteer. Draft and deleted tasks do not count.
func allWorkTasksStaffed(tasks []domain.ProjectTask, taskVolunteers map[int32]int32) bool {
	for _, t := range tasks {
		if t.Type == domain.TaskTypeScoping || t.Type == domain.TaskTypeQA {
			continue
		}
		if t.Stage == domain.TaskStageDraft || t.Stage == domain.TaskStageDeleted {
			continue
		}
		if taskVolunteers[t.ID] == 0 {
			return false
		}
	}
	return true
}
