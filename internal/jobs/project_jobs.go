package jobs

import (
	"context"
	"fmt"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/logger"
	"volunteer-marketplace-backend/internal/service"
)

// ExpireStaleProjects marks projects whose intended end date has passed as
// expired, logs the change and notifies the owners.
func (jr *JobRunner) ExpireStaleProjects() {
	jr.runWithRecovery("ExpireStaleProjects", func() {
		ctx := context.Background()
		projects, err := jr.store.ProjectRepository.ListExpirable(ctx)
		if err != nil {
			logger.Error("Failed to list expirable projects", "error", err)
			return
		}

		for i := range projects {
			project := &projects[i]
			err := jr.store.WithinTx(ctx, func(ctx context.Context) error {
				project.Status = domain.ProjectStatusExpired
				if err := jr.store.ProjectRepository.Update(ctx, project); err != nil {
					return err
				}
				return jr.store.ProjectLogRepository.Create(ctx, &domain.ProjectLog{
					ProjectID:    project.ID,
					ChangeType:   service.ChangeTypeProjectStatus,
					ChangeTarget: project.ID,
					Description:  fmt.Sprintf("Project %s expired past its intended end date", project.Name),
					AuthorID:     0,
				})
			})
			if err != nil {
				logger.Error("Failed to expire project", "project_id", project.ID, "error", err)
				continue
			}

			owners, err := jr.store.ProjectRoleRepository.ListOwners(ctx, project.ID)
			if err != nil {
				logger.Warn("Failed to list owners for expired project", "project_id", project.ID, "error", err)
				continue
			}
			for _, o := range owners {
				_ = jr.services.Notification.NotifyUser(ctx, o.UserID,
					fmt.Sprintf("Project %s expired past its intended end date", project.Name),
					domain.NotificationSeverityWarning, domain.NotificationSourceProject, project.ID)
			}
		}
		logger.Info("Expired stale projects", "count", len(projects))
	})
}

// SendPendingReviewReminders nudges project owners about task completion
// reviews still waiting for a decision.
func (jr *JobRunner) SendPendingReviewReminders() {
	jr.runWithRecovery("SendPendingReviewReminders", func() {
		ctx := context.Background()
		projects, err := jr.store.ProjectRepository.ListPublic(ctx)
		if err != nil {
			logger.Error("Failed to list projects for review reminders", "error", err)
			return
		}

		reminded := 0
		for i := range projects {
			project := &projects[i]
			pending, err := jr.store.TaskReviewRepository.ListPendingByProject(ctx, project.ID)
			if err != nil {
				logger.Warn("Failed to list pending reviews", "project_id", project.ID, "error", err)
				continue
			}
			if len(pending) == 0 {
				continue
			}
			owners, err := jr.store.ProjectRoleRepository.ListOwners(ctx, project.ID)
			if err != nil {
				logger.Warn("Failed to list owners for review reminders", "project_id", project.ID, "error", err)
				continue
			}
			for _, o := range owners {
				_ = jr.services.Notification.NotifyUser(ctx, o.UserID,
					fmt.Sprintf("Project %s has %d task reviews waiting for a decision", project.Name, len(pending)),
					domain.NotificationSeverityWarning, domain.NotificationSourceTaskReview, project.ID)
			}
			reminded++
		}
		logger.Info("Sent pending review reminders", "projects", reminded)
	})
}
