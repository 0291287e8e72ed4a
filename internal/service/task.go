package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"volunteer-marketplace-backend/internal/authz"
	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

type projectTaskService struct {
	projRepo     repository.ProjectRepository
	projRoleRepo repository.ProjectRoleRepository
	taskRepo     repository.TaskRepository
	roleRepo     repository.TaskRoleRepository
	appRepo      repository.ApplicationRepository
	reviewRepo   repository.TaskReviewRepository
	logRepo      repository.ProjectLogRepository
	userRepo     repository.UserRepository
	tx           repository.Tx
	gate         *authz.Gate
	notifier     NotificationService
}

func NewProjectTaskService(
	projRepo repository.ProjectRepository,
	projRoleRepo repository.ProjectRoleRepository,
	taskRepo repository.TaskRepository,
	roleRepo repository.TaskRoleRepository,
	appRepo repository.ApplicationRepository,
	reviewRepo repository.TaskReviewRepository,
	logRepo repository.ProjectLogRepository,
	userRepo repository.UserRepository,
	tx repository.Tx,
	gate *authz.Gate,
	notifier NotificationService,
) ProjectTaskService {
	return &projectTaskService{
		projRepo:     projRepo,
		projRoleRepo: projRoleRepo,
		taskRepo:     taskRepo,
		roleRepo:     roleRepo,
		appRepo:      appRepo,
		reviewRepo:   reviewRepo,
		logRepo:      logRepo,
		userRepo:     userRepo,
		tx:           tx,
		gate:         gate,
		notifier:     notifier,
	}
}

func (s *projectTaskService) CreateDefaultTask(ctx context.Context, userID, projectID int32) (*domain.ProjectTask, error) {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID}, authz.PermTaskEdit); err != nil {
		return nil, err
	}
	project, err := s.projRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := &domain.ProjectTask{
		ProjectID:           projectID,
		Name:                "New task",
		Type:                domain.TaskTypeDomainWork,
		Stage:               domain.TaskStageDraft,
		AcceptingVolunteers: false,
		EstimatedStartDate:  project.IntendedStartDate,
		EstimatedEndDate:    project.IntendedEndDate,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *projectTaskService) SaveTask(ctx context.Context, userID int32, task *domain.ProjectTask) error {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: task.ProjectID}, authz.PermTaskEdit); err != nil {
		return err
	}
	stored, err := s.taskRepo.GetByID(ctx, task.ProjectID, task.ID)
	if err != nil {
		return err
	}
	// Stage transitions go through the dedicated operations.
	task.Stage = stored.Stage
	return s.taskRepo.Update(ctx, task)
}

func (s *projectTaskService) PublishTask(ctx context.Context, userID, projectID, taskID int32) error {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID}, authz.PermTaskEdit); err != nil {
		return err
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	if task.Stage != domain.TaskStageDraft {
		return domain.NewValidationError("only draft tasks can be published")
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		task.Stage = domain.TaskStageNotStarted
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return err
		}
		return s.appendTaskLog(ctx, task, userID, fmt.Sprintf("Task %s published", task.Name))
	})
}

func (s *projectTaskService) ToggleAcceptingVolunteers(ctx context.Context, userID, projectID, taskID int32) error {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID}, authz.PermTaskEdit); err != nil {
		return err
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	task.AcceptingVolunteers = !task.AcceptingVolunteers
	return s.taskRepo.Update(ctx, task)
}

// DeleteTask removes a task that has no volunteers and is not completed.
func (s *projectTaskService) DeleteTask(ctx context.Context, userID, projectID, taskID int32) error {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID}, authz.PermTaskDelete); err != nil {
		return err
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	count, err := s.roleRepo.CountByTask(ctx, taskID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewValidationError("a task with volunteers cannot be deleted")
	}
	if task.Stage == domain.TaskStageCompleted {
		return domain.NewValidationError("a completed task cannot be deleted")
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Delete(ctx, taskID); err != nil {
			return err
		}
		return s.appendTaskLog(ctx, task, userID, fmt.Sprintf("Task %s deleted", task.Name))
	})
}

func (s *projectTaskService) GetTask(ctx context.Context, projectID, taskID int32) (*domain.ProjectTask, error) {
	return s.taskRepo.GetByID(ctx, projectID, taskID)
}

func (s *projectTaskService) ListProjectTasks(ctx context.Context, userID, projectID int32) ([]domain.ProjectTask, error) {
	err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID}, authz.PermProjectMemberView)
	if err == nil {
		return s.taskRepo.ListByProject(ctx, projectID)
	}
	if errors.Is(err, domain.ErrPermissionDenied) {
		return s.taskRepo.ListPublicByProject(ctx, projectID)
	}
	return nil, err
}

// ApplyToVolunteer files an application. The applicant needs an accepted
// volunteer profile and no pending application on the same task.
func (s *projectTaskService) ApplyToVolunteer(ctx context.Context, userID, projectID, taskID int32, letter string) (*domain.VolunteerApplication, error) {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID, TaskID: taskID}, authz.PermTaskApply); err != nil {
		return nil, err
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}
	if !task.AcceptingVolunteers {
		return nil, domain.NewValidationError("task is not accepting volunteers")
	}
	pending, err := s.appRepo.HasPending(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.NewValidationError("a pending application for this task already exists")
	}

	app := &domain.VolunteerApplication{
		TaskID:            taskID,
		VolunteerID:       userID,
		ApplicationLetter: letter,
		Status:            domain.ReviewStatusNew,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	s.notifyOfficials(ctx, projectID, "New volunteer application awaiting review",
		domain.NotificationSourceApplication, app.ID)
	return app, nil
}

// AcceptVolunteer resolves an application positively: the volunteer gets a
// task role, the task starts, exclusive task types stop accepting further
// volunteers, and the project status is recomputed.
func (s *projectTaskService) AcceptVolunteer(ctx context.Context, reviewerID, projectID, taskID, applicationID int32, publicComment, privateNotes string) error {
	if err := s.gate.Require(ctx, reviewerID, authz.Target{ProjectID: projectID}, authz.PermVolunteerDecision); err != nil {
		return err
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	app, err := s.appRepo.GetByID(ctx, taskID, applicationID)
	if err != nil {
		return err
	}
	if !app.IsNew() {
		return domain.NewValidationError("application has already been resolved")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := time.Now()
		app.Status = domain.ReviewStatusAccepted
		app.PublicReviewerComments = publicComment
		app.PrivateReviewerNotes = privateNotes
		app.ResolutionDate = &now
		if err := s.appRepo.Update(ctx, app); err != nil {
			return err
		}
		role := &domain.ProjectTaskRole{
			TaskID: taskID,
			UserID: app.VolunteerID,
			Role:   domain.TaskRoleVolunteer,
		}
		if err := s.roleRepo.Create(ctx, role); err != nil {
			return err
		}
		if task.Stage == domain.TaskStageNotStarted {
			task.Stage = domain.TaskStageStarted
		}
		if !task.Type.AllowsMultipleVolunteers() {
			task.AcceptingVolunteers = false
		}
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return err
		}
		if err := s.appendTaskLog(ctx, task, reviewerID,
			fmt.Sprintf("Volunteer accepted onto task %s", task.Name)); err != nil {
			return err
		}
		return s.recomputeProjectStatus(ctx, projectID, reviewerID)
	})
	if err != nil {
		return err
	}

	_ = s.notifier.NotifyUser(ctx, app.VolunteerID,
		fmt.Sprintf("Your application to volunteer on %s was accepted", task.Name),
		domain.NotificationSeverityInfo, domain.NotificationSourceApplication, app.ID)
	return nil
}

func (s *projectTaskService) RejectVolunteer(ctx context.Context, reviewerID, projectID, taskID, applicationID int32, publicComment, privateNotes string) error {
	if err := s.gate.Require(ctx, reviewerID, authz.Target{ProjectID: projectID}, authz.PermVolunteerDecision); err != nil {
		return err
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	app, err := s.appRepo.GetByID(ctx, taskID, applicationID)
	if err != nil {
		return err
	}
	if !app.IsNew() {
		return domain.NewValidationError("application has already been resolved")
	}

	now := time.Now()
	app.Status = domain.ReviewStatusRejected
	app.PublicReviewerComments = publicComment
	app.PrivateReviewerNotes = privateNotes
	app.ResolutionDate = &now
	if err := s.appRepo.Update(ctx, app); err != nil {
		return err
	}
	_ = s.notifier.NotifyUser(ctx, app.VolunteerID,
		fmt.Sprintf("Your application to volunteer on %s was rejected", task.Name),
		domain.NotificationSeverityWarning, domain.NotificationSourceApplication, app.ID)
	return nil
}

// CancelVolunteering removes the acting user's volunteer role. When the last
// volunteer leaves, the task reopens: stage back to NotStarted and
// accepting_volunteers set again.
func (s *projectTaskService) CancelVolunteering(ctx context.Context, userID, projectID, taskID int32) error {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID, TaskID: taskID}, authz.PermTaskVolunteerCancel); err != nil {
		return err
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	if task.Stage == domain.TaskStageCompleted {
		return domain.NewValidationError("volunteering on a completed task cannot be cancelled")
	}
	role, err := s.roleRepo.Get(ctx, taskID, userID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.roleRepo.Delete(ctx, role.ID); err != nil {
			return err
		}
		remaining, err := s.roleRepo.CountByTask(ctx, taskID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			task.Stage = domain.TaskStageNotStarted
			task.AcceptingVolunteers = true
			if err := s.taskRepo.Update(ctx, task); err != nil {
				return err
			}
		}
		return s.appendTaskLog(ctx, task, userID,
			fmt.Sprintf("Volunteer left task %s", task.Name))
	})
	if err != nil {
		return err
	}
	s.notifyOfficials(ctx, projectID,
		fmt.Sprintf("A volunteer left the task %s", task.Name),
		domain.NotificationSourceTask, task.ID)
	return nil
}

func (s *projectTaskService) ListTaskApplications(ctx context.Context, userID, projectID, taskID int32) ([]domain.VolunteerApplication, error) {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID}, authz.PermVolunteerDecision); err != nil {
		return nil, err
	}
	return s.appRepo.ListByTask(ctx, taskID)
}

// GetTaskApplication returns a single application, visible to project
// officials and to the applicant themselves.
func (s *projectTaskService) GetTaskApplication(ctx context.Context, userID, projectID, taskID, applicationID int32) (*domain.VolunteerApplication, error) {
	app, err := s.appRepo.GetByID(ctx, taskID, applicationID)
	if err != nil {
		return nil, err
	}
	target := authz.Target{ProjectID: projectID, ApplicantID: app.VolunteerID}
	if err := s.gate.Require(ctx, userID, target, authz.PermApplicationView); err != nil {
		return nil, err
	}
	return app, nil
}

// MarkTaskAsCompleted is invoked by a task volunteer when the work is done.
// It opens a completion review and parks the task in WaitingReview.
func (s *projectTaskService) MarkTaskAsCompleted(ctx context.Context, userID, projectID, taskID int32, comment string, effortHours int32) (*domain.ProjectTaskReview, error) {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID, TaskID: taskID}, authz.PermTaskVolunteerFinish); err != nil {
		return nil, err
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Stage != domain.TaskStageStarted {
		return nil, domain.NewValidationError("only started tasks can be marked as completed")
	}

	review := &domain.ProjectTaskReview{
		TaskID:               taskID,
		VolunteerID:          userID,
		VolunteerComment:     comment,
		VolunteerEffortHours: effortHours,
		Result:               domain.ReviewStatusNew,
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			return err
		}
		task.Stage = domain.TaskStageWaitingReview
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return err
		}
		return s.appendTaskLog(ctx, task, userID,
			fmt.Sprintf("Task %s marked as completed, waiting for review", task.Name))
	})
	if err != nil {
		return nil, err
	}
	s.notifyOfficials(ctx, projectID,
		fmt.Sprintf("Task %s is waiting for completion review", task.Name),
		domain.NotificationSourceTaskReview, review.ID)
	return review, nil
}

// AcceptTaskReview closes the loop on a completed task: the review is
// accepted, the task completes, the volunteer's profile statistics and
// badges are refreshed and the project status is recomputed. All writes
// commit together.
func (s *projectTaskService) AcceptTaskReview(ctx context.Context, reviewerID, projectID, taskID, reviewID int32, comment string, score int32) error {
	if err := s.gate.Require(ctx, reviewerID, authz.Target{ProjectID: projectID}, authz.PermTaskReviewDo); err != nil {
		return err
	}
	if score < 0 || score > 5 {
		return domain.NewValidationError("review score must be between 0 and 5")
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	review, err := s.reviewRepo.GetByID(ctx, taskID, reviewID)
	if err != nil {
		return err
	}
	if review.Result != domain.ReviewStatusNew {
		return domain.NewValidationError("task review has already been resolved")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := time.Now()
		review.Result = domain.ReviewStatusAccepted
		review.ReviewerComment = comment
		review.Score = score
		review.ReviewDate = &now
		if err := s.reviewRepo.Update(ctx, review); err != nil {
			return err
		}
		task.Stage = domain.TaskStageCompleted
		task.PercentageComplete = 1.0
		task.ActualEffortHours = review.VolunteerEffortHours
		task.AcceptingVolunteers = false
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return err
		}
		if err := s.updateVolunteerScore(ctx, review.VolunteerID, score); err != nil {
			return err
		}
		if err := s.appendTaskLog(ctx, task, reviewerID,
			fmt.Sprintf("Completion review of task %s accepted", task.Name)); err != nil {
			return err
		}
		return s.recomputeProjectStatus(ctx, projectID, reviewerID)
	})
	if err != nil {
		return err
	}

	_ = s.notifier.NotifyUser(ctx, review.VolunteerID,
		fmt.Sprintf("Your work on %s was accepted", task.Name),
		domain.NotificationSeverityInfo, domain.NotificationSourceTaskReview, review.ID)
	return nil
}

// RejectTaskReview reopens the task; the volunteer keeps the assignment.
func (s *projectTaskService) RejectTaskReview(ctx context.Context, reviewerID, projectID, taskID, reviewID int32, comment string) error {
	if err := s.gate.Require(ctx, reviewerID, authz.Target{ProjectID: projectID}, authz.PermTaskReviewDo); err != nil {
		return err
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	review, err := s.reviewRepo.GetByID(ctx, taskID, reviewID)
	if err != nil {
		return err
	}
	if review.Result != domain.ReviewStatusNew {
		return domain.NewValidationError("task review has already been resolved")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := time.Now()
		review.Result = domain.ReviewStatusRejected
		review.ReviewerComment = comment
		review.ReviewDate = &now
		if err := s.reviewRepo.Update(ctx, review); err != nil {
			return err
		}
		task.Stage = domain.TaskStageStarted
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return err
		}
		return s.appendTaskLog(ctx, task, reviewerID,
			fmt.Sprintf("Completion review of task %s rejected, task reopened", task.Name))
	})
	if err != nil {
		return err
	}

	_ = s.notifier.NotifyUser(ctx, review.VolunteerID,
		fmt.Sprintf("Your work on %s needs changes", task.Name),
		domain.NotificationSeverityWarning, domain.NotificationSourceTaskReview, review.ID)
	return nil
}

func (s *projectTaskService) DeleteProjectTaskRole(ctx context.Context, ownerID, projectID, taskID, roleID int32) error {
	if err := s.gate.Require(ctx, ownerID, authz.Target{ProjectID: projectID}, authz.PermProjectRoleEdit); err != nil {
		return err
	}
	task, err := s.taskRepo.GetByID(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	role, err := s.roleRepo.GetByID(ctx, taskID, roleID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.roleRepo.Delete(ctx, role.ID); err != nil {
			return err
		}
		remaining, err := s.roleRepo.CountByTask(ctx, taskID)
		if err != nil {
			return err
		}
		if remaining == 0 && task.Stage != domain.TaskStageCompleted {
			task.Stage = domain.TaskStageNotStarted
			task.AcceptingVolunteers = true
			if err := s.taskRepo.Update(ctx, task); err != nil {
				return err
			}
		}
		return s.appendTaskLog(ctx, task, ownerID,
			fmt.Sprintf("Volunteer removed from task %s", task.Name))
	})
	if err != nil {
		return err
	}
	_ = s.notifier.NotifyUser(ctx, role.UserID,
		fmt.Sprintf("You were removed from the task %s", task.Name),
		domain.NotificationSeverityWarning, domain.NotificationSourceTask, task.ID)
	return nil
}

// recomputeProjectStatus applies the lifecycle derivation after a task
// mutation and logs the project status change when one occurs. Must run
// inside the surrounding transaction.
func (s *projectTaskService) recomputeProjectStatus(ctx context.Context, projectID, actorID int32) error {
	project, err := s.projRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	volunteers := make(map[int32]int32, len(tasks))
	for _, t := range tasks {
		count, err := s.roleRepo.CountByTask(ctx, t.ID)
		if err != nil {
			return err
		}
		volunteers[t.ID] = count
	}

	next := DeriveProjectStatus(project.Status, tasks, volunteers)
	if next == project.Status {
		return nil
	}
	project.Status = next
	if next == domain.ProjectStatusInProgress && project.ActualStartDate == nil {
		now := time.Now()
		project.ActualStartDate = &now
	}
	if err := s.projRepo.Update(ctx, project); err != nil {
		return err
	}
	return s.logRepo.Create(ctx, &domain.ProjectLog{
		ProjectID:    project.ID,
		ChangeType:   ChangeTypeProjectStatus,
		ChangeTarget: project.ID,
		Description:  fmt.Sprintf("Project status moved to %s", next),
		AuthorID:     actorID,
	})
}

// updateVolunteerScore folds an accepted review score into the volunteer's
// running average and refreshes the review-score badge when a new tier is
// reached.
func (s *projectTaskService) updateVolunteerScore(ctx context.Context, volunteerID, score int32) error {
	profile, err := s.userRepo.GetVolunteerProfile(ctx, volunteerID)
	if err != nil {
		if isNoRows(err) {
			return nil
		}
		return err
	}
	total := profile.AverageReviewScore*float64(profile.CompletedTaskCount) + float64(score)
	profile.CompletedTaskCount++
	profile.AverageReviewScore = total / float64(profile.CompletedTaskCount)
	if err := s.userRepo.UpdateVolunteerProfile(ctx, profile); err != nil {
		return err
	}

	tier, ok := reviewScoreBadgeTier(profile)
	if !ok {
		return nil
	}
	badges, err := s.userRepo.ListBadges(ctx, volunteerID)
	if err != nil {
		return err
	}
	for _, b := range badges {
		if b.Type == domain.BadgeTypeReviewScore && b.Tier >= tier {
			return nil
		}
	}
	return s.userRepo.CreateBadge(ctx, &domain.UserBadge{
		UserID: volunteerID,
		Type:   domain.BadgeTypeReviewScore,
		Tier:   tier,
	})
}

func reviewScoreBadgeTier(p *domain.VolunteerProfile) (domain.BadgeTier, bool) {
	if p.CompletedTaskCount < 3 {
		return 0, false
	}
	switch {
	case p.AverageReviewScore >= 4.5:
		return domain.BadgeTierMaster, true
	case p.AverageReviewScore >= 4.0:
		return domain.BadgeTierAdvanced, true
	case p.AverageReviewScore >= 3.5:
		return domain.BadgeTierBasic, true
	}
	return 0, false
}

func (s *projectTaskService) appendTaskLog(ctx context.Context, task *domain.ProjectTask, authorID int32, description string) error {
	return s.logRepo.Create(ctx, &domain.ProjectLog{
		ProjectID:    task.ProjectID,
		ChangeType:   ChangeTypeTaskStage,
		ChangeTarget: task.ID,
		Description:  description,
		AuthorID:     authorID,
	})
}

// notifyOfficials informs the project owners of a task level event. Best
// effort.
func (s *projectTaskService) notifyOfficials(ctx context.Context, projectID int32, message string, source domain.NotificationSource, targetID int32) {
	owners, err := s.ownerIDs(ctx, projectID)
	if err != nil {
		return
	}
	_ = s.notifier.NotifyUsers(ctx, owners, message, domain.NotificationSeverityInfo, source, targetID)
}

func (s *projectTaskService) ownerIDs(ctx context.Context, projectID int32) ([]int32, error) {
	// Owners are always officials; scoping and management volunteers are
	// reached through their own task notifications.
	roles, err := s.projRoleRepo.ListOwners(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ids := make([]int32, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.UserID)
	}
	return ids, nil
}
