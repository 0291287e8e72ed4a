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

// ProjectLog change types.
const (
	ChangeTypeProjectStatus = "PROJECT_STATUS"
	ChangeTypeProjectRole   = "PROJECT_ROLE"
	ChangeTypeTaskStage     = "TASK_STAGE"
)

type projectService struct {
	projRepo repository.ProjectRepository
	roleRepo repository.ProjectRoleRepository
	taskRepo repository.TaskRepository
	logRepo  repository.ProjectLogRepository
	tx       repository.Tx
	gate     *authz.Gate
	notifier NotificationService
}

func NewProjectService(
	projRepo repository.ProjectRepository,
	roleRepo repository.ProjectRoleRepository,
	taskRepo repository.TaskRepository,
	logRepo repository.ProjectLogRepository,
	tx repository.Tx,
	gate *authz.Gate,
	notifier NotificationService,
) ProjectService {
	return &projectService{
		projRepo: projRepo,
		roleRepo: roleRepo,
		taskRepo: taskRepo,
		logRepo:  logRepo,
		tx:       tx,
		gate:     gate,
		notifier: notifier,
	}
}

// CreateProject stores the project in Draft, makes the creator its owner and
// seeds the four default tasks. Only organization administrators may create
// projects for an organization.
func (s *projectService) CreateProject(ctx context.Context, userID, orgID int32, project *domain.Project) error {
	if err := s.gate.Require(ctx, userID, authz.Target{OrgID: orgID}, authz.PermOrganizationEdit); err != nil {
		return err
	}
	if project.Name == "" {
		return domain.NewValidationError("project name is required")
	}

	project.OrgID = orgID
	project.Status = domain.ProjectStatusDraft

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.projRepo.Create(ctx, project); err != nil {
			return err
		}
		owner := &domain.ProjectRole{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      domain.ProjRoleOwner,
		}
		if err := s.roleRepo.Create(ctx, owner); err != nil {
			return err
		}
		for _, t := range defaultTasks(project) {
			if err := s.taskRepo.Create(ctx, t); err != nil {
				return err
			}
		}
		return s.logRepo.Create(ctx, &domain.ProjectLog{
			ProjectID:    project.ID,
			ChangeType:   ChangeTypeProjectStatus,
			ChangeTarget: project.ID,
			Description:  fmt.Sprintf("Project %s created as draft", project.Name),
			AuthorID:     userID,
		})
	})
}

func defaultTasks(p *domain.Project) []*domain.ProjectTask {
	specs := []struct {
		name string
		typ  domain.TaskType
	}{
		{"Project scoping", domain.TaskTypeScoping},
		{"Project management", domain.TaskTypeProjectManagement},
		{p.Name, domain.TaskTypeDomainWork},
		{"Quality assurance", domain.TaskTypeQA},
	}
	tasks := make([]*domain.ProjectTask, 0, len(specs))
	for _, spec := range specs {
		tasks = append(tasks, &domain.ProjectTask{
			ProjectID:           p.ID,
			Name:                spec.name,
			Type:                spec.typ,
			Stage:               domain.TaskStageDraft,
			AcceptingVolunteers: false,
			EstimatedStartDate:  p.IntendedStartDate,
			EstimatedEndDate:    p.IntendedEndDate,
		})
	}
	return tasks
}

func (s *projectService) SaveProject(ctx context.Context, userID int32, project *domain.Project) error {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: project.ID}, authz.PermProjectEdit); err != nil {
		return err
	}
	stored, err := s.projRepo.GetByID(ctx, project.ID)
	if err != nil {
		return err
	}
	// Status is owned by the lifecycle engine, not by edits.
	project.Status = stored.Status
	project.OrgID = stored.OrgID
	return s.projRepo.Update(ctx, project)
}

// PublishProject moves a draft project to New. Publishing a project that has
// already left Draft is a no-op.
func (s *projectService) PublishProject(ctx context.Context, userID, projectID int32) (*domain.Project, error) {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID}, authz.PermProjectPublish); err != nil {
		return nil, err
	}
	project, err := s.projRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectStatusDraft {
		return project, nil
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		project.Status = domain.ProjectStatusNew
		if err := s.projRepo.Update(ctx, project); err != nil {
			return err
		}
		return s.logRepo.Create(ctx, &domain.ProjectLog{
			ProjectID:    project.ID,
			ChangeType:   ChangeTypeProjectStatus,
			ChangeTarget: project.ID,
			Description:  fmt.Sprintf("Project %s published", project.Name),
			AuthorID:     userID,
		})
	})
	if err != nil {
		return nil, err
	}
	s.notifyProjectAudience(ctx, project, fmt.Sprintf("Project %s is now public", project.Name))
	return project, nil
}

// FinishProject completes a project that has passed review of its primary
// deliverable. Completion is never derived; it is this explicit action.
func (s *projectService) FinishProject(ctx context.Context, userID, projectID int32) (*domain.Project, error) {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID}, authz.PermProjectApproveAsCompleted); err != nil {
		return nil, err
	}
	project, err := s.projRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectStatusWaitingReview {
		return nil, domain.NewValidationError("project is not waiting for final review")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := time.Now()
		project.Status = domain.ProjectStatusCompleted
		project.ActualEndDate = &now
		if err := s.projRepo.Update(ctx, project); err != nil {
			return err
		}
		return s.logRepo.Create(ctx, &domain.ProjectLog{
			ProjectID:    project.ID,
			ChangeType:   ChangeTypeProjectStatus,
			ChangeTarget: project.ID,
			Description:  fmt.Sprintf("Project %s approved as completed", project.Name),
			AuthorID:     userID,
		})
	})
	if err != nil {
		return nil, err
	}
	s.notifyProjectAudience(ctx, project, fmt.Sprintf("Project %s was completed", project.Name))
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID int32) (*domain.Project, error) {
	return s.projRepo.GetByID(ctx, projectID)
}

func (s *projectService) ListPublicProjects(ctx context.Context) ([]domain.Project, error) {
	return s.projRepo.ListPublic(ctx)
}

func (s *projectService) ListOrganizationProjects(ctx context.Context, userID, orgID int32) ([]domain.Project, error) {
	member, err := s.isOrgViewer(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}
	if member {
		return s.projRepo.ListByOrg(ctx, orgID)
	}
	return s.projRepo.ListPublicByOrg(ctx, orgID)
}

func (s *projectService) isOrgViewer(ctx context.Context, userID, orgID int32) (bool, error) {
	err := s.gate.Require(ctx, userID, authz.Target{OrgID: orgID}, authz.PermOrganizationStaffView)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrPermissionDenied) {
		return false, nil
	}
	return false, err
}

func (s *projectService) ListUserDraftProjects(ctx context.Context, userID int32) ([]domain.Project, error) {
	if userID <= 0 {
		return nil, domain.ErrPermissionDenied
	}
	return s.projRepo.ListDraftsByOwner(ctx, userID)
}

func (s *projectService) GetProjectChanges(ctx context.Context, userID, projectID int32) ([]domain.ProjectLog, error) {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID}, authz.PermProjectMemberView); err != nil {
		return nil, err
	}
	return s.logRepo.ListByProject(ctx, projectID)
}

func (s *projectService) AddStaffMember(ctx context.Context, ownerID, projectID, userID int32, role domain.ProjRole) error {
	if err := s.gate.Require(ctx, ownerID, authz.Target{ProjectID: projectID}, authz.PermProjectRoleEdit); err != nil {
		return err
	}
	existing, err := s.roleRepo.Get(ctx, projectID, userID)
	if err != nil && !isNoRows(err) {
		return err
	}
	if existing != nil {
		return domain.NewValidationError("user already has a role on this project")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		newRole := &domain.ProjectRole{ProjectID: projectID, UserID: userID, Role: role}
		if err := s.roleRepo.Create(ctx, newRole); err != nil {
			return err
		}
		return s.logRepo.Create(ctx, &domain.ProjectLog{
			ProjectID:    projectID,
			ChangeType:   ChangeTypeProjectRole,
			ChangeTarget: newRole.ID,
			Description:  fmt.Sprintf("User %d joined the project as %s", userID, role),
			AuthorID:     ownerID,
		})
	})
	if err != nil {
		return err
	}
	_ = s.notifier.NotifyUser(ctx, userID, "You were added to a project",
		domain.NotificationSeverityInfo, domain.NotificationSourceProject, projectID)
	return nil
}

func (s *projectService) SaveProjectRole(ctx context.Context, ownerID, projectID, roleID int32, newRole domain.ProjRole) error {
	if err := s.gate.Require(ctx, ownerID, authz.Target{ProjectID: projectID}, authz.PermProjectRoleEdit); err != nil {
		return err
	}
	role, err := s.roleRepo.GetByID(ctx, projectID, roleID)
	if err != nil {
		return err
	}
	if role.Role == domain.ProjRoleOwner && newRole != domain.ProjRoleOwner {
		if err := s.ensureNotLastOwner(ctx, projectID); err != nil {
			return err
		}
	}
	role.Role = newRole
	return s.roleRepo.Update(ctx, role)
}

func (s *projectService) DeleteProjectRole(ctx context.Context, ownerID, projectID, roleID int32) error {
	if err := s.gate.Require(ctx, ownerID, authz.Target{ProjectID: projectID}, authz.PermProjectRoleEdit); err != nil {
		return err
	}
	role, err := s.roleRepo.GetByID(ctx, projectID, roleID)
	if err != nil {
		return err
	}
	if role.Role == domain.ProjRoleOwner {
		if err := s.ensureNotLastOwner(ctx, projectID); err != nil {
			return err
		}
	}
	if err := s.roleRepo.Delete(ctx, role.ID); err != nil {
		return err
	}
	_ = s.notifier.NotifyUser(ctx, role.UserID, "Your project role was removed",
		domain.NotificationSeverityInfo, domain.NotificationSourceProject, projectID)
	return nil
}

func (s *projectService) ListProjectStaff(ctx context.Context, userID, projectID int32) ([]domain.ProjectRole, error) {
	if err := s.gate.Require(ctx, userID, authz.Target{ProjectID: projectID}, authz.PermProjectMemberView); err != nil {
		return nil, err
	}
	return s.roleRepo.ListByProject(ctx, projectID)
}

func (s *projectService) ToggleFollower(ctx context.Context, userID, projectID int32) (bool, error) {
	if userID <= 0 {
		return false, domain.ErrPermissionDenied
	}
	if _, err := s.projRepo.GetByID(ctx, projectID); err != nil {
		return false, err
	}
	return s.roleRepo.ToggleFollower(ctx, projectID, userID)
}

// ensureNotLastOwner guards the invariant that a project retains at least
// one owner.
func (s *projectService) ensureNotLastOwner(ctx context.Context, projectID int32) error {
	count, err := s.roleRepo.CountOwners(ctx, projectID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return domain.NewValidationError("the last owner of a project cannot be removed")
	}
	return nil
}

// notifyProjectAudience informs owners, staff and followers of a project
// level event. Best effort.
func (s *projectService) notifyProjectAudience(ctx context.Context, project *domain.Project, message string) {
	seen := make(map[int32]bool)
	var ids []int32
	roles, err := s.roleRepo.ListByProject(ctx, project.ID)
	if err == nil {
		for _, r := range roles {
			if !seen[r.UserID] {
				seen[r.UserID] = true
				ids = append(ids, r.UserID)
			}
		}
	}
	followers, err := s.roleRepo.ListFollowers(ctx, project.ID)
	if err == nil {
		for _, f := range followers {
			if !seen[f.ID] {
				seen[f.ID] = true
				ids = append(ids, f.ID)
			}
		}
	}
	_ = s.notifier.NotifyUsers(ctx, ids, message,
		domain.NotificationSeverityInfo, domain.NotificationSourceProject, project.ID)
}
