package authz

import (
	"context"
	"database/sql"
	"errors"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

// Evaluator answers boolean role questions for (user, entity) pairs. Every
// predicate reads the role tables freshly; nothing is cached. A non-positive
// user id is treated as anonymous and fails every predicate.
type Evaluator struct {
	userRepo     repository.UserRepository
	orgRoleRepo  repository.OrgRoleRepository
	projRoleRepo repository.ProjectRoleRepository
	taskRepo     repository.TaskRepository
	taskRoleRepo repository.TaskRoleRepository
}

func NewEvaluator(
	userRepo repository.UserRepository,
	orgRoleRepo repository.OrgRoleRepository,
	projRoleRepo repository.ProjectRoleRepository,
	taskRepo repository.TaskRepository,
	taskRoleRepo repository.TaskRoleRepository,
) *Evaluator {
	return &Evaluator{
		userRepo:     userRepo,
		orgRoleRepo:  orgRoleRepo,
		projRoleRepo: projRoleRepo,
		taskRepo:     taskRepo,
		taskRoleRepo: taskRoleRepo,
	}
}

func (e *Evaluator) IsSiteStaff(ctx context.Context, userID int32) (bool, error) {
	if userID <= 0 {
		return false, nil
	}
	user, err := e.userRepo.GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Type == domain.UserTypeSiteStaff, nil
}

func (e *Evaluator) IsOrganizationAdmin(ctx context.Context, userID, orgID int32) (bool, error) {
	role, err := e.orgRole(ctx, userID, orgID)
	if err != nil || role == nil {
		return false, err
	}
	return role.Role == domain.OrgRoleAdministrator, nil
}

func (e *Evaluator) IsOrganizationStaff(ctx context.Context, userID, orgID int32) (bool, error) {
	role, err := e.orgRole(ctx, userID, orgID)
	if err != nil || role == nil {
		return false, err
	}
	return role.Role == domain.OrgRoleStaff, nil
}

func (e *Evaluator) IsOrganizationMember(ctx context.Context, userID, orgID int32) (bool, error) {
	role, err := e.orgRole(ctx, userID, orgID)
	if err != nil {
		return false, err
	}
	return role != nil, nil
}

func (e *Evaluator) IsProjectOwner(ctx context.Context, userID, projectID int32) (bool, error) {
	role, err := e.projectRole(ctx, userID, projectID)
	if err != nil || role == nil {
		return false, err
	}
	return role.Role == domain.ProjRoleOwner, nil
}

func (e *Evaluator) IsProjectStaff(ctx context.Context, userID, projectID int32) (bool, error) {
	role, err := e.projectRole(ctx, userID, projectID)
	if err != nil || role == nil {
		return false, err
	}
	return role.Role == domain.ProjRoleStaff, nil
}

// IsProjectVolunteer reports whether the user holds a volunteer role on any
// task of the project.
func (e *Evaluator) IsProjectVolunteer(ctx context.Context, userID, projectID int32) (bool, error) {
	if userID <= 0 {
		return false, nil
	}
	roles, err := e.taskRoleRepo.ListByUserAndProject(ctx, userID, projectID)
	if err != nil {
		return false, err
	}
	return len(roles) > 0, nil
}

// IsProjectOfficial reports whether the user is a project owner or a
// volunteer on the project's scoping or project-management task.
func (e *Evaluator) IsProjectOfficial(ctx context.Context, userID, projectID int32) (bool, error) {
	owner, err := e.IsProjectOwner(ctx, userID, projectID)
	if err != nil || owner {
		return owner, err
	}
	types, err := e.volunteerTaskTypes(ctx, userID, projectID)
	if err != nil {
		return false, err
	}
	return types[domain.TaskTypeScoping] || types[domain.TaskTypeProjectManagement], nil
}

// IsProjectMember covers owners, project staff and scoping/management
// volunteers. Plain domain-work and QA volunteers are not members.
func (e *Evaluator) IsProjectMember(ctx context.Context, userID, projectID int32) (bool, error) {
	role, err := e.projectRole(ctx, userID, projectID)
	if err != nil {
		return false, err
	}
	if role != nil {
		return true, nil
	}
	types, err := e.volunteerTaskTypes(ctx, userID, projectID)
	if err != nil {
		return false, err
	}
	return types[domain.TaskTypeScoping] || types[domain.TaskTypeProjectManagement], nil
}

// IsTaskEditor reports whether the user may edit tasks of the project: a
// project owner or the scoping volunteer.
func (e *Evaluator) IsTaskEditor(ctx context.Context, userID, projectID int32) (bool, error) {
	owner, err := e.IsProjectOwner(ctx, userID, projectID)
	if err != nil || owner {
		return owner, err
	}
	types, err := e.volunteerTaskTypes(ctx, userID, projectID)
	if err != nil {
		return false, err
	}
	return types[domain.TaskTypeScoping], nil
}

func (e *Evaluator) IsTaskVolunteer(ctx context.Context, userID, taskID int32) (bool, error) {
	if userID <= 0 {
		return false, nil
	}
	role, err := e.taskRoleRepo.Get(ctx, taskID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role != nil, nil
}

// HasApprovedVolunteerProfile reports whether the user holds an accepted
// volunteer profile, the eligibility bar for applying to tasks.
func (e *Evaluator) HasApprovedVolunteerProfile(ctx context.Context, userID int32) (bool, error) {
	if userID <= 0 {
		return false, nil
	}
	profile, err := e.userRepo.GetVolunteerProfile(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profile.Status == domain.ReviewStatusAccepted, nil
}

// CanReviewTask reports whether the user may resolve task completion reviews
// for the project: an official, or a volunteer on one of the project's QA
// tasks.
func (e *Evaluator) CanReviewTask(ctx context.Context, userID, projectID int32) (bool, error) {
	official, err := e.IsProjectOfficial(ctx, userID, projectID)
	if err != nil || official {
		return official, err
	}
	types, err := e.volunteerTaskTypes(ctx, userID, projectID)
	if err != nil {
		return false, err
	}
	return types[domain.TaskTypeQA], nil
}

// CanViewApplication allows project officials and the applicant themselves.
func (e *Evaluator) CanViewApplication(ctx context.Context, userID, projectID, applicantID int32) (bool, error) {
	if userID == applicantID && userID > 0 {
		return true, nil
	}
	return e.IsProjectOfficial(ctx, userID, projectID)
}

// BelongsToTaskReview allows the review's volunteer and anyone who may
// resolve reviews for the project.
func (e *Evaluator) BelongsToTaskReview(ctx context.Context, userID, projectID, volunteerID int32) (bool, error) {
	if userID == volunteerID && userID > 0 {
		return true, nil
	}
	return e.CanReviewTask(ctx, userID, projectID)
}

func (e *Evaluator) orgRole(ctx context.Context, userID, orgID int32) (*domain.OrganizationRole, error) {
	if userID <= 0 {
		return nil, nil
	}
	role, err := e.orgRoleRepo.Get(ctx, orgID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (e *Evaluator) projectRole(ctx context.Context, userID, projectID int32) (*domain.ProjectRole, error) {
	if userID <= 0 {
		return nil, nil
	}
	role, err := e.projRoleRepo.Get(ctx, projectID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}

// volunteerTaskTypes returns the set of task types the user volunteers on
// within the project.
func (e *Evaluator) volunteerTaskTypes(ctx context.Context, userID, projectID int32) (map[domain.TaskType]bool, error) {
	types := make(map[domain.TaskType]bool)
	if userID <= 0 {
		return types, nil
	}
	roles, err := e.taskRoleRepo.ListByUserAndProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return types, nil
	}
	tasks, err := e.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int32]domain.TaskType, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t.Type
	}
	for _, r := range roles {
		if tt, ok := byID[r.TaskID]; ok {
			types[tt] = true
		}
	}
	return types, nil
}
