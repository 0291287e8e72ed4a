package authz

import (
	"context"

	"github.com/stretchr/testify/mock"

	"volunteer-marketplace-backend/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserRepo) CreateVolunteerProfile(ctx context.Context, profile *domain.VolunteerProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *mockUserRepo) GetVolunteerProfile(ctx context.Context, userID int32) (*domain.VolunteerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerProfile), args.Error(1)
}
func (m *mockUserRepo) UpdateVolunteerProfile(ctx context.Context, profile *domain.VolunteerProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *mockUserRepo) ListPendingVolunteerProfiles(ctx context.Context) ([]domain.VolunteerProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.VolunteerProfile), args.Error(1)
}
func (m *mockUserRepo) CreateBadge(ctx context.Context, badge *domain.UserBadge) error {
	return m.Called(ctx, badge).Error(0)
}
func (m *mockUserRepo) ListBadges(ctx context.Context, userID int32) ([]domain.UserBadge, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.UserBadge), args.Error(1)
}

type mockOrgRoleRepo struct {
	mock.Mock
}

func (m *mockOrgRoleRepo) Create(ctx context.Context, role *domain.OrganizationRole) error {
	return m.Called(ctx, role).Error(0)
}
func (m *mockOrgRoleRepo) GetByID(ctx context.Context, orgID, roleID int32) (*domain.OrganizationRole, error) {
	args := m.Called(ctx, orgID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationRole), args.Error(1)
}
func (m *mockOrgRoleRepo) Get(ctx context.Context, orgID, userID int32) (*domain.OrganizationRole, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationRole), args.Error(1)
}
func (m *mockOrgRoleRepo) Update(ctx context.Context, role *domain.OrganizationRole) error {
	return m.Called(ctx, role).Error(0)
}
func (m *mockOrgRoleRepo) Delete(ctx context.Context, roleID int32) error {
	return m.Called(ctx, roleID).Error(0)
}
func (m *mockOrgRoleRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.OrganizationRole, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.OrganizationRole), args.Error(1)
}
func (m *mockOrgRoleRepo) ListAdmins(ctx context.Context, orgID int32) ([]domain.User, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *mockOrgRoleRepo) CountAdmins(ctx context.Context, orgID int32) (int32, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *mockOrgRoleRepo) ListMembers(ctx context.Context, orgID int32) ([]domain.User, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.User), args.Error(1)
}

type mockProjectRoleRepo struct {
	mock.Mock
}

func (m *mockProjectRoleRepo) Create(ctx context.Context, role *domain.ProjectRole) error {
	return m.Called(ctx, role).Error(0)
}
func (m *mockProjectRoleRepo) GetByID(ctx context.Context, projectID, roleID int32) (*domain.ProjectRole, error) {
	args := m.Called(ctx, projectID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectRole), args.Error(1)
}
func (m *mockProjectRoleRepo) Get(ctx context.Context, projectID, userID int32) (*domain.ProjectRole, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectRole), args.Error(1)
}
func (m *mockProjectRoleRepo) Update(ctx context.Context, role *domain.ProjectRole) error {
	return m.Called(ctx, role).Error(0)
}
func (m *mockProjectRoleRepo) Delete(ctx context.Context, roleID int32) error {
	return m.Called(ctx, roleID).Error(0)
}
func (m *mockProjectRoleRepo) ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectRole, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectRole), args.Error(1)
}
func (m *mockProjectRoleRepo) ListOwners(ctx context.Context, projectID int32) ([]domain.ProjectRole, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectRole), args.Error(1)
}
func (m *mockProjectRoleRepo) CountOwners(ctx context.Context, projectID int32) (int32, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *mockProjectRoleRepo) ToggleFollower(ctx context.Context, projectID, userID int32) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *mockProjectRoleRepo) ListFollowers(ctx context.Context, projectID int32) ([]domain.User, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.User), args.Error(1)
}

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Create(ctx context.Context, task *domain.ProjectTask) error {
	return m.Called(ctx, task).Error(0)
}
func (m *mockTaskRepo) GetByID(ctx context.Context, projectID, taskID int32) (*domain.ProjectTask, error) {
	args := m.Called(ctx, projectID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectTask), args.Error(1)
}
func (m *mockTaskRepo) Update(ctx context.Context, task *domain.ProjectTask) error {
	return m.Called(ctx, task).Error(0)
}
func (m *mockTaskRepo) Delete(ctx context.Context, taskID int32) error {
	return m.Called(ctx, taskID).Error(0)
}
func (m *mockTaskRepo) ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectTask, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectTask), args.Error(1)
}
func (m *mockTaskRepo) ListPublicByProject(ctx context.Context, projectID int32) ([]domain.ProjectTask, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectTask), args.Error(1)
}

type mockTaskRoleRepo struct {
	mock.Mock
}

func (m *mockTaskRoleRepo) Create(ctx context.Context, role *domain.ProjectTaskRole) error {
	return m.Called(ctx, role).Error(0)
}
func (m *mockTaskRoleRepo) GetByID(ctx context.Context, taskID, roleID int32) (*domain.ProjectTaskRole, error) {
	args := m.Called(ctx, taskID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectTaskRole), args.Error(1)
}
func (m *mockTaskRoleRepo) Get(ctx context.Context, taskID, userID int32) (*domain.ProjectTaskRole, error) {
	args := m.Called(ctx, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectTaskRole), args.Error(1)
}
func (m *mockTaskRoleRepo) Update(ctx context.Context, role *domain.ProjectTaskRole) error {
	return m.Called(ctx, role).Error(0)
}
func (m *mockTaskRoleRepo) Delete(ctx context.Context, roleID int32) error {
	return m.Called(ctx, roleID).Error(0)
}
func (m *mockTaskRoleRepo) ListVolunteers(ctx context.Context, taskID int32) ([]domain.User, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *mockTaskRoleRepo) CountByTask(ctx context.Context, taskID int32) (int32, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *mockTaskRoleRepo) ListByUserAndProject(ctx context.Context, userID, projectID int32) ([]domain.ProjectTaskRole, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Get(0).([]domain.ProjectTaskRole), args.Error(1)
}
func (m *mockTaskRoleRepo) ListTasksByVolunteer(ctx context.Context, userID int32) ([]domain.ProjectTask, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ProjectTask), args.Error(1)
}
