package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"volunteer-marketplace-backend/internal/authz"
	"volunteer-marketplace-backend/internal/domain"
)

// fakeTx runs the function directly; the unit tests are not concerned with
// transaction boundaries.
type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// newTestGate builds a real gate over the mocked role tables so the
// permission checks in the services run against the same expectations.
func newTestGate(userRepo *MockUserRepo, orgRoleRepo *MockOrgRoleRepo, projRoleRepo *MockProjectRoleRepo, taskRepo *MockTaskRepo, taskRoleRepo *MockTaskRoleRepo) *authz.Gate {
	return authz.NewGate(authz.NewEvaluator(userRepo, orgRoleRepo, projRoleRepo, taskRepo, taskRoleRepo))
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) CreateVolunteerProfile(ctx context.Context, profile *domain.VolunteerProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockUserRepo) GetVolunteerProfile(ctx context.Context, userID int32) (*domain.VolunteerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerProfile), args.Error(1)
}
func (m *MockUserRepo) UpdateVolunteerProfile(ctx context.Context, profile *domain.VolunteerProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockUserRepo) ListPendingVolunteerProfiles(ctx context.Context) ([]domain.VolunteerProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.VolunteerProfile), args.Error(1)
}
func (m *MockUserRepo) CreateBadge(ctx context.Context, badge *domain.UserBadge) error {
	args := m.Called(ctx, badge)
	return args.Error(0)
}
func (m *MockUserRepo) ListBadges(ctx context.Context, userID int32) ([]domain.UserBadge, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.UserBadge), args.Error(1)
}

// MockOrgRepo
type MockOrgRepo struct {
	mock.Mock
}

func (m *MockOrgRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrgRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) Search(ctx context.Context, name string, causes []domain.SocialCause) ([]domain.Organization, error) {
	args := m.Called(ctx, name, causes)
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrgRepo) SetSocialCauses(ctx context.Context, orgID int32, causes []domain.SocialCause) error {
	args := m.Called(ctx, orgID, causes)
	return args.Error(0)
}

// MockOrgRoleRepo
type MockOrgRoleRepo struct {
	mock.Mock
}

func (m *MockOrgRoleRepo) Create(ctx context.Context, role *domain.OrganizationRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}
func (m *MockOrgRoleRepo) GetByID(ctx context.Context, orgID, roleID int32) (*domain.OrganizationRole, error) {
	args := m.Called(ctx, orgID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationRole), args.Error(1)
}
func (m *MockOrgRoleRepo) Get(ctx context.Context, orgID, userID int32) (*domain.OrganizationRole, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationRole), args.Error(1)
}
func (m *MockOrgRoleRepo) Update(ctx context.Context, role *domain.OrganizationRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}
func (m *MockOrgRoleRepo) Delete(ctx context.Context, roleID int32) error {
	args := m.Called(ctx, roleID)
	return args.Error(0)
}
func (m *MockOrgRoleRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.OrganizationRole, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.OrganizationRole), args.Error(1)
}
func (m *MockOrgRoleRepo) ListAdmins(ctx context.Context, orgID int32) ([]domain.User, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockOrgRoleRepo) CountAdmins(ctx context.Context, orgID int32) (int32, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockOrgRoleRepo) ListMembers(ctx context.Context, orgID int32) ([]domain.User, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockMembershipRequestRepo
type MockMembershipRequestRepo struct {
	mock.Mock
}

func (m *MockMembershipRequestRepo) Create(ctx context.Context, req *domain.MembershipRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMembershipRequestRepo) GetByID(ctx context.Context, orgID, reqID int32) (*domain.MembershipRequest, error) {
	args := m.Called(ctx, orgID, reqID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipRequest), args.Error(1)
}
func (m *MockMembershipRequestRepo) Update(ctx context.Context, req *domain.MembershipRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMembershipRequestRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.MembershipRequest, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.MembershipRequest), args.Error(1)
}
func (m *MockMembershipRequestRepo) HasPending(ctx context.Context, orgID, userID int32) (bool, error) {
	args := m.Called(ctx, orgID, userID)
	return args.Bool(0), args.Error(1)
}

// MockProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}
func (m *MockProjectRepo) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}
func (m *MockProjectRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.Project, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *MockProjectRepo) ListPublic(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *MockProjectRepo) ListPublicByOrg(ctx context.Context, orgID int32) ([]domain.Project, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *MockProjectRepo) ListDraftsByOwner(ctx context.Context, userID int32) ([]domain.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *MockProjectRepo) ListExpirable(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Project), args.Error(1)
}

// MockProjectRoleRepo
type MockProjectRoleRepo struct {
	mock.Mock
}

func (m *MockProjectRoleRepo) Create(ctx context.Context, role *domain.ProjectRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}
func (m *MockProjectRoleRepo) GetByID(ctx context.Context, projectID, roleID int32) (*domain.ProjectRole, error) {
	args := m.Called(ctx, projectID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectRole), args.Error(1)
}
func (m *MockProjectRoleRepo) Get(ctx context.Context, projectID, userID int32) (*domain.ProjectRole, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectRole), args.Error(1)
}
func (m *MockProjectRoleRepo) Update(ctx context.Context, role *domain.ProjectRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}
func (m *MockProjectRoleRepo) Delete(ctx context.Context, roleID int32) error {
	args := m.Called(ctx, roleID)
	return args.Error(0)
}
func (m *MockProjectRoleRepo) ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectRole, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectRole), args.Error(1)
}
func (m *MockProjectRoleRepo) ListOwners(ctx context.Context, projectID int32) ([]domain.ProjectRole, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectRole), args.Error(1)
}
func (m *MockProjectRoleRepo) CountOwners(ctx context.Context, projectID int32) (int32, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockProjectRoleRepo) ToggleFollower(ctx context.Context, projectID, userID int32) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockProjectRoleRepo) ListFollowers(ctx context.Context, projectID int32) ([]domain.User, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockTaskRepo
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, task *domain.ProjectTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}
func (m *MockTaskRepo) GetByID(ctx context.Context, projectID, taskID int32) (*domain.ProjectTask, error) {
	args := m.Called(ctx, projectID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectTask), args.Error(1)
}
func (m *MockTaskRepo) Update(ctx context.Context, task *domain.ProjectTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}
func (m *MockTaskRepo) Delete(ctx context.Context, taskID int32) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}
func (m *MockTaskRepo) ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectTask, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectTask), args.Error(1)
}
func (m *MockTaskRepo) ListPublicByProject(ctx context.Context, projectID int32) ([]domain.ProjectTask, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectTask), args.Error(1)
}

// MockTaskRoleRepo
type MockTaskRoleRepo struct {
	mock.Mock
}

func (m *MockTaskRoleRepo) Create(ctx context.Context, role *domain.ProjectTaskRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}
func (m *MockTaskRoleRepo) GetByID(ctx context.Context, taskID, roleID int32) (*domain.ProjectTaskRole, error) {
	args := m.Called(ctx, taskID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectTaskRole), args.Error(1)
}
func (m *MockTaskRoleRepo) Get(ctx context.Context, taskID, userID int32) (*domain.ProjectTaskRole, error) {
	args := m.Called(ctx, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectTaskRole), args.Error(1)
}
func (m *MockTaskRoleRepo) Update(ctx context.Context, role *domain.ProjectTaskRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}
func (m *MockTaskRoleRepo) Delete(ctx context.Context, roleID int32) error {
	args := m.Called(ctx, roleID)
	return args.Error(0)
}
func (m *MockTaskRoleRepo) ListVolunteers(ctx context.Context, taskID int32) ([]domain.User, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockTaskRoleRepo) CountByTask(ctx context.Context, taskID int32) (int32, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockTaskRoleRepo) ListByUserAndProject(ctx context.Context, userID, projectID int32) ([]domain.ProjectTaskRole, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Get(0).([]domain.ProjectTaskRole), args.Error(1)
}
func (m *MockTaskRoleRepo) ListTasksByVolunteer(ctx context.Context, userID int32) ([]domain.ProjectTask, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ProjectTask), args.Error(1)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.VolunteerApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, taskID, appID int32) (*domain.VolunteerApplication, error) {
	args := m.Called(ctx, taskID, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerApplication), args.Error(1)
}
func (m *MockApplicationRepo) Update(ctx context.Context, app *domain.VolunteerApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) ListByTask(ctx context.Context, taskID int32) ([]domain.VolunteerApplication, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]domain.VolunteerApplication), args.Error(1)
}
func (m *MockApplicationRepo) ListByProject(ctx context.Context, projectID int32) ([]domain.VolunteerApplication, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.VolunteerApplication), args.Error(1)
}
func (m *MockApplicationRepo) HasPending(ctx context.Context, taskID, volunteerID int32) (bool, error) {
	args := m.Called(ctx, taskID, volunteerID)
	return args.Bool(0), args.Error(1)
}

// MockTaskReviewRepo
type MockTaskReviewRepo struct {
	mock.Mock
}

func (m *MockTaskReviewRepo) Create(ctx context.Context, review *domain.ProjectTaskReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockTaskReviewRepo) GetByID(ctx context.Context, taskID, reviewID int32) (*domain.ProjectTaskReview, error) {
	args := m.Called(ctx, taskID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectTaskReview), args.Error(1)
}
func (m *MockTaskReviewRepo) Update(ctx context.Context, review *domain.ProjectTaskReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockTaskReviewRepo) ListByTask(ctx context.Context, taskID int32) ([]domain.ProjectTaskReview, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]domain.ProjectTaskReview), args.Error(1)
}
func (m *MockTaskReviewRepo) ListPendingByProject(ctx context.Context, projectID int32) ([]domain.ProjectTaskReview, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectTaskReview), args.Error(1)
}

// MockProjectLogRepo
type MockProjectLogRepo struct {
	mock.Mock
}

func (m *MockProjectLogRepo) Create(ctx context.Context, entry *domain.ProjectLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockProjectLogRepo) ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectLog, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectLog), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) CountUnread(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyUser(ctx context.Context, userID int32, message string, severity domain.NotificationSeverity, source domain.NotificationSource, targetID int32) error {
	args := m.Called(ctx, userID, message, severity, source, targetID)
	return args.Error(0)
}
func (m *MockNotifier) NotifyUsers(ctx context.Context, userIDs []int32, message string, severity domain.NotificationSeverity, source domain.NotificationSource, targetID int32) error {
	args := m.Called(ctx, userIDs, message, severity, source, targetID)
	return args.Error(0)
}
func (m *MockNotifier) ListNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotifier) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}
func (m *MockNotifier) CountUnread(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}

// MockEmailSvc
type MockEmailSvc struct {
	mock.Mock
}

func (m *MockEmailSvc) SendWelcomeEmail(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}
func (m *MockEmailSvc) SendNotificationEmail(ctx context.Context, email, name, message string) error {
	args := m.Called(ctx, email, name, message)
	return args.Error(0)
}

// MockUserSvc
type MockUserSvc struct {
	mock.Mock
}

func (m *MockUserSvc) GetUserProfile(ctx context.Context, userID int32) (*domain.User, *domain.VolunteerProfile, []domain.UserBadge, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	var profile *domain.VolunteerProfile
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	if args.Get(1) != nil {
		profile = args.Get(1).(*domain.VolunteerProfile)
	}
	return user, profile, args.Get(2).([]domain.UserBadge), args.Error(3)
}
func (m *MockUserSvc) UpdateProfile(ctx context.Context, userID int32, email, username, firstName, lastName string) error {
	args := m.Called(ctx, userID, email, username, firstName, lastName)
	return args.Error(0)
}
func (m *MockUserSvc) CreateVolunteerProfile(ctx context.Context, userID int32) (*domain.VolunteerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerProfile), args.Error(1)
}
func (m *MockUserSvc) AcceptVolunteerProfile(ctx context.Context, staffID, userID int32) error {
	args := m.Called(ctx, staffID, userID)
	return args.Error(0)
}
func (m *MockUserSvc) RejectVolunteerProfile(ctx context.Context, staffID, userID int32) error {
	args := m.Called(ctx, staffID, userID)
	return args.Error(0)
}
func (m *MockUserSvc) ListPendingVolunteerProfiles(ctx context.Context, staffID int32) ([]domain.VolunteerProfile, error) {
	args := m.Called(ctx, staffID)
	return args.Get(0).([]domain.VolunteerProfile), args.Error(1)
}
