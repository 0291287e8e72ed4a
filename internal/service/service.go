package service

import (
	"context"

	"volunteer-marketplace-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, username, password, firstName, lastName string, userType domain.UserType) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	GetUserProfile(ctx context.Context, userID int32) (*domain.User, *domain.VolunteerProfile, []domain.UserBadge, error)
	UpdateProfile(ctx context.Context, userID int32, email, username, firstName, lastName string) error
	CreateVolunteerProfile(ctx context.Context, userID int32) (*domain.VolunteerProfile, error)
	AcceptVolunteerProfile(ctx context.Context, staffID, userID int32) error
	RejectVolunteerProfile(ctx context.Context, staffID, userID int32) error
	ListPendingVolunteerProfiles(ctx context.Context, staffID int32) ([]domain.VolunteerProfile, error)
}

type OrganizationService interface {
	CreateOrganization(ctx context.Context, userID int32, org *domain.Organization) error
	SaveOrganizationInfo(ctx context.Context, userID int32, org *domain.Organization) error
	GetOrganization(ctx context.Context, id int32) (*domain.Organization, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	SearchOrganizations(ctx context.Context, name string, causes []domain.SocialCause) ([]domain.Organization, error)

	CreateMembershipRequest(ctx context.Context, userID, orgID int32, role domain.OrgRole) (*domain.MembershipRequest, error)
	AcceptMembershipRequest(ctx context.Context, adminID, orgID, requestID int32) error
	RejectMembershipRequest(ctx context.Context, adminID, orgID, requestID int32) error
	ListMembershipRequests(ctx context.Context, adminID, orgID int32) ([]domain.MembershipRequest, error)

	AddStaffMember(ctx context.Context, adminID, orgID, userID int32, role domain.OrgRole) error
	SaveOrganizationRole(ctx context.Context, adminID, orgID, roleID int32, newRole domain.OrgRole) error
	DeleteOrganizationRole(ctx context.Context, adminID, orgID, roleID int32) error
	LeaveOrganization(ctx context.Context, userID, orgID int32) error
	ListMembers(ctx context.Context, userID, orgID int32) ([]domain.User, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, userID, orgID int32, project *domain.Project) error
	SaveProject(ctx context.Context, userID int32, project *domain.Project) error
	PublishProject(ctx context.Context, userID, projectID int32) (*domain.Project, error)
	FinishProject(ctx context.Context, userID, projectID int32) (*domain.Project, error)

	GetProject(ctx context.Context, projectID int32) (*domain.Project, error)
	ListPublicProjects(ctx context.Context) ([]domain.Project, error)
	ListOrganizationProjects(ctx context.Context, userID, orgID int32) ([]domain.Project, error)
	ListUserDraftProjects(ctx context.Context, userID int32) ([]domain.Project, error)
	GetProjectChanges(ctx context.Context, userID, projectID int32) ([]domain.ProjectLog, error)

	AddStaffMember(ctx context.Context, ownerID, projectID, userID int32, role domain.ProjRole) error
	SaveProjectRole(ctx context.Context, ownerID, projectID, roleID int32, newRole domain.ProjRole) error
	DeleteProjectRole(ctx context.Context, ownerID, projectID, roleID int32) error
	ListProjectStaff(ctx context.Context, userID, projectID int32) ([]domain.ProjectRole, error)
	ToggleFollower(ctx context.Context, userID, projectID int32) (bool, error)
}

type ProjectTaskService interface {
	CreateDefaultTask(ctx context.Context, userID, projectID int32) (*domain.ProjectTask, error)
	SaveTask(ctx context.Context, userID int32, task *domain.ProjectTask) error
	PublishTask(ctx context.Context, userID, projectID, taskID int32) error
	ToggleAcceptingVolunteers(ctx context.Context, userID, projectID, taskID int32) error
	DeleteTask(ctx context.Context, userID, projectID, taskID int32) error
	GetTask(ctx context.Context, projectID, taskID int32) (*domain.ProjectTask, error)
	ListProjectTasks(ctx context.Context, userID, projectID int32) ([]domain.ProjectTask, error)

	ApplyToVolunteer(ctx context.Context, userID, projectID, taskID int32, letter string) (*domain.VolunteerApplication, error)
	AcceptVolunteer(ctx context.Context, reviewerID, projectID, taskID, applicationID int32, publicComment, privateNotes string) error
	RejectVolunteer(ctx context.Context, reviewerID, projectID, taskID, applicationID int32, publicComment, privateNotes string) error
	CancelVolunteering(ctx context.Context, userID, projectID, taskID int32) error
	ListTaskApplications(ctx context.Context, userID, projectID, taskID int32) ([]domain.VolunteerApplication, error)
	GetTaskApplication(ctx context.Context, userID, projectID, taskID, applicationID int32) (*domain.VolunteerApplication, error)

	MarkTaskAsCompleted(ctx context.Context, userID, projectID, taskID int32, comment string, effortHours int32) (*domain.ProjectTaskReview, error)
	AcceptTaskReview(ctx context.Context, reviewerID, projectID, taskID, reviewID int32, comment string, score int32) error
	RejectTaskReview(ctx context.Context, reviewerID, projectID, taskID, reviewID int32, comment string) error

	DeleteProjectTaskRole(ctx context.Context, ownerID, projectID, taskID, roleID int32) error
}

type NotificationService interface {
	NotifyUser(ctx context.Context, userID int32, message string, severity domain.NotificationSeverity, source domain.NotificationSource, targetID int32) error
	NotifyUsers(ctx context.Context, userIDs []int32, message string, severity domain.NotificationSeverity, source domain.NotificationSource, targetID int32) error
	ListNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	CountUnread(ctx context.Context, userID int32) (int32, error)
}

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, email, name string) error
	SendNotificationEmail(ctx context.Context, email, name, message string) error
}
