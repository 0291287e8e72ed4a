package repository

import (
	"context"

	"volunteer-marketplace-backend/internal/domain"
)

// Tx runs fn inside a single database transaction. Lifecycle operations use
// it so that role creation, state changes, log entries and notifications
// commit or fail together.
type Tx interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// Volunteer profiles
	CreateVolunteerProfile(ctx context.Context, profile *domain.VolunteerProfile) error
	GetVolunteerProfile(ctx context.Context, userID int32) (*domain.VolunteerProfile, error)
	UpdateVolunteerProfile(ctx context.Context, profile *domain.VolunteerProfile) error
	ListPendingVolunteerProfiles(ctx context.Context) ([]domain.VolunteerProfile, error)

	// Badges
	CreateBadge(ctx context.Context, badge *domain.UserBadge) error
	ListBadges(ctx context.Context, userID int32) ([]domain.UserBadge, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	GetByName(ctx context.Context, name string) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Search(ctx context.Context, name string, causes []domain.SocialCause) ([]domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
	SetSocialCauses(ctx context.Context, orgID int32, causes []domain.SocialCause) error
}

type OrgRoleRepository interface {
	Create(ctx context.Context, role *domain.OrganizationRole) error
	GetByID(ctx context.Context, orgID, roleID int32) (*domain.OrganizationRole, error)
	Get(ctx context.Context, orgID, userID int32) (*domain.OrganizationRole, error)
	Update(ctx context.Context, role *domain.OrganizationRole) error
	Delete(ctx context.Context, roleID int32) error
	ListByOrg(ctx context.Context, orgID int32) ([]domain.OrganizationRole, error)
	ListAdmins(ctx context.Context, orgID int32) ([]domain.User, error)
	CountAdmins(ctx context.Context, orgID int32) (int32, error)
	ListMembers(ctx context.Context, orgID int32) ([]domain.User, error)
}

type MembershipRequestRepository interface {
	Create(ctx context.Context, req *domain.MembershipRequest) error
	GetByID(ctx context.Context, orgID, reqID int32) (*domain.MembershipRequest, error)
	Update(ctx context.Context, req *domain.MembershipRequest) error
	ListByOrg(ctx context.Context, orgID int32) ([]domain.MembershipRequest, error)
	HasPending(ctx context.Context, orgID, userID int32) (bool, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	ListByOrg(ctx context.Context, orgID int32) ([]domain.Project, error)
	ListPublic(ctx context.Context) ([]domain.Project, error)
	ListPublicByOrg(ctx context.Context, orgID int32) ([]domain.Project, error)
	ListDraftsByOwner(ctx context.Context, userID int32) ([]domain.Project, error)
	// ListExpirable returns non-terminal projects whose intended end date has
	// passed; used by the expiration job.
	ListExpirable(ctx context.Context) ([]domain.Project, error)
}

type ProjectRoleRepository interface {
	Create(ctx context.Context, role *domain.ProjectRole) error
	GetByID(ctx context.Context, projectID, roleID int32) (*domain.ProjectRole, error)
	Get(ctx context.Context, projectID, userID int32) (*domain.ProjectRole, error)
	Update(ctx context.Context, role *domain.ProjectRole) error
	Delete(ctx context.Context, roleID int32) error
	ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectRole, error)
	ListOwners(ctx context.Context, projectID int32) ([]domain.ProjectRole, error)
	CountOwners(ctx context.Context, projectID int32) (int32, error)

	// Followers
	ToggleFollower(ctx context.Context, projectID, userID int32) (bool, error)
	ListFollowers(ctx context.Context, projectID int32) ([]domain.User, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.ProjectTask) error
	GetByID(ctx context.Context, projectID, taskID int32) (*domain.ProjectTask, error)
	Update(ctx context.Context, task *domain.ProjectTask) error
	Delete(ctx context.Context, taskID int32) error
	ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectTask, error)
	// ListPublicByProject excludes draft and deleted tasks.
	ListPublicByProject(ctx context.Context, projectID int32) ([]domain.ProjectTask, error)
}

type TaskRoleRepository interface {
	Create(ctx context.Context, role *domain.ProjectTaskRole) error
	GetByID(ctx context.Context, taskID, roleID int32) (*domain.ProjectTaskRole, error)
	Get(ctx context.Context, taskID, userID int32) (*domain.ProjectTaskRole, error)
	Update(ctx context.Context, role *domain.ProjectTaskRole) error
	Delete(ctx context.Context, roleID int32) error
	ListVolunteers(ctx context.Context, taskID int32) ([]domain.User, error)
	CountByTask(ctx context.Context, taskID int32) (int32, error)
	// ListByUserAndProject returns the volunteer roles a user holds on any
	// task of the given project.
	ListByUserAndProject(ctx context.Context, userID, projectID int32) ([]domain.ProjectTaskRole, error)
	ListTasksByVolunteer(ctx context.Context, userID int32) ([]domain.ProjectTask, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.VolunteerApplication) error
	GetByID(ctx context.Context, taskID, appID int32) (*domain.VolunteerApplication, error)
	Update(ctx context.Context, app *domain.VolunteerApplication) error
	ListByTask(ctx context.Context, taskID int32) ([]domain.VolunteerApplication, error)
	ListByProject(ctx context.Context, projectID int32) ([]domain.VolunteerApplication, error)
	HasPending(ctx context.Context, taskID, volunteerID int32) (bool, error)
}

type TaskReviewRepository interface {
	Create(ctx context.Context, review *domain.ProjectTaskReview) error
	GetByID(ctx context.Context, taskID, reviewID int32) (*domain.ProjectTaskReview, error)
	Update(ctx context.Context, review *domain.ProjectTaskReview) error
	ListByTask(ctx context.Context, taskID int32) ([]domain.ProjectTaskReview, error)
	ListPendingByProject(ctx context.Context, projectID int32) ([]domain.ProjectTaskReview, error)
}

type ProjectLogRepository interface {
	Create(ctx context.Context, entry *domain.ProjectLog) error
	ListByProject(ctx context.Context, projectID int32) ([]domain.ProjectLog, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	CountUnread(ctx context.Context, userID int32) (int32, error)
}
