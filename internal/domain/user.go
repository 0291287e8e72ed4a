package domain

import "time"

type UserType string

const (
	UserTypeVolunteer    UserType = "VOLUNTEER"
	UserTypeOrganization UserType = "ORGANIZATION"
	UserTypeSiteStaff    UserType = "SITE_STAFF"
)

type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Type         UserType  `json:"type"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// VolunteerProfile gates task-application eligibility: only users with an
// accepted profile may apply to volunteer on tasks.
type VolunteerProfile struct {
	ID                 int32        `json:"id"`
	UserID             int32        `json:"user_id"`
	Status             ReviewStatus `json:"status"`
	AverageReviewScore float64      `json:"average_review_score"`
	CompletedTaskCount int32        `json:"completed_task_count"`
	IsEdited           bool         `json:"is_edited"`
	CreatedOn          time.Time    `json:"created_on"`
}

type BadgeType string

const (
	BadgeTypeEarlyUser   BadgeType = "EARLY_USER"
	BadgeTypeReviewScore BadgeType = "REVIEW_SCORE"
)

type BadgeTier int32

const (
	BadgeTierBasic    BadgeTier = 0
	BadgeTierAdvanced BadgeTier = 1
	BadgeTierMaster   BadgeTier = 2
)

type UserBadge struct {
	ID        int32     `json:"id"`
	UserID    int32     `json:"user_id"`
	Type      BadgeType `json:"type"`
	Tier      BadgeTier `json:"tier"`
	CreatedOn time.Time `json:"created_on"`
}
