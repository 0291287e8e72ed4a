package domain

import "time"

type ProjectStatus string

const (
	ProjectStatusDraft                 ProjectStatus = "DRAFT"
	ProjectStatusNew                   ProjectStatus = "NEW"
	ProjectStatusDesign                ProjectStatus = "DESIGN"
	ProjectStatusWaitingDesignApproval ProjectStatus = "WAITING_DESIGN_APPROVAL"
	ProjectStatusWaitingStaff          ProjectStatus = "WAITING_STAFF"
	ProjectStatusInProgress            ProjectStatus = "IN_PROGRESS"
	ProjectStatusWaitingReview         ProjectStatus = "WAITING_REVIEW"
	ProjectStatusCompleted             ProjectStatus = "COMPLETED"
	ProjectStatusExpired               ProjectStatus = "EXPIRED"
	ProjectStatusDeleted               ProjectStatus = "DELETED"
)

type Project struct {
	ID                  int32         `json:"id"`
	OrgID               int32         `json:"org_id"`
	Name                string        `json:"name"`
	ShortSummary        string        `json:"short_summary"`
	Motivation          string        `json:"motivation"`
	SolutionDescription string        `json:"solution_description"`
	Cause               SocialCause   `json:"cause"`
	Status              ProjectStatus `json:"status"`
	IntendedStartDate   time.Time     `json:"intended_start_date"`
	IntendedEndDate     time.Time     `json:"intended_end_date"`
	ActualStartDate     *time.Time    `json:"actual_start_date,omitempty"`
	ActualEndDate       *time.Time    `json:"actual_end_date,omitempty"`
	DeliverableURL      string        `json:"deliverable_url"`
	DocumentationURL    string        `json:"documentation_url"`
	CreatedOn           time.Time     `json:"created_on"`
	UpdatedOn           time.Time     `json:"updated_on"`
}

func (p *Project) IsCompleted() bool {
	return p.Status == ProjectStatusCompleted
}

// IsPublic reports whether the project shows up in public listings.
func (p *Project) IsPublic() bool {
	switch p.Status {
	case ProjectStatusDraft, ProjectStatusExpired, ProjectStatusDeleted:
		return false
	}
	return true
}

type ProjRole string

const (
	ProjRoleOwner ProjRole = "OWNER"
	ProjRoleStaff ProjRole = "STAFF"
)

// ProjectRole assigns a user a role within a project. Unique per
// (user, project); a project always retains at least one owner.
type ProjectRole struct {
	ID        int32     `json:"id"`
	ProjectID int32     `json:"project_id"`
	UserID    int32     `json:"user_id"`
	Role      ProjRole  `json:"role"`
	CreatedOn time.Time `json:"created_on"`
}

type ProjectFollower struct {
	ID        int32     `json:"id"`
	ProjectID int32     `json:"project_id"`
	UserID    int32     `json:"user_id"`
	CreatedOn time.Time `json:"created_on"`
}

// ProjectLog is the append-only audit trail: one entry per task-stage or
// project-status change, attributed to the acting user.
type ProjectLog struct {
	ID           int32     `json:"id"`
	ProjectID    int32     `json:"project_id"`
	ChangeType   string    `json:"change_type"`
	ChangeTarget int32     `json:"change_target"`
	Description  string    `json:"description"`
	AuthorID     int32     `json:"author_id"`
	ChangeDate   time.Time `json:"change_date"`
}
