package domain

import "time"

type TaskType string

const (
	TaskTypeScoping           TaskType = "SCOPING"
	TaskTypeProjectManagement TaskType = "PROJECT_MANAGEMENT"
	TaskTypeDomainWork        TaskType = "DOMAIN_WORK"
	TaskTypeQA                TaskType = "QA"
)

// AllowsMultipleVolunteers reports whether accepting a volunteer leaves the
// task open for more. QA and project-management work is shared by a pool;
// scoping and domain work are exclusive single-assignee tasks.
func (t TaskType) AllowsMultipleVolunteers() bool {
	return t == TaskTypeQA || t == TaskTypeProjectManagement
}

type TaskStage string

const (
	TaskStageDraft         TaskStage = "DRAFT"
	TaskStageNotStarted    TaskStage = "NOT_STARTED"
	TaskStageStarted       TaskStage = "STARTED"
	TaskStageWaitingReview TaskStage = "WAITING_REVIEW"
	TaskStageCompleted     TaskStage = "COMPLETED"
	TaskStageDeleted       TaskStage = "DELETED"
)

type ProjectTask struct {
	ID                   int32     `json:"id"`
	ProjectID            int32     `json:"project_id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Type                 TaskType  `json:"type"`
	Stage                TaskStage `json:"stage"`
	AcceptingVolunteers  bool      `json:"accepting_volunteers"`
	PercentageComplete   float64   `json:"percentage_complete"`
	EstimatedEffortHours int32     `json:"estimated_effort_hours"`
	ActualEffortHours    int32     `json:"actual_effort_hours"`
	EstimatedStartDate   time.Time `json:"estimated_start_date"`
	EstimatedEndDate     time.Time `json:"estimated_end_date"`
	CreatedOn            time.Time `json:"created_on"`
	UpdatedOn            time.Time `json:"updated_on"`
}

func (t *ProjectTask) IsInProgress() bool {
	return t.Stage == TaskStageStarted
}

func (t *ProjectTask) IsPendingReview() bool {
	return t.Stage == TaskStageWaitingReview
}

type TaskRole string

const (
	TaskRoleVolunteer TaskRole = "VOLUNTEER"
)

// ProjectTaskRole is a volunteer assignment. Unique per (user, task).
type ProjectTaskRole struct {
	ID        int32     `json:"id"`
	TaskID    int32     `json:"task_id"`
	UserID    int32     `json:"user_id"`
	Role      TaskRole  `json:"role"`
	CreatedOn time.Time `json:"created_on"`
}

type VolunteerApplication struct {
	ID                     int32        `json:"id"`
	TaskID                 int32        `json:"task_id"`
	VolunteerID            int32        `json:"volunteer_id"`
	ApplicationLetter      string       `json:"application_letter"`
	Status                 ReviewStatus `json:"status"`
	PublicReviewerComments string       `json:"public_reviewer_comments"`
	PrivateReviewerNotes   string       `json:"private_reviewer_notes"`
	ApplicationDate        time.Time    `json:"application_date"`
	ResolutionDate         *time.Time   `json:"resolution_date,omitempty"`
}

func (a *VolunteerApplication) IsNew() bool {
	return a.Status == ReviewStatusNew
}

// ProjectTaskReview is created when a volunteer marks a task complete and is
// resolved by an official or a QA volunteer; acceptance completes the task.
type ProjectTaskReview struct {
	ID                   int32        `json:"id"`
	TaskID               int32        `json:"task_id"`
	VolunteerID          int32        `json:"volunteer_id"`
	VolunteerComment     string       `json:"volunteer_comment"`
	VolunteerEffortHours int32        `json:"volunteer_effort_hours"`
	ReviewerComment      string       `json:"reviewer_comment"`
	Result               ReviewStatus `json:"result"`
	Score                int32        `json:"score"`
	RequestDate          time.Time    `json:"request_date"`
	ReviewDate           *time.Time   `json:"review_date,omitempty"`
}
