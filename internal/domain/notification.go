package domain

import "time"

type NotificationSeverity string

const (
	NotificationSeverityInfo    NotificationSeverity = "INFO"
	NotificationSeverityWarning NotificationSeverity = "WARNING"
	NotificationSeverityError   NotificationSeverity = "ERROR"
)

type NotificationSource string

const (
	NotificationSourceOrganization      NotificationSource = "ORGANIZATION"
	NotificationSourceMembershipRequest NotificationSource = "ORGANIZATION_MEMBERSHIP_REQUEST"
	NotificationSourceProject           NotificationSource = "PROJECT"
	NotificationSourceTask              NotificationSource = "TASK"
	NotificationSourceApplication       NotificationSource = "VOLUNTEER_APPLICATION"
	NotificationSourceTaskReview        NotificationSource = "TASK_REVIEW"
	NotificationSourceVolunteerProfile  NotificationSource = "VOLUNTEER_PROFILE"
)

// Notification is append-only; the only mutation is marking it read.
type Notification struct {
	ID          int32                `json:"id"`
	UserID      int32                `json:"user_id"`
	Description string               `json:"description"`
	Severity    NotificationSeverity `json:"severity"`
	Source      NotificationSource   `json:"source"`
	TargetID    int32                `json:"target_id"`
	IsRead      bool                 `json:"is_read"`
	CreatedOn   time.Time            `json:"created_on"`
}
