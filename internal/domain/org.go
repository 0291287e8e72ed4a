package domain

import "time"

type OrganizationType string

const (
	OrganizationTypeSocialGood OrganizationType = "SOCIAL_GOOD"
	OrganizationTypeVolunteer  OrganizationType = "VOLUNTEER_GROUP"
)

type SocialCause string

const (
	SocialCauseEducation   SocialCause = "EDUCATION"
	SocialCauseHealth      SocialCause = "HEALTH"
	SocialCauseEnvironment SocialCause = "ENVIRONMENT"
	SocialCauseSocialServ  SocialCause = "SOCIAL_SERVICES"
	SocialCauseTransport   SocialCause = "TRANSPORTATION"
	SocialCauseEnergy      SocialCause = "ENERGY"
	SocialCauseIntlDev     SocialCause = "INTERNATIONAL_DEVELOPMENT"
	SocialCausePublicSafe  SocialCause = "PUBLIC_SAFETY"
	SocialCauseEconDev     SocialCause = "ECONOMIC_DEVELOPMENT"
	SocialCauseOther       SocialCause = "OTHER"
)

type Organization struct {
	ID                int32            `json:"id"`
	Name              string           `json:"name"`
	Type              OrganizationType `json:"type"`
	ShortSummary      string           `json:"short_summary"`
	Description       string           `json:"description"`
	WebsiteURL        string           `json:"website_url"`
	Budget            string           `json:"budget"`
	YearsInOperation  string           `json:"years_in_operation"`
	GeographicalScope string           `json:"geographical_scope"`
	SocialCauses      []SocialCause    `json:"social_causes,omitempty"`
	CreatedOn         time.Time        `json:"created_on"`
	UpdatedOn         time.Time        `json:"updated_on"`
}

func (o *Organization) IsVolunteerGroup() bool {
	return o.Type == OrganizationTypeVolunteer
}

type OrgRole string

const (
	OrgRoleAdministrator OrgRole = "ADMINISTRATOR"
	OrgRoleStaff         OrgRole = "STAFF"
)

// OrganizationRole assigns a user a role within an organization. Unique per
// (user, organization); an organization always retains at least one
// administrator.
type OrganizationRole struct {
	ID        int32     `json:"id"`
	OrgID     int32     `json:"org_id"`
	UserID    int32     `json:"user_id"`
	Role      OrgRole   `json:"role"`
	CreatedOn time.Time `json:"created_on"`
}

// MembershipRequest is filed by a prospective member and resolved by an
// organization administrator. Acceptance creates an OrganizationRole.
type MembershipRequest struct {
	ID             int32        `json:"id"`
	OrgID          int32        `json:"org_id"`
	UserID         int32        `json:"user_id"`
	Role           OrgRole      `json:"role"`
	Status         ReviewStatus `json:"status"`
	ReviewerID     *int32       `json:"reviewer_id,omitempty"`
	RequestDate    time.Time    `json:"request_date"`
	ResolutionDate *time.Time   `json:"resolution_date,omitempty"`
}
