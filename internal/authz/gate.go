package authz

import (
	"context"

	"volunteer-marketplace-backend/internal/domain"
)

// Permission names map to exactly one evaluator predicate. The table is
// built once at startup; unknown permissions are denied.
type Permission string

const (
	PermOrganizationEdit             Permission = "organization.edit"
	PermOrganizationMembershipReview Permission = "organization.membership_review"
	PermOrganizationRoleEdit         Permission = "organization.role_edit"
	PermOrganizationStaffView        Permission = "organization.staff_view"
	PermProjectEdit                  Permission = "project.edit"
	PermProjectPublish               Permission = "project.publish"
	PermProjectApproveAsCompleted    Permission = "project.approve_as_completed"
	PermProjectRoleEdit              Permission = "project.role_edit"
	PermProjectMemberView            Permission = "project.member_view"
	PermTaskEdit                     Permission = "project.task_edit"
	PermTaskDelete                   Permission = "project.task_delete"
	PermTaskApply                    Permission = "project.task_apply"
	PermTaskVolunteerFinish          Permission = "project.volunteer_task_finish"
	PermTaskVolunteerCancel          Permission = "project.volunteer_task_cancel"
	PermVolunteerDecision            Permission = "project.volunteer_decision"
	PermApplicationView              Permission = "project.volunteers_application_view"
	PermTaskReviewDo                 Permission = "project.task_review_do"
	PermSiteStaff                    Permission = "site.staff"
)

// Target identifies the entity a permission is checked against. Only the
// fields the predicate needs have to be set.
type Target struct {
	OrgID       int32
	ProjectID   int32
	TaskID      int32
	ApplicantID int32
}

type predicate func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error)

// Gate resolves permission names against the evaluator and denies with
// domain.ErrPermissionDenied.
type Gate struct {
	eval  *Evaluator
	table map[Permission]predicate
}

func NewGate(eval *Evaluator) *Gate {
	return &Gate{
		eval: eval,
		table: map[Permission]predicate{
			PermOrganizationEdit: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsOrganizationAdmin(ctx, userID, t.OrgID)
			},
			PermOrganizationMembershipReview: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsOrganizationAdmin(ctx, userID, t.OrgID)
			},
			PermOrganizationRoleEdit: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsOrganizationAdmin(ctx, userID, t.OrgID)
			},
			PermOrganizationStaffView: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsOrganizationMember(ctx, userID, t.OrgID)
			},
			PermProjectEdit: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsProjectOfficial(ctx, userID, t.ProjectID)
			},
			PermProjectPublish: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsProjectOwner(ctx, userID, t.ProjectID)
			},
			PermProjectApproveAsCompleted: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsProjectOfficial(ctx, userID, t.ProjectID)
			},
			PermProjectRoleEdit: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsProjectOwner(ctx, userID, t.ProjectID)
			},
			PermProjectMemberView: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsProjectMember(ctx, userID, t.ProjectID)
			},
			PermTaskEdit: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsTaskEditor(ctx, userID, t.ProjectID)
			},
			PermTaskDelete: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsTaskEditor(ctx, userID, t.ProjectID)
			},
			PermTaskApply: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.HasApprovedVolunteerProfile(ctx, userID)
			},
			PermTaskVolunteerFinish: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsTaskVolunteer(ctx, userID, t.TaskID)
			},
			PermTaskVolunteerCancel: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsTaskVolunteer(ctx, userID, t.TaskID)
			},
			PermVolunteerDecision: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsProjectOfficial(ctx, userID, t.ProjectID)
			},
			PermApplicationView: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.CanViewApplication(ctx, userID, t.ProjectID, t.ApplicantID)
			},
			PermTaskReviewDo: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.CanReviewTask(ctx, userID, t.ProjectID)
			},
			PermSiteStaff: func(ctx context.Context, e *Evaluator, userID int32, t Target) (bool, error) {
				return e.IsSiteStaff(ctx, userID)
			},
		},
	}
}

// Require fails with domain.ErrPermissionDenied when the predicate bound to
// perm returns false. Evaluation errors are returned as-is.
func (g *Gate) Require(ctx context.Context, userID int32, t Target, perm Permission) error {
	pred, ok := g.table[perm]
	if !ok {
		return domain.ErrPermissionDenied
	}
	allowed, err := pred(ctx, g.eval, userID, t)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrPermissionDenied
	}
	return nil
}
