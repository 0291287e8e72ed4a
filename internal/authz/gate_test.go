package authz

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"volunteer-marketplace-backend/internal/domain"
)

type gateEnv struct {
	userRepo     *mockUserRepo
	orgRoleRepo  *mockOrgRoleRepo
	projRoleRepo *mockProjectRoleRepo
	taskRepo     *mockTaskRepo
	taskRoleRepo *mockTaskRoleRepo
	gate         *Gate
}

func newGateEnv() *gateEnv {
	env := &gateEnv{
		userRepo:     new(mockUserRepo),
		orgRoleRepo:  new(mockOrgRoleRepo),
		projRoleRepo: new(mockProjectRoleRepo),
		taskRepo:     new(mockTaskRepo),
		taskRoleRepo: new(mockTaskRoleRepo),
	}
	env.gate = NewGate(NewEvaluator(env.userRepo, env.orgRoleRepo, env.projRoleRepo, env.taskRepo, env.taskRoleRepo))
	return env
}

func TestGate_AnonymousAlwaysDenied(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	for _, perm := range []Permission{
		PermOrganizationEdit, PermProjectPublish, PermTaskEdit, PermSiteStaff,
	} {
		err := env.gate.Require(ctx, 0, Target{OrgID: 3, ProjectID: 42}, perm)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied, string(perm))
	}
}

func TestGate_UnknownPermissionDenied(t *testing.T) {
	env := newGateEnv()

	err := env.gate.Require(context.Background(), 1, Target{}, Permission("no.such.permission"))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestGate_OrganizationEdit_AdminOnly(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	env.orgRoleRepo.On("Get", ctx, int32(3), int32(1)).
		Return(&domain.OrganizationRole{OrgID: 3, UserID: 1, Role: domain.OrgRoleAdministrator}, nil)
	env.orgRoleRepo.On("Get", ctx, int32(3), int32(2)).
		Return(&domain.OrganizationRole{OrgID: 3, UserID: 2, Role: domain.OrgRoleStaff}, nil)

	assert.NoError(t, env.gate.Require(ctx, 1, Target{OrgID: 3}, PermOrganizationEdit))
	assert.ErrorIs(t, env.gate.Require(ctx, 2, Target{OrgID: 3}, PermOrganizationEdit), domain.ErrPermissionDenied)
}

func TestGate_OrganizationStaffView_AnyMember(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	env.orgRoleRepo.On("Get", ctx, int32(3), int32(2)).
		Return(&domain.OrganizationRole{OrgID: 3, UserID: 2, Role: domain.OrgRoleStaff}, nil)
	env.orgRoleRepo.On("Get", ctx, int32(3), int32(9)).Return(nil, sql.ErrNoRows)

	assert.NoError(t, env.gate.Require(ctx, 2, Target{OrgID: 3}, PermOrganizationStaffView))
	assert.ErrorIs(t, env.gate.Require(ctx, 9, Target{OrgID: 3}, PermOrganizationStaffView), domain.ErrPermissionDenied)
}

func TestGate_ProjectPublish_OwnerOnly(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	env.projRoleRepo.On("Get", ctx, int32(42), int32(1)).
		Return(&domain.ProjectRole{ProjectID: 42, UserID: 1, Role: domain.ProjRoleOwner}, nil)
	env.projRoleRepo.On("Get", ctx, int32(42), int32(2)).
		Return(&domain.ProjectRole{ProjectID: 42, UserID: 2, Role: domain.ProjRoleStaff}, nil)

	assert.NoError(t, env.gate.Require(ctx, 1, Target{ProjectID: 42}, PermProjectPublish))
	assert.ErrorIs(t, env.gate.Require(ctx, 2, Target{ProjectID: 42}, PermProjectPublish), domain.ErrPermissionDenied)
}

func TestGate_TaskEdit_ScopingVolunteer(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	// Not an owner, but volunteers on the scoping task.
	env.projRoleRepo.On("Get", ctx, int32(42), int32(9)).Return(nil, sql.ErrNoRows)
	env.taskRoleRepo.On("ListByUserAndProject", ctx, int32(9), int32(42)).
		Return([]domain.ProjectTaskRole{{TaskID: 1, UserID: 9}}, nil)
	env.taskRepo.On("ListByProject", ctx, int32(42)).
		Return([]domain.ProjectTask{
			{ID: 1, Type: domain.TaskTypeScoping},
			{ID: 3, Type: domain.TaskTypeDomainWork},
		}, nil)

	assert.NoError(t, env.gate.Require(ctx, 9, Target{ProjectID: 42}, PermTaskEdit))
}

func TestGate_TaskEdit_PlainVolunteerDenied(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	env.projRoleRepo.On("Get", ctx, int32(42), int32(9)).Return(nil, sql.ErrNoRows)
	env.taskRoleRepo.On("ListByUserAndProject", ctx, int32(9), int32(42)).
		Return([]domain.ProjectTaskRole{{TaskID: 3, UserID: 9}}, nil)
	env.taskRepo.On("ListByProject", ctx, int32(42)).
		Return([]domain.ProjectTask{{ID: 3, Type: domain.TaskTypeDomainWork}}, nil)

	assert.ErrorIs(t, env.gate.Require(ctx, 9, Target{ProjectID: 42}, PermTaskEdit), domain.ErrPermissionDenied)
}

func TestGate_TaskReviewDo_QAVolunteer(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	env.projRoleRepo.On("Get", ctx, int32(42), int32(9)).Return(nil, sql.ErrNoRows)
	env.taskRoleRepo.On("ListByUserAndProject", ctx, int32(9), int32(42)).
		Return([]domain.ProjectTaskRole{{TaskID: 4, UserID: 9}}, nil)
	env.taskRepo.On("ListByProject", ctx, int32(42)).
		Return([]domain.ProjectTask{{ID: 4, Type: domain.TaskTypeQA}}, nil)

	assert.NoError(t, env.gate.Require(ctx, 9, Target{ProjectID: 42}, PermTaskReviewDo))
}

func TestGate_TaskApply_RequiresAcceptedProfile(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	env.userRepo.On("GetVolunteerProfile", ctx, int32(9)).
		Return(&domain.VolunteerProfile{UserID: 9, Status: domain.ReviewStatusAccepted}, nil)
	env.userRepo.On("GetVolunteerProfile", ctx, int32(2)).
		Return(&domain.VolunteerProfile{UserID: 2, Status: domain.ReviewStatusNew}, nil)
	env.userRepo.On("GetVolunteerProfile", ctx, int32(3)).Return(nil, sql.ErrNoRows)

	assert.NoError(t, env.gate.Require(ctx, 9, Target{ProjectID: 42, TaskID: 7}, PermTaskApply))
	assert.ErrorIs(t, env.gate.Require(ctx, 2, Target{ProjectID: 42, TaskID: 7}, PermTaskApply), domain.ErrPermissionDenied)
	assert.ErrorIs(t, env.gate.Require(ctx, 3, Target{ProjectID: 42, TaskID: 7}, PermTaskApply), domain.ErrPermissionDenied)
}

func TestGate_VolunteerTaskOps_TaskVolunteerOnly(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	env.taskRoleRepo.On("Get", ctx, int32(7), int32(9)).
		Return(&domain.ProjectTaskRole{TaskID: 7, UserID: 9, Role: domain.TaskRoleVolunteer}, nil)
	env.taskRoleRepo.On("Get", ctx, int32(7), int32(2)).Return(nil, sql.ErrNoRows)

	for _, perm := range []Permission{PermTaskVolunteerFinish, PermTaskVolunteerCancel} {
		assert.NoError(t, env.gate.Require(ctx, 9, Target{ProjectID: 42, TaskID: 7}, perm), string(perm))
		assert.ErrorIs(t, env.gate.Require(ctx, 2, Target{ProjectID: 42, TaskID: 7}, perm), domain.ErrPermissionDenied, string(perm))
	}
}

func TestGate_ApplicationView_ApplicantOrOfficial(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	// The applicant always sees their own application.
	assert.NoError(t, env.gate.Require(ctx, 9, Target{ProjectID: 42, ApplicantID: 9}, PermApplicationView))

	// An owner sees any application; an unrelated user does not.
	env.projRoleRepo.On("Get", ctx, int32(42), int32(1)).
		Return(&domain.ProjectRole{ProjectID: 42, UserID: 1, Role: domain.ProjRoleOwner}, nil)
	assert.NoError(t, env.gate.Require(ctx, 1, Target{ProjectID: 42, ApplicantID: 9}, PermApplicationView))

	env.projRoleRepo.On("Get", ctx, int32(42), int32(3)).Return(nil, sql.ErrNoRows)
	env.taskRoleRepo.On("ListByUserAndProject", ctx, int32(3), int32(42)).
		Return([]domain.ProjectTaskRole{}, nil)
	assert.ErrorIs(t, env.gate.Require(ctx, 3, Target{ProjectID: 42, ApplicantID: 9}, PermApplicationView), domain.ErrPermissionDenied)
}

func TestGate_SiteStaff(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()

	env.userRepo.On("GetByID", ctx, int32(1)).
		Return(&domain.User{ID: 1, Type: domain.UserTypeSiteStaff}, nil)
	env.userRepo.On("GetByID", ctx, int32(2)).
		Return(&domain.User{ID: 2, Type: domain.UserTypeOrganization}, nil)

	assert.NoError(t, env.gate.Require(ctx, 1, Target{}, PermSiteStaff))
	assert.ErrorIs(t, env.gate.Require(ctx, 2, Target{}, PermSiteStaff), domain.ErrPermissionDenied)
}

func TestGate_EvaluationErrorSurfaces(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	env.projRoleRepo.On("Get", ctx, int32(42), int32(1)).Return(nil, dbErr)

	err := env.gate.Require(ctx, 1, Target{ProjectID: 42}, PermProjectPublish)
	assert.ErrorIs(t, err, dbErr)
}

func TestEvaluator_IsProjectMember(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()
	eval := NewEvaluator(env.userRepo, env.orgRoleRepo, env.projRoleRepo, env.taskRepo, env.taskRoleRepo)

	env.projRoleRepo.On("Get", ctx, int32(42), int32(2)).
		Return(&domain.ProjectRole{ProjectID: 42, UserID: 2, Role: domain.ProjRoleStaff}, nil)
	ok, err := eval.IsProjectMember(ctx, 2, 42)
	assert.NoError(t, err)
	assert.True(t, ok)

	// A management volunteer counts as a member.
	env.projRoleRepo.On("Get", ctx, int32(42), int32(9)).Return(nil, sql.ErrNoRows)
	env.taskRoleRepo.On("ListByUserAndProject", ctx, int32(9), int32(42)).
		Return([]domain.ProjectTaskRole{{TaskID: 2, UserID: 9}}, nil)
	env.taskRepo.On("ListByProject", ctx, int32(42)).
		Return([]domain.ProjectTask{{ID: 2, Type: domain.TaskTypeProjectManagement}}, nil)
	ok, err = eval.IsProjectMember(ctx, 9, 42)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluator_CanViewApplication_Applicant(t *testing.T) {
	env := newGateEnv()
	ctx := context.Background()
	eval := NewEvaluator(env.userRepo, env.orgRoleRepo, env.projRoleRepo, env.taskRepo, env.taskRoleRepo)

	ok, err := eval.CanViewApplication(ctx, 9, 42, 9)
	assert.NoError(t, err)
	assert.True(t, ok)
}
