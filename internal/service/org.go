package service

import (
	"context"
	"fmt"
	"time"

	"volunteer-marketplace-backend/internal/authz"
	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

type organizationService struct {
	orgRepo  repository.OrganizationRepository
	roleRepo repository.OrgRoleRepository
	reqRepo  repository.MembershipRequestRepository
	userRepo repository.UserRepository
	tx       repository.Tx
	gate     *authz.Gate
	notifier NotificationService
}

func NewOrganizationService(
	orgRepo repository.OrganizationRepository,
	roleRepo repository.OrgRoleRepository,
	reqRepo repository.MembershipRequestRepository,
	userRepo repository.UserRepository,
	tx repository.Tx,
	gate *authz.Gate,
	notifier NotificationService,
) OrganizationService {
	return &organizationService{
		orgRepo:  orgRepo,
		roleRepo: roleRepo,
		reqRepo:  reqRepo,
		userRepo: userRepo,
		tx:       tx,
		gate:     gate,
		notifier: notifier,
	}
}

func (s *organizationService) CreateOrganization(ctx context.Context, userID int32, org *domain.Organization) error {
	if userID <= 0 {
		return domain.ErrPermissionDenied
	}
	if org.Name == "" {
		return domain.NewValidationError("organization name is required")
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.orgRepo.Create(ctx, org); err != nil {
			return err
		}
		if len(org.SocialCauses) > 0 {
			if err := s.orgRepo.SetSocialCauses(ctx, org.ID, org.SocialCauses); err != nil {
				return err
			}
		}
		// Creator becomes the first administrator.
		role := &domain.OrganizationRole{
			OrgID:  org.ID,
			UserID: userID,
			Role:   domain.OrgRoleAdministrator,
		}
		return s.roleRepo.Create(ctx, role)
	})
	if err != nil {
		return err
	}

	_ = s.notifier.NotifyUser(ctx, userID,
		fmt.Sprintf("You created the organization %s and are now its administrator", org.Name),
		domain.NotificationSeverityInfo, domain.NotificationSourceOrganization, org.ID)
	return nil
}

func (s *organizationService) SaveOrganizationInfo(ctx context.Context, userID int32, org *domain.Organization) error {
	if err := s.gate.Require(ctx, userID, authz.Target{OrgID: org.ID}, authz.PermOrganizationEdit); err != nil {
		return err
	}
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.orgRepo.Update(ctx, org); err != nil {
			return err
		}
		return s.orgRepo.SetSocialCauses(ctx, org.ID, org.SocialCauses)
	})
}

func (s *organizationService) GetOrganization(ctx context.Context, id int32) (*domain.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	return s.orgRepo.List(ctx)
}

func (s *organizationService) SearchOrganizations(ctx context.Context, name string, causes []domain.SocialCause) ([]domain.Organization, error) {
	return s.orgRepo.Search(ctx, name, causes)
}

func (s *organizationService) CreateMembershipRequest(ctx context.Context, userID, orgID int32, role domain.OrgRole) (*domain.MembershipRequest, error) {
	if userID <= 0 {
		return nil, domain.ErrPermissionDenied
	}
	existing, err := s.memberRole(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("user is already a member of this organization")
	}
	pending, err := s.reqRepo.HasPending(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.NewValidationError("user already has a pending membership request for this organization")
	}

	req := &domain.MembershipRequest{
		OrgID:  orgID,
		UserID: userID,
		Role:   role,
		Status: domain.ReviewStatusNew,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, orgID,
		"New membership request awaiting review",
		domain.NotificationSourceMembershipRequest, req.ID)
	return req, nil
}

func (s *organizationService) AcceptMembershipRequest(ctx context.Context, adminID, orgID, requestID int32) error {
	return s.resolveMembershipRequest(ctx, adminID, orgID, requestID, domain.ReviewStatusAccepted)
}

func (s *organizationService) RejectMembershipRequest(ctx context.Context, adminID, orgID, requestID int32) error {
	return s.resolveMembershipRequest(ctx, adminID, orgID, requestID, domain.ReviewStatusRejected)
}

func (s *organizationService) resolveMembershipRequest(ctx context.Context, adminID, orgID, requestID int32, outcome domain.ReviewStatus) error {
	if err := s.gate.Require(ctx, adminID, authz.Target{OrgID: orgID}, authz.PermOrganizationMembershipReview); err != nil {
		return err
	}
	req, err := s.reqRepo.GetByID(ctx, orgID, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.ReviewStatusNew {
		return domain.NewValidationError("membership request has already been resolved")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := time.Now()
		req.Status = outcome
		req.ReviewerID = &adminID
		req.ResolutionDate = &now
		if err := s.reqRepo.Update(ctx, req); err != nil {
			return err
		}
		if outcome != domain.ReviewStatusAccepted {
			return nil
		}
		role := &domain.OrganizationRole{
			OrgID:  orgID,
			UserID: req.UserID,
			Role:   req.Role,
		}
		return s.roleRepo.Create(ctx, role)
	})
	if err != nil {
		return err
	}

	message := "Your membership request was rejected"
	if outcome == domain.ReviewStatusAccepted {
		message = "Your membership request was accepted, welcome aboard"
	}
	_ = s.notifier.NotifyUser(ctx, req.UserID, message,
		domain.NotificationSeverityInfo, domain.NotificationSourceMembershipRequest, req.ID)
	return nil
}

func (s *organizationService) ListMembershipRequests(ctx context.Context, adminID, orgID int32) ([]domain.MembershipRequest, error) {
	if err := s.gate.Require(ctx, adminID, authz.Target{OrgID: orgID}, authz.PermOrganizationMembershipReview); err != nil {
		return nil, err
	}
	return s.reqRepo.ListByOrg(ctx, orgID)
}

func (s *organizationService) AddStaffMember(ctx context.Context, adminID, orgID, userID int32, role domain.OrgRole) error {
	if err := s.gate.Require(ctx, adminID, authz.Target{OrgID: orgID}, authz.PermOrganizationRoleEdit); err != nil {
		return err
	}
	existing, err := s.memberRole(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.NewValidationError("user is already a member of this organization")
	}
	if err := s.roleRepo.Create(ctx, &domain.OrganizationRole{OrgID: orgID, UserID: userID, Role: role}); err != nil {
		return err
	}
	_ = s.notifier.NotifyUser(ctx, userID, "You were added to an organization",
		domain.NotificationSeverityInfo, domain.NotificationSourceOrganization, orgID)
	return nil
}

func (s *organizationService) SaveOrganizationRole(ctx context.Context, adminID, orgID, roleID int32, newRole domain.OrgRole) error {
	if err := s.gate.Require(ctx, adminID, authz.Target{OrgID: orgID}, authz.PermOrganizationRoleEdit); err != nil {
		return err
	}
	role, err := s.roleRepo.GetByID(ctx, orgID, roleID)
	if err != nil {
		return err
	}
	if role.Role == domain.OrgRoleAdministrator && newRole != domain.OrgRoleAdministrator {
		if err := s.ensureNotLastAdmin(ctx, orgID); err != nil {
			return err
		}
	}
	role.Role = newRole
	return s.roleRepo.Update(ctx, role)
}

func (s *organizationService) DeleteOrganizationRole(ctx context.Context, adminID, orgID, roleID int32) error {
	if err := s.gate.Require(ctx, adminID, authz.Target{OrgID: orgID}, authz.PermOrganizationRoleEdit); err != nil {
		return err
	}
	role, err := s.roleRepo.GetByID(ctx, orgID, roleID)
	if err != nil {
		return err
	}
	return s.removeRole(ctx, role)
}

func (s *organizationService) LeaveOrganization(ctx context.Context, userID, orgID int32) error {
	if userID <= 0 {
		return domain.ErrPermissionDenied
	}
	role, err := s.roleRepo.Get(ctx, orgID, userID)
	if err != nil {
		if isNoRows(err) {
			return domain.NewValidationError("user is not a member of this organization")
		}
		return err
	}
	return s.removeRole(ctx, role)
}

func (s *organizationService) removeRole(ctx context.Context, role *domain.OrganizationRole) error {
	if role.Role == domain.OrgRoleAdministrator {
		if err := s.ensureNotLastAdmin(ctx, role.OrgID); err != nil {
			return err
		}
	}
	if err := s.roleRepo.Delete(ctx, role.ID); err != nil {
		return err
	}
	_ = s.notifier.NotifyUser(ctx, role.UserID, "Your organization membership has ended",
		domain.NotificationSeverityInfo, domain.NotificationSourceOrganization, role.OrgID)
	return nil
}

func (s *organizationService) ListMembers(ctx context.Context, userID, orgID int32) ([]domain.User, error) {
	if err := s.gate.Require(ctx, userID, authz.Target{OrgID: orgID}, authz.PermOrganizationStaffView); err != nil {
		return nil, err
	}
	return s.roleRepo.ListMembers(ctx, orgID)
}

// ensureNotLastAdmin guards the invariant that an organization retains at
// least one administrator.
func (s *organizationService) ensureNotLastAdmin(ctx context.Context, orgID int32) error {
	count, err := s.roleRepo.CountAdmins(ctx, orgID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return domain.NewValidationError("the last administrator of an organization cannot be removed")
	}
	return nil
}

func (s *organizationService) memberRole(ctx context.Context, orgID, userID int32) (*domain.OrganizationRole, error) {
	role, err := s.roleRepo.Get(ctx, orgID, userID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return role, nil
}

func (s *organizationService) notifyAdmins(ctx context.Context, orgID int32, message string, source domain.NotificationSource, targetID int32) {
	admins, err := s.roleRepo.ListAdmins(ctx, orgID)
	if err != nil {
		return
	}
	ids := make([]int32, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	_ = s.notifier.NotifyUsers(ctx, ids, message, domain.NotificationSeverityInfo, source, targetID)
}
