package service

import (
	"context"

	"volunteer-marketplace-backend/internal/authz"
	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	tx       repository.Tx
	gate     *authz.Gate
	notifier NotificationService
}

func NewUserService(userRepo repository.UserRepository, tx repository.Tx, gate *authz.Gate, notifier NotificationService) UserService {
	return &userService{
		userRepo: userRepo,
		tx:       tx,
		gate:     gate,
		notifier: notifier,
	}
}

func (s *userService) GetUserProfile(ctx context.Context, userID int32) (*domain.User, *domain.VolunteerProfile, []domain.UserBadge, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	profile, err := s.userRepo.GetVolunteerProfile(ctx, userID)
	if err != nil && !isNoRows(err) {
		return nil, nil, nil, err
	}
	badges, err := s.userRepo.ListBadges(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	return user, profile, badges, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, email, username, firstName, lastName string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Email = email
	user.Username = username
	user.FirstName = firstName
	user.LastName = lastName
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// Profile edits after review put the profile back in the review queue,
	// flagged as edited so reviewers can prioritize.
	profile, err := s.userRepo.GetVolunteerProfile(ctx, userID)
	if err != nil {
		if isNoRows(err) {
			return nil
		}
		return err
	}
	if profile.Status == domain.ReviewStatusAccepted {
		return nil
	}
	profile.IsEdited = true
	return s.userRepo.UpdateVolunteerProfile(ctx, profile)
}

// CreateVolunteerProfile opens a profile in review state and awards the
// early-user badge by signup order.
func (s *userService) CreateVolunteerProfile(ctx context.Context, userID int32) (*domain.VolunteerProfile, error) {
	if userID <= 0 {
		return nil, domain.ErrPermissionDenied
	}
	if _, err := s.userRepo.GetVolunteerProfile(ctx, userID); err == nil {
		return nil, domain.NewValidationError("user already has a volunteer profile")
	} else if !isNoRows(err) {
		return nil, err
	}

	profile := &domain.VolunteerProfile{
		UserID: userID,
		Status: domain.ReviewStatusNew,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.CreateVolunteerProfile(ctx, profile); err != nil {
			return err
		}
		tier, ok := earlyUserBadgeTier(profile.ID)
		if !ok {
			return nil
		}
		return s.userRepo.CreateBadge(ctx, &domain.UserBadge{
			UserID: userID,
			Type:   domain.BadgeTypeEarlyUser,
			Tier:   tier,
		})
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func earlyUserBadgeTier(profileID int32) (domain.BadgeTier, bool) {
	switch {
	case profileID <= 100:
		return domain.BadgeTierMaster, true
	case profileID <= 500:
		return domain.BadgeTierAdvanced, true
	case profileID <= 1000:
		return domain.BadgeTierBasic, true
	}
	return 0, false
}

func (s *userService) AcceptVolunteerProfile(ctx context.Context, staffID, userID int32) error {
	return s.resolveVolunteerProfile(ctx, staffID, userID, domain.ReviewStatusAccepted)
}

func (s *userService) RejectVolunteerProfile(ctx context.Context, staffID, userID int32) error {
	return s.resolveVolunteerProfile(ctx, staffID, userID, domain.ReviewStatusRejected)
}

func (s *userService) resolveVolunteerProfile(ctx context.Context, staffID, userID int32, outcome domain.ReviewStatus) error {
	if err := s.gate.Require(ctx, staffID, authz.Target{}, authz.PermSiteStaff); err != nil {
		return err
	}
	profile, err := s.userRepo.GetVolunteerProfile(ctx, userID)
	if err != nil {
		return err
	}
	if profile.Status == outcome {
		return domain.NewValidationError("volunteer profile is already in that state")
	}
	profile.Status = outcome
	profile.IsEdited = false
	if err := s.userRepo.UpdateVolunteerProfile(ctx, profile); err != nil {
		return err
	}

	message := "Your volunteer profile was not approved"
	severity := domain.NotificationSeverityWarning
	if outcome == domain.ReviewStatusAccepted {
		message = "Your volunteer profile was approved, you can now apply to tasks"
		severity = domain.NotificationSeverityInfo
	}
	_ = s.notifier.NotifyUser(ctx, userID, message, severity,
		domain.NotificationSourceVolunteerProfile, profile.ID)
	return nil
}

func (s *userService) ListPendingVolunteerProfiles(ctx context.Context, staffID int32) ([]domain.VolunteerProfile, error) {
	if err := s.gate.Require(ctx, staffID, authz.Target{}, authz.PermSiteStaff); err != nil {
		return nil, err
	}
	return s.userRepo.ListPendingVolunteerProfiles(ctx)
}
