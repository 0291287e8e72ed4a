package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/logger"
	"volunteer-marketplace-backend/internal/repository"
	"volunteer-marketplace-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	userRepo repository.UserRepository
	userSvc  UserService
	emailSvc EmailService
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, userSvc UserService, emailSvc EmailService, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		userSvc:  userSvc,
		emailSvc: emailSvc,
		tokens:   tokens,
	}
}

// Signup registers the user and, for volunteer accounts, opens a volunteer
// profile so site staff can review it.
func (s *authService) Signup(ctx context.Context, email, username, password, firstName, lastName string, userType domain.UserType) (*domain.User, string, string, error) {
	if email == "" || username == "" {
		return nil, "", "", domain.NewValidationError("email and username are required")
	}
	if len(password) < 8 {
		return nil, "", "", domain.NewValidationError("password must be at least 8 characters")
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", "", domain.NewValidationError("a user with this email already exists")
	} else if !isNoRows(err) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Type:         userType,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	if userType == domain.UserTypeVolunteer {
		if _, err := s.userSvc.CreateVolunteerProfile(ctx, user.ID); err != nil {
			logger.Warn("Volunteer profile creation on signup failed", "user_id", user.ID, "error", err)
		}
	}
	if err := s.emailSvc.SendWelcomeEmail(ctx, user.Email, user.FullName()); err != nil {
		logger.Warn("Welcome email failed", "user_id", user.ID, "error", err)
	}

	access, refresh, err := s.issueTokens(user)
	return user, access, refresh, err
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", security.ErrInvalidToken
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Type))
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
