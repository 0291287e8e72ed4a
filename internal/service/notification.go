package service

import (
	"context"

	"volunteer-marketplace-backend/internal/domain"
	"volunteer-marketplace-backend/internal/logger"
	"volunteer-marketplace-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
	userRepo repository.UserRepository
	emailSvc EmailService
}

func NewNotificationService(noteRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc EmailService) NotificationService {
	return &notificationService{
		noteRepo: noteRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

// NotifyUser stores the notification and sends a best-effort email copy.
// Email failures are logged, never surfaced.
func (s *notificationService) NotifyUser(ctx context.Context, userID int32, message string, severity domain.NotificationSeverity, source domain.NotificationSource, targetID int32) error {
	note := &domain.Notification{
		UserID:      userID,
		Description: message,
		Severity:    severity,
		Source:      source,
		TargetID:    targetID,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("Skipping notification email, user lookup failed", "user_id", userID, "error", err)
		return nil
	}
	if err := s.emailSvc.SendNotificationEmail(ctx, user.Email, user.FullName(), message); err != nil {
		logger.Warn("Notification email failed", "user_id", userID, "error", err)
	}
	return nil
}

func (s *notificationService) NotifyUsers(ctx context.Context, userIDs []int32, message string, severity domain.NotificationSeverity, source domain.NotificationSource, targetID int32) error {
	for _, id := range userIDs {
		if err := s.NotifyUser(ctx, id, message, severity, source, targetID); err != nil {
			return err
		}
	}
	return nil
}

func (s *notificationService) ListNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.noteRepo.List(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *notificationService) CountUnread(ctx context.Context, userID int32) (int32, error) {
	return s.noteRepo.CountUnread(ctx, userID)
}
