package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"volunteer-marketplace-backend/internal/domain"
)

func TestNotificationService_NotifyUser_EmailIsBestEffort(t *testing.T) {
	noteRepo := new(MockNotificationRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailSvc)
	svc := NewNotificationService(noteRepo, userRepo, emailSvc)
	ctx := context.Background()

	noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 9 && n.Source == domain.NotificationSourceTask && n.TargetID == 7
	})).Return(nil)
	userRepo.On("GetByID", ctx, int32(9)).
		Return(&domain.User{ID: 9, Email: "v@example.com", FirstName: "Vo", LastName: "Lunteer"}, nil)
	emailSvc.On("SendNotificationEmail", ctx, "v@example.com", mock.Anything, "task reopened").
		Return(errors.New("smtp down"))

	err := svc.NotifyUser(ctx, 9, "task reopened", domain.NotificationSeverityInfo, domain.NotificationSourceTask, 7)
	assert.NoError(t, err)
	noteRepo.AssertExpectations(t)
}

func TestNotificationService_NotifyUser_StoreFailureSurfaces(t *testing.T) {
	noteRepo := new(MockNotificationRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailSvc)
	svc := NewNotificationService(noteRepo, userRepo, emailSvc)
	ctx := context.Background()

	noteRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

	err := svc.NotifyUser(ctx, 9, "hello", domain.NotificationSeverityInfo, domain.NotificationSourceTask, 7)
	assert.Error(t, err)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestNotificationService_ListNotifications_PaginationDefaults(t *testing.T) {
	noteRepo := new(MockNotificationRepo)
	svc := NewNotificationService(noteRepo, new(MockUserRepo), new(MockEmailSvc))
	ctx := context.Background()

	// page 0 and an oversized page size fall back to the first page of 20.
	noteRepo.On("List", ctx, int32(9), int32(20), int32(0)).
		Return([]domain.Notification{{ID: 1}}, int32(1), nil)

	notes, total, err := svc.ListNotifications(ctx, 9, 0, 500)
	assert.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, int32(1), total)
}

func TestNotificationService_ListNotifications_Offset(t *testing.T) {
	noteRepo := new(MockNotificationRepo)
	svc := NewNotificationService(noteRepo, new(MockUserRepo), new(MockEmailSvc))
	ctx := context.Background()

	noteRepo.On("List", ctx, int32(9), int32(10), int32(20)).
		Return([]domain.Notification{}, int32(25), nil)

	_, total, err := svc.ListNotifications(ctx, 9, 3, 10)
	assert.NoError(t, err)
	assert.Equal(t, int32(25), total)
}

func TestNotificationService_NotifyUsers_FansOut(t *testing.T) {
	noteRepo := new(MockNotificationRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailSvc)
	svc := NewNotificationService(noteRepo, userRepo, emailSvc)
	ctx := context.Background()

	for _, id := range []int32{1, 2} {
		noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID != 0
		})).Return(nil).Once()
		userRepo.On("GetByID", ctx, id).
			Return(&domain.User{ID: id, Email: "u@example.com"}, nil)
	}
	emailSvc.On("SendNotificationEmail", ctx, "u@example.com", mock.Anything, "published").Return(nil)

	err := svc.NotifyUsers(ctx, []int32{1, 2}, "published", domain.NotificationSeverityInfo, domain.NotificationSourceProject, 42)
	assert.NoError(t, err)
	noteRepo.AssertNumberOfCalls(t, "Create", 2)
}
