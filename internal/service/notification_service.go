package service

import (
	"context"
	"errors"

	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/agrolink/agrolink-backend/internal/repository"
	"gorm.io/gorm"
)

type NotificationService interface {
	Notify(ctx context.Context, userID uint64, typ, title, body string, requestID, roomID *uint64)
	List(ctx context.Context, uid string, unreadOnly bool, limit int) ([]model.Notification, int64, error)
	MarkAllRead(ctx context.Context, uid string) error
}

type notificationService struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
}

func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository) NotificationService {
	return &notificationService{repo: repo, userRepo: userRepo}
}

// Notify is best-effort; failures are swallowed so they never break the
// flow that triggered the notification.
func (s *notificationService) Notify(ctx context.Context, userID uint64, typ, title, body string, requestID, roomID *uint64) {
	if userID == 0 || typ == "" {
		return
	}
	n := &model.Notification{
		UserID:            userID,
		Type:              typ,
		Title:             title,
		Body:              body,
		PurchaseRequestID: requestID,
		ChatRoomID:        roomID,
	}
	_ = s.repo.Create(ctx, n)
}

func (s *notificationService) List(ctx context.Context, uid string, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	u, err := s.user(ctx, uid)
	if err != nil {
		return nil, 0, err
	}
	list, err := s.repo.ListByUser(ctx, u.ID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	cnt, err := s.repo.CountUnread(ctx, u.ID)
	if err != nil {
		return list, 0, err
	}
	return list, cnt, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, uid string) error {
	u, err := s.user(ctx, uid)
	if err != nil {
		return err
	}
	return s.repo.MarkAllRead(ctx, u.ID)
}

func (s *notificationService) user(ctx context.Context, uid string) (*model.User, error) {
	u, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
