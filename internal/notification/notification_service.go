package notification

import (
	"context"
	"errors"
	"time"

	notificationerrors "go-schooldocs/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID, message string) (NotificationResponse, error)
	GetAllForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, userID, message string) (NotificationResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidUserID
	}

	n := &Notification{
		ID:      uuid.New(),
		UserID:  uid,
		Message: message,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create notification failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return NotificationResponse{}, err
	}

	return mapToResponse(*n), nil
}

func (s *service) GetAllForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindAllByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.logger.Error("list notifications failed", zap.Error(err))
		return nil, err
	}

	res := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		res[i] = mapToResponse(n)
	}
	return res, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		s.logger.Error("mark notification read failed",
			zap.String("notification_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		s.logger.Error("mark all notifications read failed", zap.Error(err))
		return err
	}
	return nil
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
