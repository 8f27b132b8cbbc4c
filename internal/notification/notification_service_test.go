package notification_test

import (
	"context"
	"testing"

	"go-schooldocs/internal/notification"
	notificationerrors "go-schooldocs/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNotificationRepository struct {
	createFn      func(ctx context.Context, n *notification.Notification) error
	findAllFn     func(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error)
	markReadFn    func(ctx context.Context, userID, id string) error
	markAllReadFn func(ctx context.Context, userID string) error
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) FindAllByUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, userID, unreadOnly)
	}
	return nil, nil
}

func (f *fakeNotificationRepository) FindByIDAndUser(ctx context.Context, userID, id string) (*notification.Notification, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, userID, id)
	}
	return nil
}

func (f *fakeNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, userID)
	}
	return nil
}

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	var persisted *notification.Notification
	repo := &fakeNotificationRepository{
		createFn: func(ctx context.Context, n *notification.Notification) error {
			persisted = n
			return nil
		},
	}
	svc := notification.NewService(repo)

	resp, err := svc.Create(ctx, userID, "Your attestation ATT-2026-00017 is ready")

	require.NoError(t, err)
	assert.Equal(t, userID, resp.UserID)
	assert.False(t, resp.IsRead)
	require.NotNil(t, persisted)
	assert.Equal(t, "Your attestation ATT-2026-00017 is ready", persisted.Message)
}

func TestNotificationService_Create_InvalidUserID(t *testing.T) {
	svc := notification.NewService(&fakeNotificationRepository{})

	_, err := svc.Create(context.Background(), "not-a-uuid", "hello")

	assert.ErrorIs(t, err, notificationerrors.ErrInvalidUserID)
}

func TestNotificationService_GetAllForUser_UnreadOnly(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	var unreadSeen bool
	repo := &fakeNotificationRepository{
		findAllFn: func(ctx context.Context, uid string, unreadOnly bool) ([]notification.Notification, error) {
			unreadSeen = unreadOnly
			return []notification.Notification{
				{ID: uuid.New(), UserID: userID, Message: "first"},
				{ID: uuid.New(), UserID: userID, Message: "second"},
			}, nil
		},
	}
	svc := notification.NewService(repo)

	res, err := svc.GetAllForUser(ctx, userID.String(), true)

	require.NoError(t, err)
	assert.True(t, unreadSeen)
	assert.Len(t, res, 2)
	assert.Equal(t, "first", res[0].Message)
}

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	repo := &fakeNotificationRepository{
		markReadFn: func(ctx context.Context, userID, id string) error {
			return gorm.ErrRecordNotFound
		},
	}
	svc := notification.NewService(repo)

	err := svc.MarkRead(context.Background(), uuid.NewString(), uuid.NewString())

	assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
}
