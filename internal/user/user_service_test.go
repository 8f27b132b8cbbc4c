package user_test

import (
	"context"
	"database/sql"
	"testing"

	"go-schooldocs/internal/activity"
	"go-schooldocs/internal/notification"
	"go-schooldocs/internal/user"
	usererrors "go-schooldocs/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	createFn         func(ctx context.Context, u *user.User) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*user.User, error)
	updatePasswordFn func(ctx context.Context, id uuid.UUID, hashed string) error
	setActiveFn      func(ctx context.Context, id uuid.UUID, active bool) error
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return &user.User{ID: id, Email: "someone@school.dz", Role: "SG", IsActive: true}, nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	if f.updatePasswordFn != nil {
		return f.updatePasswordFn(ctx, id, hashed)
	}
	return nil
}

func (f *fakeUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if f.setActiveFn != nil {
		return f.setActiveFn(ctx, id, active)
	}
	return nil
}

func (f *fakeUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeUserRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeRecorder struct {
	entries []activity.Entry
}

func (f *fakeRecorder) Record(ctx context.Context, e activity.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeRecorder) WithTx(tx *sql.Tx) activity.Recorder { return f }

type fakeNotificationService struct {
	messages map[string][]string
}

func (f *fakeNotificationService) Create(ctx context.Context, userID, message string) (notification.NotificationResponse, error) {
	if f.messages == nil {
		f.messages = map[string][]string{}
	}
	f.messages[userID] = append(f.messages[userID], message)
	return notification.NotificationResponse{}, nil
}

func (f *fakeNotificationService) GetAllForUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.NotificationResponse, error) {
	return nil, nil
}

func (f *fakeNotificationService) MarkRead(ctx context.Context, userID, id string) error { return nil }

func (f *fakeNotificationService) MarkAllRead(ctx context.Context, userID string) error { return nil }

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.NewString()

	var persisted *user.User
	repo := &fakeUserRepository{
		createFn: func(ctx context.Context, u *user.User) error {
			persisted = u
			return nil
		},
	}
	recorder := &fakeRecorder{}
	notifier := &fakeNotificationService{}
	svc := user.NewService(repo, recorder, notifier)

	resp, err := svc.Create(ctx, actorID, user.CreateUserRequest{
		Email:     "  New.RH@School.DZ ",
		FirstName: "Karim",
		LastName:  "M",
		Role:      "RH",
	})

	require.NoError(t, err)
	assert.Equal(t, "new.rh@school.dz", resp.Email)
	assert.Len(t, resp.TempPassword, 24)
	assert.True(t, resp.IsActive)

	require.NotNil(t, persisted)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.Password), []byte(resp.TempPassword)))

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, activity.ActionCreate, recorder.entries[0].ActionType)
	assert.Equal(t, activity.EntityUser, recorder.entries[0].EntityType)
	assert.Equal(t, actorID, recorder.entries[0].UserID)

	require.Len(t, notifier.messages[resp.ID], 1)
	assert.Contains(t, notifier.messages[resp.ID][0], "temporary password")
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	repo := &fakeUserRepository{
		createFn: func(ctx context.Context, u *user.User) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_user_email"}
		},
	}
	recorder := &fakeRecorder{}
	svc := user.NewService(repo, recorder, &fakeNotificationService{})

	_, err := svc.Create(ctx, uuid.NewString(), user.CreateUserRequest{
		Email:     "rh@school.dz",
		FirstName: "Karim",
		LastName:  "M",
		Role:      "RH",
	})

	assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyRegistered)
	assert.Empty(t, recorder.entries)
}

func TestUserService_ChangePassword_OwnerMustProveCurrent(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()

	hashed, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return &user.User{ID: id, Email: "sg@school.dz", Password: string(hashed), Role: "SG", IsActive: true}, nil
		},
	}
	svc := user.NewService(repo, &fakeRecorder{}, &fakeNotificationService{})

	err = svc.ChangePassword(ctx, targetID.String(), "SG", targetID.String(), user.ChangePasswordRequest{
		NewPassword: "brand-new-pass",
	})
	assert.ErrorIs(t, err, usererrors.ErrCurrentPasswordRequired)

	err = svc.ChangePassword(ctx, targetID.String(), "SG", targetID.String(), user.ChangePasswordRequest{
		CurrentPassword: "not-the-old-one",
		NewPassword:     "brand-new-pass",
	})
	assert.ErrorIs(t, err, usererrors.ErrWrongCurrentPassword)

	err = svc.ChangePassword(ctx, targetID.String(), "SG", targetID.String(), user.ChangePasswordRequest{
		CurrentPassword: "old-pass",
		NewPassword:     "brand-new-pass",
	})
	assert.NoError(t, err)
}

func TestUserService_ChangePassword_AdminRotatesWithoutCurrent(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.NewString()
	targetID := uuid.New()

	var stored string
	repo := &fakeUserRepository{
		updatePasswordFn: func(ctx context.Context, id uuid.UUID, hashed string) error {
			stored = hashed
			return nil
		},
	}
	recorder := &fakeRecorder{}
	svc := user.NewService(repo, recorder, &fakeNotificationService{})

	err := svc.ChangePassword(ctx, adminID, "ADMIN", targetID.String(), user.ChangePasswordRequest{
		NewPassword: "rotated-by-admin",
	})

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("rotated-by-admin")))
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, activity.ActionUpdate, recorder.entries[0].ActionType)
	assert.Equal(t, targetID.String(), recorder.entries[0].EntityID)
}

func TestUserService_ToggleActive(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()

	var setTo *bool
	repo := &fakeUserRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return &user.User{ID: id, Email: "sg@school.dz", Role: "SG", IsActive: true}, nil
		},
		setActiveFn: func(ctx context.Context, id uuid.UUID, active bool) error {
			setTo = &active
			return nil
		},
	}
	recorder := &fakeRecorder{}
	svc := user.NewService(repo, recorder, &fakeNotificationService{})

	resp, err := svc.ToggleActive(ctx, uuid.NewString(), targetID.String())

	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	require.NotNil(t, setTo)
	assert.False(t, *setTo)
	require.Len(t, recorder.entries, 1)
	assert.Contains(t, recorder.entries[0].Description, "deactivated")
}

func TestUserService_GetByID_InvalidID(t *testing.T) {
	svc := user.NewService(&fakeUserRepository{}, &fakeRecorder{}, &fakeNotificationService{})

	_, err := svc.GetByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
}
