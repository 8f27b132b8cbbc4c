package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-schooldocs/internal/activity"
	"go-schooldocs/internal/notification"
	"go-schooldocs/internal/rbac"
	usererrors "go-schooldocs/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateUserRequest) (CreatedUserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	ChangePassword(ctx context.Context, actorID, actorRole, targetID string, req ChangePasswordRequest) error
	ToggleActive(ctx context.Context, actorID, id string) (UserResponse, error)
}

type service struct {
	repo          Repository
	recorder      activity.Recorder
	notifications notification.Service
	logger        *zap.Logger
}

func NewService(
	repo Repository,
	recorder activity.Recorder,
	notifications notification.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		repo:          repo,
		recorder:      recorder,
		notifications: notifications,
		logger:        l,
	}
}

// generateTempPassword returns a URL-safe random password. 18 random
// bytes encode to 24 characters.
func generateTempPassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateUserRequest,
) (CreatedUserResponse, error) {
	tempPassword, err := generateTempPassword()
	if err != nil {
		return CreatedUserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return CreatedUserResponse{}, err
	}

	u := &User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
		Role:      req.Role,
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create user failed", zap.String("email", u.Email), zap.Error(err))
		return CreatedUserResponse{}, mapRepositoryError(err)
	}

	if err := s.recorder.Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionCreate,
		EntityType:  activity.EntityUser,
		EntityID:    u.ID.String(),
		Description: fmt.Sprintf("Created account %s with role %s", u.Email, u.Role),
	}); err != nil {
		s.logger.Warn("create user activity record failed", zap.Error(err))
	}

	if _, err := s.notifications.Create(ctx, u.ID.String(),
		"Welcome! Your account has been created. Please change your temporary password.",
	); err != nil {
		s.logger.Warn("create user welcome notification failed", zap.Error(err))
	}

	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return CreatedUserResponse{
		UserResponse: mapToResponse(*u),
		TempPassword: tempPassword,
	}, nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = mapToResponse(u)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(
	ctx context.Context,
	actorID, id string,
	req UpdateUserRequest,
) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Role != "" {
		u.Role = req.Role
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := s.recorder.Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionUpdate,
		EntityType:  activity.EntityUser,
		EntityID:    u.ID.String(),
		Description: fmt.Sprintf("Updated account %s", u.Email),
	}); err != nil {
		s.logger.Warn("update user activity record failed", zap.Error(err))
	}

	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	if err := s.repo.Delete(ctx, uid); err != nil {
		s.logger.Error("delete user failed", zap.String("user_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.recorder.Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionDelete,
		EntityType:  activity.EntityUser,
		EntityID:    id,
		Description: "Deleted account",
	}); err != nil {
		s.logger.Warn("delete user activity record failed", zap.Error(err))
	}

	return nil
}

// ChangePassword lets owners rotate their own password after proving
// the current one. Admins may rotate any password without it.
func (s *service) ChangePassword(
	ctx context.Context,
	actorID, actorRole, targetID string,
	req ChangePasswordRequest,
) error {
	uid, err := uuid.Parse(targetID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return mapRepositoryError(err)
	}

	if actorRole != rbac.RoleAdmin || actorID == targetID {
		if req.CurrentPassword == "" {
			return usererrors.ErrCurrentPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)); err != nil {
			return usererrors.ErrWrongCurrentPassword
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, uid, string(hashed)); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.recorder.Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionUpdate,
		EntityType:  activity.EntityUser,
		EntityID:    targetID,
		Description: "Changed account password",
	}); err != nil {
		s.logger.Warn("change password activity record failed", zap.Error(err))
	}

	return nil
}

func (s *service) ToggleActive(ctx context.Context, actorID, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.IsActive = !u.IsActive
	if err := s.repo.SetActive(ctx, uid, u.IsActive); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	state := "deactivated"
	if u.IsActive {
		state = "reactivated"
	}
	if err := s.recorder.Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionUpdate,
		EntityType:  activity.EntityUser,
		EntityID:    id,
		Description: fmt.Sprintf("Account %s %s", u.Email, state),
	}); err != nil {
		s.logger.Warn("toggle active activity record failed", zap.Error(err))
	}

	return mapToResponse(*u), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usererrors.ErrEmailAlreadyRegistered
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return usererrors.ErrEmailAlreadyRegistered
	}
	return err
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
