package activity

import (
	"context"
	"database/sql"
	"time"

	"go-schooldocs/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder is the write-side surface other modules depend on. WithTx lets
// document services append their log entry inside the same transaction as
// the document itself.
//
//go:generate mockgen -source=activity_service.go -destination=mock/activity_service_mock.go -package=mock
type Recorder interface {
	WithTx(tx *sql.Tx) Recorder
	Record(ctx context.Context, e Entry) error
}

type Service interface {
	Recorder
	List(ctx context.Context, filter ListFilter) ([]ActivityResponse, error)
	Recent(ctx context.Context) ([]ActivityResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("activity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) WithTx(tx *sql.Tx) Recorder {
	return &service{repo: s.repo.WithTx(tx), logger: s.logger}
}

func (s *service) Record(ctx context.Context, e Entry) error {
	rid := contextutil.GetRequestID(ctx)

	entry := &ActivityLog{
		UserEmail:   e.UserEmail,
		ActionType:  e.ActionType,
		EntityType:  e.EntityType,
		Description: e.Description,
		IPAddress:   e.IPAddress,
		UserAgent:   e.UserAgent,
	}
	if uid, err := uuid.Parse(e.UserID); err == nil {
		entry.UserID = &uid
	}
	if eid, err := uuid.Parse(e.EntityID); err == nil {
		entry.EntityID = &eid
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("record activity failed",
			zap.String("request_id", rid),
			zap.String("action_type", e.ActionType),
			zap.String("entity_type", e.EntityType),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ActivityResponse, error) {
	entries, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list activities failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(entries), nil
}

// Recent returns the last seven days of activity.
func (s *service) Recent(ctx context.Context) ([]ActivityResponse, error) {
	since := time.Now().UTC().AddDate(0, 0, -7)
	entries, err := s.repo.FindSince(ctx, since)
	if err != nil {
		s.logger.Error("recent activities failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func mapToResponse(e ActivityLog) ActivityResponse {
	resp := ActivityResponse{
		ID:          e.ID.String(),
		UserEmail:   e.UserEmail,
		ActionType:  e.ActionType,
		EntityType:  e.EntityType,
		Description: e.Description,
		IPAddress:   e.IPAddress,
		UserAgent:   e.UserAgent,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
	if e.UserID != nil {
		resp.UserID = e.UserID.String()
	}
	if e.EntityID != nil {
		resp.EntityID = e.EntityID.String()
	}
	return resp
}

func mapToListResponse(entries []ActivityLog) []ActivityResponse {
	res := make([]ActivityResponse, len(entries))
	for i, e := range entries {
		res[i] = mapToResponse(e)
	}
	return res
}
