package attestation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-schooldocs/internal/activity"
	attestationerrors "go-schooldocs/internal/attestation/errors"
	"go-schooldocs/internal/events"
	"go-schooldocs/internal/messaging/kafka"
	"go-schooldocs/internal/shared/contextutil"
	"go-schooldocs/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attestation_service.go -destination=mock/attestation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateAttestationRequest) (AttestationResponse, error)
	GetAll(ctx context.Context) ([]AttestationResponse, error)
	GetByID(ctx context.Context, id string) (AttestationResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttestationResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateAttestationRequest) (AttestationResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	generator counter.Generator
	recorder  activity.Recorder
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	generator counter.Generator,
	recorder activity.Recorder,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, generator, recorder, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	generator counter.Generator,
	recorder activity.Recorder,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attestation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attestation.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		generator: generator,
		recorder:  recorder,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateAttestationRequest,
) (AttestationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create attestation requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
	)

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create attestation employee lookup failed", zap.Error(err))
		return AttestationResponse{}, err
	}
	if !exists {
		return AttestationResponse{}, attestationerrors.ErrEmployeeNotFound
	}

	now := time.Now().UTC()
	reference, err := s.generator.Next(ctx, counter.DocTypeAttestation, now.Year())
	if err != nil {
		s.logger.Error("create attestation reference generation failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return AttestationResponse{}, mapRepositoryError(err)
	}

	issuer := req.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}

	creatorID, _ := uuid.Parse(actorID)
	att := &Attestation{
		ID:          uuid.New(),
		Reference:   reference,
		EmployeeID:  uuid.MustParse(req.EmployeeID),
		IssueDate:   now,
		Issuer:      issuer,
		Status:      StatusIssued,
		CreatedByID: creatorID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create attestation begin tx failed", zap.Error(err))
		return AttestationResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, att); err != nil {
		s.logger.Error("create attestation persist failed", zap.Error(err))
		return AttestationResponse{}, mapRepositoryError(err)
	}

	if err := s.recorder.WithTx(tx).Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionCreate,
		EntityType:  activity.EntityAttestation,
		EntityID:    att.ID.String(),
		Description: fmt.Sprintf("Generated attestation %s", att.Reference),
	}); err != nil {
		return AttestationResponse{}, err
	}

	if s.outbox != nil {
		event := events.DocumentGeneratedEvent{
			EventType:    "document_generated",
			RequestID:    rid,
			DocumentType: counter.DocTypeAttestation,
			DocumentID:   att.ID.String(),
			Reference:    att.Reference,
			EmployeeID:   att.EmployeeID.String(),
			IssuedByID:   actorID,
			OccurredAt:   now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return AttestationResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "attestation",
			AggregateID:   att.ID.String(),
			EventType:     event.EventType,
			Topic:         events.DocumentGeneratedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create attestation outbox persist failed",
				zap.String("attestation_id", att.ID.String()),
				zap.Error(err),
			)
			return AttestationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create attestation commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttestationResponse{}, err
	}

	s.logger.Info("create attestation success",
		zap.String("request_id", rid),
		zap.String("attestation_id", att.ID.String()),
		zap.String("reference", att.Reference),
	)

	return mapToResponse(*att), nil
}

func (s *service) GetAll(ctx context.Context) ([]AttestationResponse, error) {
	atts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all attestations failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(atts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttestationResponse, error) {
	att, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttestationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*att), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttestationResponse, error) {
	atts, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get attestations by employee failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(atts), nil
}

// Update never touches the reference: once issued it is immutable.
func (s *service) Update(
	ctx context.Context,
	actorID, id string,
	req UpdateAttestationRequest,
) (AttestationResponse, error) {
	att, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttestationResponse{}, mapRepositoryError(err)
	}

	if req.Issuer != "" {
		att.Issuer = req.Issuer
	}
	if req.Status != "" {
		att.Status = req.Status
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttestationResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, att); err != nil {
		s.logger.Error("update attestation persist failed", zap.Error(err))
		return AttestationResponse{}, mapRepositoryError(err)
	}

	if err := s.recorder.WithTx(tx).Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionUpdate,
		EntityType:  activity.EntityAttestation,
		EntityID:    att.ID.String(),
		Description: fmt.Sprintf("Updated attestation %s", att.Reference),
	}); err != nil {
		return AttestationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttestationResponse{}, err
	}

	s.logger.Info("update attestation success", zap.String("attestation_id", id))
	return mapToResponse(*att), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		s.logger.Error("delete attestation failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.recorder.WithTx(tx).Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionDelete,
		EntityType:  activity.EntityAttestation,
		EntityID:    id,
		Description: "Deleted attestation",
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete attestation success", zap.String("attestation_id", id))
	return nil
}

func mapToResponse(att Attestation) AttestationResponse {
	resp := AttestationResponse{
		ID:         att.ID.String(),
		Reference:  att.Reference,
		EmployeeID: att.EmployeeID.String(),
		IssueDate:  att.IssueDate.Format("2006-01-02"),
		Issuer:     att.Issuer,
		Status:     att.Status,
	}
	if att.CreatedByID != uuid.Nil {
		resp.CreatedByID = att.CreatedByID.String()
	}
	if att.Employee != nil {
		resp.Employee = &AttestationEmployeeResponse{
			ID:        att.Employee.ID.String(),
			FirstName: att.Employee.FirstName,
			LastName:  att.Employee.LastName,
		}
	}
	return resp
}

func mapToListResponse(atts []Attestation) []AttestationResponse {
	res := make([]AttestationResponse, len(atts))
	for i, a := range atts {
		res[i] = mapToResponse(a)
	}
	return res
}
