package mission

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-schooldocs/internal/activity"
	"go-schooldocs/internal/events"
	"go-schooldocs/internal/messaging/kafka"
	missionerrors "go-schooldocs/internal/mission/errors"
	"go-schooldocs/internal/shared/contextutil"
	"go-schooldocs/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=mission_service.go -destination=mock/mission_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateMissionRequest) (MissionResponse, error)
	GetAll(ctx context.Context) ([]MissionResponse, error)
	GetByID(ctx context.Context, id string) (MissionResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]MissionResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateMissionRequest) (MissionResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	AddStage(ctx context.Context, actorID, missionID string, req CreateStageRequest) (StageResponse, error)
	GetStages(ctx context.Context, missionID string) ([]StageResponse, error)
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
	l := zap.L().Named("mission.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mission.service")
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

func parseDateTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, missionerrors.ErrInvalidDate
	}
	return t, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, missionerrors.ErrInvalidDate
	}
	return &t, nil
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateMissionRequest,
) (MissionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create mission order requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
	)

	departureAt, err := parseDateTime(req.DepartureAt)
	if err != nil {
		return MissionResponse{}, err
	}
	returnAt, err := parseDateTime(req.ReturnAt)
	if err != nil {
		return MissionResponse{}, err
	}
	if !returnAt.After(departureAt) {
		return MissionResponse{}, missionerrors.ErrInvalidTravelWindow
	}
	advanceDate, err := parseDate(req.AdvanceDate)
	if err != nil {
		return MissionResponse{}, err
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create mission employee lookup failed", zap.Error(err))
		return MissionResponse{}, err
	}
	if !exists {
		return MissionResponse{}, missionerrors.ErrEmployeeNotFound
	}

	now := time.Now().UTC()
	reference, err := s.generator.Next(ctx, counter.DocTypeMission, now.Year())
	if err != nil {
		s.logger.Error("create mission reference generation failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return MissionResponse{}, mapRepositoryError(err)
	}

	departurePlace := req.DeparturePlace
	if departurePlace == "" {
		departurePlace = defaultDeparturePlace
	}
	durationDays := req.DurationDays
	if durationDays == 0 {
		durationDays = 1
	}

	creatorID, _ := uuid.Parse(actorID)
	order := &MissionOrder{
		ID:               uuid.New(),
		Reference:        reference,
		EmployeeID:       uuid.MustParse(req.EmployeeID),
		Purpose:          req.Purpose,
		DeparturePlace:   departurePlace,
		DestinationPlace: req.DestinationPlace,
		DepartureAt:      departureAt,
		ReturnAt:         returnAt,
		Transport:        req.Transport,
		AdvanceAmount:    req.AdvanceAmount,
		AdvanceReference: req.AdvanceReference,
		AdvanceDate:      advanceDate,
		AdvancePlace:     req.AdvancePlace,
		LodgingNights:    req.LodgingNights,
		DurationDays:     durationDays,
		DurationHours:    req.DurationHours,
		IssuingOfficer:   req.IssuingOfficer,
		Status:           StatusIssued,
		CreatedByID:      creatorID,
	}

	for _, stageReq := range req.Stages {
		stage, err := buildStage(order.ID, stageReq)
		if err != nil {
			return MissionResponse{}, err
		}
		order.Stages = append(order.Stages, *stage)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create mission begin tx failed", zap.Error(err))
		return MissionResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
		s.logger.Error("create mission persist failed", zap.Error(err))
		return MissionResponse{}, mapRepositoryError(err)
	}

	if err := s.recorder.WithTx(tx).Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionCreate,
		EntityType:  activity.EntityMission,
		EntityID:    order.ID.String(),
		Description: fmt.Sprintf("Generated mission order %s", order.Reference),
	}); err != nil {
		return MissionResponse{}, err
	}

	if s.outbox != nil {
		event := events.DocumentGeneratedEvent{
			EventType:    "document_generated",
			RequestID:    rid,
			DocumentType: counter.DocTypeMission,
			DocumentID:   order.ID.String(),
			Reference:    order.Reference,
			EmployeeID:   order.EmployeeID.String(),
			IssuedByID:   actorID,
			OccurredAt:   now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return MissionResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "mission_order",
			AggregateID:   order.ID.String(),
			EventType:     event.EventType,
			Topic:         events.DocumentGeneratedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create mission outbox persist failed",
				zap.String("mission_id", order.ID.String()),
				zap.Error(err),
			)
			return MissionResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create mission commit failed", zap.String("request_id", rid), zap.Error(err))
		return MissionResponse{}, err
	}

	s.logger.Info("create mission success",
		zap.String("request_id", rid),
		zap.String("mission_id", order.ID.String()),
		zap.String("reference", order.Reference),
	)

	return mapToResponse(*order), nil
}

func (s *service) GetAll(ctx context.Context) ([]MissionResponse, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all missions failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(orders), nil
}

func (s *service) GetByID(ctx context.Context, id string) (MissionResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return MissionResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*order), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]MissionResponse, error) {
	orders, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get missions by employee failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(orders), nil
}

// Update never touches the reference: once issued it is immutable.
func (s *service) Update(
	ctx context.Context,
	actorID, id string,
	req UpdateMissionRequest,
) (MissionResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return MissionResponse{}, mapRepositoryError(err)
	}

	if req.Purpose != "" {
		order.Purpose = req.Purpose
	}
	if req.DeparturePlace != "" {
		order.DeparturePlace = req.DeparturePlace
	}
	if req.DestinationPlace != "" {
		order.DestinationPlace = req.DestinationPlace
	}
	if req.DepartureAt != "" {
		t, err := parseDateTime(req.DepartureAt)
		if err != nil {
			return MissionResponse{}, err
		}
		order.DepartureAt = t
	}
	if req.ReturnAt != "" {
		t, err := parseDateTime(req.ReturnAt)
		if err != nil {
			return MissionResponse{}, err
		}
		order.ReturnAt = t
	}
	if !order.ReturnAt.After(order.DepartureAt) {
		return MissionResponse{}, missionerrors.ErrInvalidTravelWindow
	}
	if req.Transport != "" {
		order.Transport = req.Transport
	}
	if req.AdvanceAmount != nil {
		order.AdvanceAmount = req.AdvanceAmount
	}
	if req.AdvanceReference != "" {
		order.AdvanceReference = req.AdvanceReference
	}
	if req.AdvanceDate != "" {
		d, err := parseDate(req.AdvanceDate)
		if err != nil {
			return MissionResponse{}, err
		}
		order.AdvanceDate = d
	}
	if req.AdvancePlace != "" {
		order.AdvancePlace = req.AdvancePlace
	}
	if req.LodgingNights != nil {
		order.LodgingNights = *req.LodgingNights
	}
	if req.DurationDays != nil {
		order.DurationDays = *req.DurationDays
	}
	if req.DurationHours != nil {
		order.DurationHours = *req.DurationHours
	}
	if req.IssuingOfficer != "" {
		order.IssuingOfficer = req.IssuingOfficer
	}
	if req.Status != "" {
		order.Status = req.Status
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MissionResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, order); err != nil {
		s.logger.Error("update mission persist failed", zap.Error(err))
		return MissionResponse{}, mapRepositoryError(err)
	}

	if err := s.recorder.WithTx(tx).Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionUpdate,
		EntityType:  activity.EntityMission,
		EntityID:    order.ID.String(),
		Description: fmt.Sprintf("Updated mission order %s", order.Reference),
	}); err != nil {
		return MissionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return MissionResponse{}, err
	}

	s.logger.Info("update mission success", zap.String("mission_id", id))
	return mapToResponse(*order), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		s.logger.Error("delete mission failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.recorder.WithTx(tx).Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionDelete,
		EntityType:  activity.EntityMission,
		EntityID:    id,
		Description: "Deleted mission order",
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete mission success", zap.String("mission_id", id))
	return nil
}

func (s *service) AddStage(
	ctx context.Context,
	actorID, missionID string,
	req CreateStageRequest,
) (StageResponse, error) {
	order, err := s.repo.FindByID(ctx, missionID)
	if err != nil {
		return StageResponse{}, mapRepositoryError(err)
	}

	stage, err := buildStage(order.ID, req)
	if err != nil {
		return StageResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StageResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateStage(ctx, stage); err != nil {
		s.logger.Error("add mission stage failed", zap.Error(err))
		return StageResponse{}, mapRepositoryError(err)
	}

	if err := s.recorder.WithTx(tx).Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionUpdate,
		EntityType:  activity.EntityMission,
		EntityID:    order.ID.String(),
		Description: fmt.Sprintf("Added stage %s to %s on mission order %s", stage.DeparturePlace, stage.ArrivalPlace, order.Reference),
	}); err != nil {
		return StageResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return StageResponse{}, err
	}

	return mapStageToResponse(*stage), nil
}

func (s *service) GetStages(ctx context.Context, missionID string) ([]StageResponse, error) {
	if _, err := s.repo.FindByID(ctx, missionID); err != nil {
		return nil, mapRepositoryError(err)
	}

	stages, err := s.repo.FindStages(ctx, missionID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]StageResponse, len(stages))
	for i, st := range stages {
		res[i] = mapStageToResponse(st)
	}
	return res, nil
}

func buildStage(missionID uuid.UUID, req CreateStageRequest) (*MissionStage, error) {
	departureAt, err := parseDateTime(req.DepartureAt)
	if err != nil {
		return nil, err
	}
	arrivalAt, err := parseDateTime(req.ArrivalAt)
	if err != nil {
		return nil, err
	}
	if !arrivalAt.After(departureAt) {
		return nil, missionerrors.ErrInvalidTravelWindow
	}
	return &MissionStage{
		ID:             uuid.New(),
		MissionOrderID: missionID,
		DeparturePlace: req.DeparturePlace,
		ArrivalPlace:   req.ArrivalPlace,
		DepartureAt:    departureAt,
		ArrivalAt:      arrivalAt,
		Transport:      req.Transport,
	}, nil
}

func mapToResponse(order MissionOrder) MissionResponse {
	resp := MissionResponse{
		ID:               order.ID.String(),
		Reference:        order.Reference,
		EmployeeID:       order.EmployeeID.String(),
		Purpose:          order.Purpose,
		DeparturePlace:   order.DeparturePlace,
		DestinationPlace: order.DestinationPlace,
		DepartureAt:      order.DepartureAt.Format(time.RFC3339),
		ReturnAt:         order.ReturnAt.Format(time.RFC3339),
		Transport:        order.Transport,
		AdvanceAmount:    order.AdvanceAmount,
		AdvanceReference: order.AdvanceReference,
		AdvancePlace:     order.AdvancePlace,
		LodgingNights:    order.LodgingNights,
		DurationDays:     order.DurationDays,
		DurationHours:    order.DurationHours,
		IssuingOfficer:   order.IssuingOfficer,
		Status:           order.Status,
	}
	if order.AdvanceDate != nil {
		resp.AdvanceDate = order.AdvanceDate.Format("2006-01-02")
	}
	if order.CreatedByID != uuid.Nil {
		resp.CreatedByID = order.CreatedByID.String()
	}
	if order.Employee != nil {
		resp.Employee = &MissionEmployeeResponse{
			ID:        order.Employee.ID.String(),
			FirstName: order.Employee.FirstName,
			LastName:  order.Employee.LastName,
		}
	}
	for _, st := range order.Stages {
		resp.Stages = append(resp.Stages, mapStageToResponse(st))
	}
	return resp
}

func mapStageToResponse(st MissionStage) StageResponse {
	return StageResponse{
		ID:             st.ID.String(),
		DeparturePlace: st.DeparturePlace,
		ArrivalPlace:   st.ArrivalPlace,
		DepartureAt:    st.DepartureAt.Format(time.RFC3339),
		ArrivalAt:      st.ArrivalAt.Format(time.RFC3339),
		Transport:      st.Transport,
	}
}

func mapToListResponse(orders []MissionOrder) []MissionResponse {
	res := make([]MissionResponse, len(orders))
	for i, o := range orders {
		res[i] = mapToResponse(o)
	}
	return res
}
