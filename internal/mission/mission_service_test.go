package mission_test

import (
	"context"
	"database/sql"
	"testing"

	"go-schooldocs/internal/activity"
	"go-schooldocs/internal/messaging/kafka"
	"go-schooldocs/internal/mission"
	missionerrors "go-schooldocs/internal/mission/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeMissionRepository struct {
	createFn         func(ctx context.Context, order *mission.MissionOrder) error
	findByIDFn       func(ctx context.Context, id string) (*mission.MissionOrder, error)
	employeeExistsFn func(ctx context.Context, employeeID string) (bool, error)
	createStageFn    func(ctx context.Context, stage *mission.MissionStage) error
	findStagesFn     func(ctx context.Context, missionID string) ([]mission.MissionStage, error)
}

func (f *fakeMissionRepository) WithTx(tx *sql.Tx) mission.Repository { return f }

func (f *fakeMissionRepository) Create(ctx context.Context, order *mission.MissionOrder) error {
	if f.createFn != nil {
		return f.createFn(ctx, order)
	}
	return nil
}

func (f *fakeMissionRepository) FindAll(ctx context.Context) ([]mission.MissionOrder, error) {
	return nil, nil
}

func (f *fakeMissionRepository) FindByID(ctx context.Context, id string) (*mission.MissionOrder, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &mission.MissionOrder{ID: uuid.MustParse(id)}, nil
}

func (f *fakeMissionRepository) FindByEmployee(ctx context.Context, employeeID string) ([]mission.MissionOrder, error) {
	return nil, nil
}

func (f *fakeMissionRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

func (f *fakeMissionRepository) Update(ctx context.Context, order *mission.MissionOrder) error {
	return nil
}

func (f *fakeMissionRepository) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeMissionRepository) CreateStage(ctx context.Context, stage *mission.MissionStage) error {
	if f.createStageFn != nil {
		return f.createStageFn(ctx, stage)
	}
	return nil
}

func (f *fakeMissionRepository) FindStages(ctx context.Context, missionID string) ([]mission.MissionStage, error) {
	if f.findStagesFn != nil {
		return f.findStagesFn(ctx, missionID)
	}
	return nil, nil
}

type fakeGenerator struct {
	reference string
}

func (f *fakeGenerator) Next(ctx context.Context, docType string, year int) (string, error) {
	if f.reference != "" {
		return f.reference, nil
	}
	return "OM-2026-00001", nil
}

type fakeRecorder struct {
	entries []activity.Entry
}

func (f *fakeRecorder) WithTx(tx *sql.Tx) activity.Recorder { return f }

func (f *fakeRecorder) Record(ctx context.Context, e activity.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

type fakeOutboxRepository struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type missionServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  mission.Service
	repo     *fakeMissionRepository
	recorder *fakeRecorder
	outbox   *fakeOutboxRepository
}

func setupMissionServiceTest(t *testing.T) *missionServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeMissionRepository{}
	recorder := &fakeRecorder{}
	outbox := &fakeOutboxRepository{}
	svc := mission.NewServiceWithOutbox(db, repo, &fakeGenerator{}, recorder, outbox)

	return &missionServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		recorder: recorder,
		outbox:   outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreateRequest(employeeID string) mission.CreateMissionRequest {
	return mission.CreateMissionRequest{
		EmployeeID:       employeeID,
		Purpose:          "Regional exam board",
		DestinationPlace: "Oran",
		DepartureAt:      "2026-09-10T08:00:00Z",
		ReturnAt:         "2026-09-12T18:00:00Z",
		Transport:        mission.TransportTrain,
		IssuingOfficer:   "School director",
	}
}

func TestMissionService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	deps := setupMissionServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Create(ctx, actorID, validCreateRequest(employeeID))

	assert.NoError(t, err)
	assert.Equal(t, "OM-2026-00001", resp.Reference)
	assert.Equal(t, mission.StatusIssued, resp.Status)
	assert.Equal(t, "Alger", resp.DeparturePlace)
	assert.Equal(t, int16(1), resp.DurationDays)
	assert.Len(t, deps.recorder.entries, 1)
	assert.Equal(t, activity.EntityMission, deps.recorder.entries[0].EntityType)
	assert.Len(t, deps.outbox.events, 1)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestMissionService_Create_WithStages(t *testing.T) {
	ctx := context.Background()
	deps := setupMissionServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	req := validCreateRequest(uuid.New().String())
	req.Stages = []mission.CreateStageRequest{
		{
			DeparturePlace: "Alger",
			ArrivalPlace:   "Oran",
			DepartureAt:    "2026-09-10T08:00:00Z",
			ArrivalAt:      "2026-09-10T12:00:00Z",
			Transport:      mission.TransportTrain,
		},
		{
			DeparturePlace: "Oran",
			ArrivalPlace:   "Alger",
			DepartureAt:    "2026-09-12T14:00:00Z",
			ArrivalAt:      "2026-09-12T18:00:00Z",
			Transport:      mission.TransportTrain,
		},
	}

	var persisted *mission.MissionOrder
	deps.repo.createFn = func(ctx context.Context, order *mission.MissionOrder) error {
		persisted = order
		return nil
	}

	resp, err := deps.service.Create(ctx, uuid.New().String(), req)

	assert.NoError(t, err)
	assert.Len(t, resp.Stages, 2)
	assert.NotNil(t, persisted)
	assert.Len(t, persisted.Stages, 2)
	assert.Equal(t, persisted.ID, persisted.Stages[0].MissionOrderID)
}

func TestMissionService_Create_InvalidTravelWindow(t *testing.T) {
	ctx := context.Background()
	deps := setupMissionServiceTest(t)
	defer deps.db.Close()

	req := validCreateRequest(uuid.New().String())
	req.ReturnAt = "2026-09-09T08:00:00Z"

	_, err := deps.service.Create(ctx, uuid.New().String(), req)

	assert.ErrorIs(t, err, missionerrors.ErrInvalidTravelWindow)
	assert.Empty(t, deps.recorder.entries)
}

func TestMissionService_Create_BadDate(t *testing.T) {
	ctx := context.Background()
	deps := setupMissionServiceTest(t)
	defer deps.db.Close()

	req := validCreateRequest(uuid.New().String())
	req.DepartureAt = "10/09/2026"

	_, err := deps.service.Create(ctx, uuid.New().String(), req)

	assert.ErrorIs(t, err, missionerrors.ErrInvalidDate)
}

func TestMissionService_Create_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	deps := setupMissionServiceTest(t)
	defer deps.db.Close()

	deps.repo.employeeExistsFn = func(ctx context.Context, employeeID string) (bool, error) {
		return false, nil
	}

	_, err := deps.service.Create(ctx, uuid.New().String(), validCreateRequest(uuid.New().String()))

	assert.ErrorIs(t, err, missionerrors.ErrEmployeeNotFound)
}

func TestMissionService_AddStage(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	missionID := uuid.New()

	deps := setupMissionServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*mission.MissionOrder, error) {
		return &mission.MissionOrder{ID: missionID, Reference: "OM-2026-00007"}, nil
	}

	resp, err := deps.service.AddStage(ctx, actorID, missionID.String(), mission.CreateStageRequest{
		DeparturePlace: "Oran",
		ArrivalPlace:   "Tlemcen",
		DepartureAt:    "2026-09-11T09:00:00Z",
		ArrivalAt:      "2026-09-11T11:30:00Z",
		Transport:      mission.TransportServiceCar,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Tlemcen", resp.ArrivalPlace)
	assert.Len(t, deps.recorder.entries, 1)
	assert.Equal(t, activity.ActionUpdate, deps.recorder.entries[0].ActionType)
	assert.Equal(t, missionID.String(), deps.recorder.entries[0].EntityID)
}

func TestMissionService_AddStage_ArrivalBeforeDeparture(t *testing.T) {
	ctx := context.Background()
	deps := setupMissionServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.AddStage(ctx, uuid.New().String(), uuid.New().String(), mission.CreateStageRequest{
		DeparturePlace: "Oran",
		ArrivalPlace:   "Tlemcen",
		DepartureAt:    "2026-09-11T11:30:00Z",
		ArrivalAt:      "2026-09-11T09:00:00Z",
		Transport:      mission.TransportServiceCar,
	})

	assert.ErrorIs(t, err, missionerrors.ErrInvalidTravelWindow)
}
