package attestation_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"go-schooldocs/internal/activity"
	"go-schooldocs/internal/attestation"
	attestationerrors "go-schooldocs/internal/attestation/errors"
	"go-schooldocs/internal/events"
	"go-schooldocs/internal/messaging/kafka"
	"go-schooldocs/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAttestationRepository struct {
	createFn         func(ctx context.Context, att *attestation.Attestation) error
	findAllFn        func(ctx context.Context) ([]attestation.Attestation, error)
	findByIDFn       func(ctx context.Context, id string) (*attestation.Attestation, error)
	findByEmployeeFn func(ctx context.Context, employeeID string) ([]attestation.Attestation, error)
	employeeExistsFn func(ctx context.Context, employeeID string) (bool, error)
	updateFn         func(ctx context.Context, att *attestation.Attestation) error
	deleteFn         func(ctx context.Context, id string) error
}

func (f *fakeAttestationRepository) WithTx(tx *sql.Tx) attestation.Repository { return f }

func (f *fakeAttestationRepository) Create(ctx context.Context, att *attestation.Attestation) error {
	if f.createFn != nil {
		return f.createFn(ctx, att)
	}
	return nil
}

func (f *fakeAttestationRepository) FindAll(ctx context.Context) ([]attestation.Attestation, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeAttestationRepository) FindByID(ctx context.Context, id string) (*attestation.Attestation, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeAttestationRepository) FindByEmployee(ctx context.Context, employeeID string) ([]attestation.Attestation, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeAttestationRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

func (f *fakeAttestationRepository) Update(ctx context.Context, att *attestation.Attestation) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, att)
	}
	return nil
}

func (f *fakeAttestationRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeGenerator struct {
	nextFn func(ctx context.Context, docType string, year int) (string, error)
}

func (f *fakeGenerator) Next(ctx context.Context, docType string, year int) (string, error) {
	if f.nextFn != nil {
		return f.nextFn(ctx, docType, year)
	}
	return "ATT-2026-00001", nil
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

type attestationServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  attestation.Service
	repo     *fakeAttestationRepository
	gen      *fakeGenerator
	recorder *fakeRecorder
	outbox   *fakeOutboxRepository
}

func setupAttestationServiceTest(t *testing.T) *attestationServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttestationRepository{}
	gen := &fakeGenerator{}
	recorder := &fakeRecorder{}
	outbox := &fakeOutboxRepository{}
	svc := attestation.NewServiceWithOutbox(db, repo, gen, recorder, outbox)

	return &attestationServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		gen:      gen,
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

func TestAttestationService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	deps := setupAttestationServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.gen.nextFn = func(ctx context.Context, docType string, year int) (string, error) {
		assert.Equal(t, counter.DocTypeAttestation, docType)
		return "ATT-2026-00017", nil
	}

	resp, err := deps.service.Create(ctx, actorID, attestation.CreateAttestationRequest{
		EmployeeID: employeeID,
	})

	assert.NoError(t, err)
	assert.Equal(t, "ATT-2026-00017", resp.Reference)
	assert.Equal(t, attestation.StatusIssued, resp.Status)
	assert.Equal(t, employeeID, resp.EmployeeID)
	assert.NotEmpty(t, resp.Issuer)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestAttestationService_Create_WritesOneActivityEntry(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	deps := setupAttestationServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	_, err := deps.service.Create(ctx, actorID, attestation.CreateAttestationRequest{
		EmployeeID: uuid.New().String(),
	})

	assert.NoError(t, err)
	assert.Len(t, deps.recorder.entries, 1)
	entry := deps.recorder.entries[0]
	assert.Equal(t, actorID, entry.UserID)
	assert.Equal(t, activity.ActionCreate, entry.ActionType)
	assert.Equal(t, activity.EntityAttestation, entry.EntityType)
}

func TestAttestationService_Create_EmitsOutboxEvent(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	deps := setupAttestationServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.gen.nextFn = func(ctx context.Context, docType string, year int) (string, error) {
		return "ATT-2026-00042", nil
	}

	resp, err := deps.service.Create(ctx, actorID, attestation.CreateAttestationRequest{
		EmployeeID: employeeID,
	})

	assert.NoError(t, err)
	assert.Len(t, deps.outbox.events, 1)

	outboxEvent := deps.outbox.events[0]
	assert.Equal(t, events.DocumentGeneratedTopic, outboxEvent.Topic)
	assert.Equal(t, kafka.OutboxStatusPending, outboxEvent.Status)
	assert.Equal(t, resp.ID, outboxEvent.AggregateID)

	var payload events.DocumentGeneratedEvent
	assert.NoError(t, json.Unmarshal(outboxEvent.Payload, &payload))
	assert.Equal(t, "ATT-2026-00042", payload.Reference)
	assert.Equal(t, counter.DocTypeAttestation, payload.DocumentType)
	assert.Equal(t, actorID, payload.IssuedByID)
}

func TestAttestationService_Create_UnknownEmployee(t *testing.T) {
	ctx := context.Background()

	deps := setupAttestationServiceTest(t)
	defer deps.db.Close()

	deps.repo.employeeExistsFn = func(ctx context.Context, employeeID string) (bool, error) {
		return false, nil
	}

	_, err := deps.service.Create(ctx, uuid.New().String(), attestation.CreateAttestationRequest{
		EmployeeID: uuid.New().String(),
	})

	assert.ErrorIs(t, err, attestationerrors.ErrEmployeeNotFound)
	assert.Empty(t, deps.recorder.entries)
	assert.Empty(t, deps.outbox.events)
}

func TestAttestationService_Create_SerializationConflict(t *testing.T) {
	ctx := context.Background()

	deps := setupAttestationServiceTest(t)
	defer deps.db.Close()

	deps.gen.nextFn = func(ctx context.Context, docType string, year int) (string, error) {
		return "", errors.Join(counter.ErrSerialization, errors.New("could not serialize access"))
	}

	_, err := deps.service.Create(ctx, uuid.New().String(), attestation.CreateAttestationRequest{
		EmployeeID: uuid.New().String(),
	})

	assert.ErrorIs(t, err, attestationerrors.ErrReferenceConflict)
}

func TestAttestationService_Update_KeepsReference(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	attID := uuid.New()

	deps := setupAttestationServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*attestation.Attestation, error) {
		return &attestation.Attestation{
			ID:         attID,
			Reference:  "ATT-2026-00009",
			EmployeeID: uuid.New(),
			Status:     attestation.StatusIssued,
		}, nil
	}

	resp, err := deps.service.Update(ctx, actorID, attID.String(), attestation.UpdateAttestationRequest{
		Status: attestation.StatusCancelled,
	})

	assert.NoError(t, err)
	assert.Equal(t, "ATT-2026-00009", resp.Reference)
	assert.Equal(t, attestation.StatusCancelled, resp.Status)
	assert.Len(t, deps.recorder.entries, 1)
	assert.Equal(t, activity.ActionUpdate, deps.recorder.entries[0].ActionType)
}

func TestAttestationService_Delete_RecordsActivity(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	attID := uuid.New().String()

	deps := setupAttestationServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	err := deps.service.Delete(ctx, actorID, attID)

	assert.NoError(t, err)
	assert.Len(t, deps.recorder.entries, 1)
	assert.Equal(t, activity.ActionDelete, deps.recorder.entries[0].ActionType)
	assert.Equal(t, attID, deps.recorder.entries[0].EntityID)
}
