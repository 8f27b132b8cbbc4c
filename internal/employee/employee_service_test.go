package employee_test

import (
	"context"
	"database/sql"
	"testing"

	"go-schooldocs/internal/activity"
	"go-schooldocs/internal/employee"
	employeeerrors "go-schooldocs/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	createFn   func(ctx context.Context, empl *employee.Employee) error
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByStatus(ctx context.Context, status string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByCategory(ctx context.Context, category string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeRecorder struct {
	entries []activity.Entry
}

func (f *fakeRecorder) WithTx(tx *sql.Tx) activity.Recorder { return f }

func (f *fakeRecorder) Record(ctx context.Context, e activity.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func setupEmployeeServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FirstName:  "Yacine",
		LastName:   "Brahimi",
		BirthDate:  "1988-03-12",
		BirthPlace: "Oran",
		Grade:      "Grade 12",
		Fonction:   "Professeur de mathematiques",
		Category:   employee.CategoryTeaching,
		Service:    "Sciences",
		HireDate:   "2015-09-01",
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.NewString()

	db, mock := setupEmployeeServiceTest(t)
	expectTx(mock)

	var persisted *employee.Employee
	repo := &fakeEmployeeRepository{
		createFn: func(ctx context.Context, empl *employee.Employee) error {
			persisted = empl
			return nil
		},
	}
	recorder := &fakeRecorder{}
	svc := employee.NewService(db, repo, recorder)

	resp, err := svc.Create(ctx, actorID, validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "Brahimi", resp.LastName)
	assert.Equal(t, employee.CategoryTeaching, resp.Category)
	assert.Equal(t, employee.StatusActive, resp.EmploymentStatus)
	assert.Equal(t, "1988-03-12", resp.BirthDate)

	require.NotNil(t, persisted)
	assert.Equal(t, actorID, persisted.CreatedByID.String())

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, activity.ActionCreate, recorder.entries[0].ActionType)
	assert.Equal(t, activity.EntityEmployee, recorder.entries[0].EntityType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_Create_DefaultsCategory(t *testing.T) {
	ctx := context.Background()

	db, mock := setupEmployeeServiceTest(t)
	expectTx(mock)

	req := validCreateRequest()
	req.Category = ""
	svc := employee.NewService(db, &fakeEmployeeRepository{}, &fakeRecorder{})

	resp, err := svc.Create(ctx, uuid.NewString(), req)

	require.NoError(t, err)
	assert.Equal(t, employee.CategoryAdmin, resp.Category)
}

func TestEmployeeService_Create_BadDate(t *testing.T) {
	ctx := context.Background()

	db, _ := setupEmployeeServiceTest(t)
	req := validCreateRequest()
	req.BirthDate = "12/03/1988"
	recorder := &fakeRecorder{}
	svc := employee.NewService(db, &fakeEmployeeRepository{}, recorder)

	_, err := svc.Create(ctx, uuid.NewString(), req)

	assert.ErrorIs(t, err, employeeerrors.ErrInvalidDate)
	assert.Empty(t, recorder.entries)
}

func TestEmployeeService_Delete_RecordsActivity(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.NewString()
	employeeID := uuid.NewString()

	db, mock := setupEmployeeServiceTest(t)
	expectTx(mock)

	recorder := &fakeRecorder{}
	svc := employee.NewService(db, &fakeEmployeeRepository{}, recorder)

	err := svc.Delete(ctx, actorID, employeeID)

	require.NoError(t, err)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, activity.ActionDelete, recorder.entries[0].ActionType)
	assert.Equal(t, employeeID, recorder.entries[0].EntityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_GetByID_NotFound(t *testing.T) {
	db, _ := setupEmployeeServiceTest(t)
	svc := employee.NewService(db, &fakeEmployeeRepository{}, &fakeRecorder{})

	_, err := svc.GetByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}
