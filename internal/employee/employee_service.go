package employee

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-schooldocs/internal/activity"
	employeeerrors "go-schooldocs/internal/employee/errors"
	"go-schooldocs/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetActive(ctx context.Context) ([]EmployeeResponse, error)
	GetByCategory(ctx context.Context, category string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	recorder activity.Recorder
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, recorder activity.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		recorder: recorder,
		logger:   l,
	}
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("last_name", req.LastName),
	)

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}

	category := req.Category
	if category == "" {
		category = CategoryAdmin
	}
	status := req.EmploymentStatus
	if status == "" {
		status = StatusActive
	}

	creatorID, _ := uuid.Parse(actorID)
	empl := &Employee{
		ID:                uuid.New(),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		BirthDate:         birthDate,
		BirthPlace:        req.BirthPlace,
		Grade:             req.Grade,
		Fonction:          req.Fonction,
		Category:          category,
		Service:           req.Service,
		HireDate:          hireDate,
		EmploymentStatus:  status,
		IdentityDocNumber: req.IdentityDocNumber,
		IdentityDocPlace:  req.IdentityDocPlace,
		CreatedByID:       creatorID,
	}
	if req.IdentityDocDate != "" {
		d, err := time.Parse("2006-01-02", req.IdentityDocDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDate
		}
		empl.IdentityDocDate = &d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.recorder.WithTx(tx).Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionCreate,
		EntityType:  activity.EntityEmployee,
		EntityID:    empl.ID.String(),
		Description: fmt.Sprintf("Created employee %s %s", empl.LastName, empl.FirstName),
	}); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetActive(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindByStatus(ctx, StatusActive)
	if err != nil {
		s.logger.Error("get active employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByCategory(ctx context.Context, category string) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		s.logger.Error("get employees by category failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	actorID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FirstName = req.FirstName
	empl.LastName = req.LastName
	empl.BirthDate = birthDate
	empl.BirthPlace = req.BirthPlace
	empl.Grade = req.Grade
	empl.Fonction = req.Fonction
	empl.Service = req.Service
	empl.HireDate = hireDate
	empl.IdentityDocNumber = req.IdentityDocNumber
	empl.IdentityDocPlace = req.IdentityDocPlace
	if req.Category != "" {
		empl.Category = req.Category
	}
	if req.EmploymentStatus != "" {
		empl.EmploymentStatus = req.EmploymentStatus
	}
	if req.DepartureDate != "" {
		d, err := time.Parse("2006-01-02", req.DepartureDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDate
		}
		empl.DepartureDate = &d
	}
	if req.IdentityDocDate != "" {
		d, err := time.Parse("2006-01-02", req.IdentityDocDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDate
		}
		empl.IdentityDocDate = &d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.recorder.WithTx(tx).Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionUpdate,
		EntityType:  activity.EntityEmployee,
		EntityID:    empl.ID.String(),
		Description: fmt.Sprintf("Updated employee %s %s", empl.LastName, empl.FirstName),
	}); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.recorder.WithTx(tx).Record(ctx, activity.Entry{
		UserID:      actorID,
		ActionType:  activity.ActionDelete,
		EntityType:  activity.EntityEmployee,
		EntityID:    id,
		Description: "Deleted employee",
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                empl.ID.String(),
		FirstName:         empl.FirstName,
		LastName:          empl.LastName,
		BirthPlace:        empl.BirthPlace,
		Grade:             empl.Grade,
		Fonction:          empl.Fonction,
		Category:          empl.Category,
		Service:           empl.Service,
		EmploymentStatus:  empl.EmploymentStatus,
		IdentityDocNumber: empl.IdentityDocNumber,
		IdentityDocPlace:  empl.IdentityDocPlace,
	}
	if !empl.BirthDate.IsZero() {
		resp.BirthDate = empl.BirthDate.Format("2006-01-02")
	}
	if !empl.HireDate.IsZero() {
		resp.HireDate = empl.HireDate.Format("2006-01-02")
	}
	if empl.DepartureDate != nil {
		resp.DepartureDate = empl.DepartureDate.Format("2006-01-02")
	}
	if empl.IdentityDocDate != nil {
		resp.IdentityDocDate = empl.IdentityDocDate.Format("2006-01-02")
	}
	if empl.CreatedByID != uuid.Nil {
		resp.CreatedByID = empl.CreatedByID.String()
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
