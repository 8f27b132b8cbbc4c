package mission

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=mission_repo.go -destination=mock/mission_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, order *MissionOrder) error
	FindAll(ctx context.Context) ([]MissionOrder, error)
	FindByID(ctx context.Context, id string) (*MissionOrder, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]MissionOrder, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	Update(ctx context.Context, order *MissionOrder) error
	Delete(ctx context.Context, id string) error
	CreateStage(ctx context.Context, stage *MissionStage) error
	FindStages(ctx context.Context, missionID string) ([]MissionStage, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Create inserts the order and its stages through the attached
// transaction when present so the whole document commits together with
// its activity entry and outbox event.
func (r *repository) Create(ctx context.Context, order *MissionOrder) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO mission_orders (
				id, reference, employee_id, purpose, departure_place,
				destination_place, departure_at, return_at, transport,
				advance_amount, advance_reference, advance_date, advance_place,
				lodging_nights, duration_days, duration_hours,
				issuing_officer, status, created_by_id, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
				$11, $12, $13, $14, $15, $16, $17, $18, $19, NOW(), NOW()
			)
		`,
			order.ID, order.Reference, order.EmployeeID, order.Purpose,
			order.DeparturePlace, order.DestinationPlace,
			order.DepartureAt, order.ReturnAt, order.Transport,
			order.AdvanceAmount, order.AdvanceReference, order.AdvanceDate,
			order.AdvancePlace, order.LodgingNights, order.DurationDays,
			order.DurationHours, order.IssuingOfficer, order.Status,
			order.CreatedByID,
		)
		if err != nil {
			return err
		}
		for i := range order.Stages {
			if err := r.CreateStage(ctx, &order.Stages[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindAll(ctx context.Context) ([]MissionOrder, error) {
	var orders []MissionOrder
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("departure_at ASC")
		}).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*MissionOrder, error) {
	var order MissionOrder
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("departure_at ASC")
		}).
		First(&order, "id = ?", id).Error
	return &order, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]MissionOrder, error) {
	var orders []MissionOrder
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("departure_at ASC")
		}).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, order *MissionOrder) error {
	fields := map[string]interface{}{
		"purpose":           order.Purpose,
		"departure_place":   order.DeparturePlace,
		"destination_place": order.DestinationPlace,
		"departure_at":      order.DepartureAt,
		"return_at":         order.ReturnAt,
		"transport":         order.Transport,
		"advance_amount":    order.AdvanceAmount,
		"advance_reference": order.AdvanceReference,
		"advance_date":      order.AdvanceDate,
		"advance_place":     order.AdvancePlace,
		"lodging_nights":    order.LodgingNights,
		"duration_days":     order.DurationDays,
		"duration_hours":    order.DurationHours,
		"issuing_officer":   order.IssuingOfficer,
		"status":            order.Status,
	}
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE mission_orders
			SET purpose = $1, departure_place = $2, destination_place = $3,
				departure_at = $4, return_at = $5, transport = $6,
				advance_amount = $7, advance_reference = $8, advance_date = $9,
				advance_place = $10, lodging_nights = $11, duration_days = $12,
				duration_hours = $13, issuing_officer = $14, status = $15,
				updated_at = NOW()
			WHERE id = $16 AND deleted_at IS NULL
		`,
			order.Purpose, order.DeparturePlace, order.DestinationPlace,
			order.DepartureAt, order.ReturnAt, order.Transport,
			order.AdvanceAmount, order.AdvanceReference, order.AdvanceDate,
			order.AdvancePlace, order.LodgingNights, order.DurationDays,
			order.DurationHours, order.IssuingOfficer, order.Status,
			order.ID,
		)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&MissionOrder{}).
		Where("id = ?", order.ID).
		Updates(fields).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, `
			UPDATE mission_orders
			SET deleted_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`, id)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}
	res := r.db.WithContext(ctx).Delete(&MissionOrder{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateStage(ctx context.Context, stage *MissionStage) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO mission_stages (
				id, mission_order_id, departure_place, arrival_place,
				departure_at, arrival_at, transport, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		`,
			stage.ID, stage.MissionOrderID, stage.DeparturePlace,
			stage.ArrivalPlace, stage.DepartureAt, stage.ArrivalAt,
			stage.Transport,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *repository) FindStages(ctx context.Context, missionID string) ([]MissionStage, error) {
	var stages []MissionStage
	err := r.db.WithContext(ctx).
		Where("mission_order_id = ?", missionID).
		Order("departure_at ASC").
		Find(&stages).Error
	return stages, err
}
