package attestation

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attestation_repo.go -destination=mock/attestation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, att *Attestation) error
	FindAll(ctx context.Context) ([]Attestation, error)
	FindByID(ctx context.Context, id string) (*Attestation, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Attestation, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	Update(ctx context.Context, att *Attestation) error
	Delete(ctx context.Context, id string) error
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

// Create inserts through the attached transaction when present so the
// attestation, its activity entry and its outbox event commit together.
func (r *repository) Create(ctx context.Context, att *Attestation) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO attestations (
				id, reference, employee_id, issue_date, issuer, status,
				created_by_id, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		`,
			att.ID, att.Reference, att.EmployeeID, att.IssueDate,
			att.Issuer, att.Status, att.CreatedByID,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(att).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Attestation, error) {
	var atts []Attestation
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("issue_date DESC").
		Find(&atts).Error
	return atts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attestation, error) {
	var att Attestation
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&att, "id = ?", id).Error
	return &att, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Attestation, error) {
	var atts []Attestation
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("issue_date DESC").
		Find(&atts).Error
	return atts, err
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

func (r *repository) Update(ctx context.Context, att *Attestation) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE attestations
			SET issuer = $1, status = $2, updated_at = NOW()
			WHERE id = $3 AND deleted_at IS NULL
		`, att.Issuer, att.Status, att.ID)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&Attestation{}).
		Where("id = ?", att.ID).
		Updates(map[string]interface{}{
			"issuer": att.Issuer,
			"status": att.Status,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, `
			UPDATE attestations
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
	res := r.db.WithContext(ctx).Delete(&Attestation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
