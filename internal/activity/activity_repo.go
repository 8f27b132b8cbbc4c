package activity

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows the log listing; zero values mean "no filter".
type ListFilter struct {
	UserID     string
	ActionType string
	EntityType string
	StartDate  time.Time
	EndDate    time.Time
}

//go:generate mockgen -source=activity_repo.go -destination=mock/activity_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *ActivityLog) error
	FindAll(ctx context.Context, filter ListFilter) ([]ActivityLog, error)
	FindSince(ctx context.Context, since time.Time) ([]ActivityLog, error)
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

// Create appends one entry. When a transaction is attached the insert
// rides on it, so a rolled-back document never leaves a log row behind.
func (r *repository) Create(ctx context.Context, entry *ActivityLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO activity_logs (
				id, user_id, user_email, action_type, entity_type,
				entity_id, description, ip_address, user_agent, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			entry.ID, entry.UserID, entry.UserEmail, entry.ActionType, entry.EntityType,
			entry.EntityID, entry.Description, entry.IPAddress, entry.UserAgent, entry.CreatedAt,
		)
		return err
	}

	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]ActivityLog, error) {
	q := r.db.WithContext(ctx).Model(&ActivityLog{})

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.ActionType != "" {
		q = q.Where("action_type = ?", filter.ActionType)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if !filter.StartDate.IsZero() {
		q = q.Where("created_at >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		q = q.Where("created_at <= ?", filter.EndDate)
	}

	var entries []ActivityLog
	err := q.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *repository) FindSince(ctx context.Context, since time.Time) ([]ActivityLog, error) {
	var entries []ActivityLog
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
