package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountUsers(ctx context.Context) (total, active int64, err error)
	CountUsersByRole(ctx context.Context) (map[string]int64, error)
	RecentUsers(ctx context.Context, since time.Time, limit int) ([]RecentUser, error)

	CountEmployees(ctx context.Context) (total, active int64, err error)
	CountEmployeesByCategory(ctx context.Context) (map[string]int64, error)

	CountAttestations(ctx context.Context) (int64, error)
	RecentAttestations(ctx context.Context, since time.Time, limit int) ([]RecentDocument, error)

	CountMissions(ctx context.Context) (int64, error)
	RecentMissions(ctx context.Context, since time.Time, limit int) ([]RecentDocument, error)

	ActivityByDate(ctx context.Context, since time.Time) (map[string]int64, error)
	ActivityByType(ctx context.Context, since time.Time) (map[string]int64, error)
	RecentActivities(ctx context.Context, since time.Time, limit int) ([]RecentActivity, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type groupCount struct {
	Key   string
	Count int64
}

func (r *repository) CountUsers(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.WithContext(ctx).
		Table("users").
		Where("deleted_at IS NULL").
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Table("users").
		Where("deleted_at IS NULL").
		Where("is_active = ?", true).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (r *repository) CountUsersByRole(ctx context.Context) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Table("users").
		Select("role AS key, COUNT(id) AS count").
		Where("deleted_at IS NULL").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func (r *repository) RecentUsers(ctx context.Context, since time.Time, limit int) ([]RecentUser, error) {
	type row struct {
		ID        string
		Email     string
		FirstName string
		LastName  string
		Role      string
		CreatedAt time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, email, first_name, last_name, role, created_at").
		Where("deleted_at IS NULL").
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make([]RecentUser, len(rows))
	for i, u := range rows {
		res[i] = RecentUser{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		}
	}
	return res, nil
}

func (r *repository) CountEmployees(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.WithContext(ctx).
		Table("employees").
		Where("deleted_at IS NULL").
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Table("employees").
		Where("deleted_at IS NULL").
		Where("employment_status = ?", "ACTIF").
		Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (r *repository) CountEmployeesByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("category AS key, COUNT(id) AS count").
		Where("deleted_at IS NULL").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func (r *repository) CountAttestations(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("attestations").
		Where("deleted_at IS NULL").
		Count(&total).Error
	return total, err
}

func (r *repository) RecentAttestations(ctx context.Context, since time.Time, limit int) ([]RecentDocument, error) {
	type row struct {
		ID        string
		Reference string
		FirstName string
		LastName  string
		IssueDate time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("attestations a").
		Select("a.id, a.reference, e.first_name, e.last_name, a.issue_date").
		Joins("JOIN employees e ON e.id = a.employee_id").
		Where("a.deleted_at IS NULL").
		Where("a.issue_date >= ?", since).
		Order("a.issue_date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make([]RecentDocument, len(rows))
	for i, d := range rows {
		res[i] = RecentDocument{
			ID:           d.ID,
			Reference:    d.Reference,
			EmployeeName: d.FirstName + " " + d.LastName,
			IssuedAt:     d.IssueDate.Format("2006-01-02"),
		}
	}
	return res, nil
}

func (r *repository) CountMissions(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("mission_orders").
		Where("deleted_at IS NULL").
		Count(&total).Error
	return total, err
}

func (r *repository) RecentMissions(ctx context.Context, since time.Time, limit int) ([]RecentDocument, error) {
	type row struct {
		ID               string
		Reference        string
		FirstName        string
		LastName         string
		DestinationPlace string
		CreatedAt        time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("mission_orders m").
		Select("m.id, m.reference, e.first_name, e.last_name, m.destination_place, m.created_at").
		Joins("JOIN employees e ON e.id = m.employee_id").
		Where("m.deleted_at IS NULL").
		Where("m.created_at >= ?", since).
		Order("m.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make([]RecentDocument, len(rows))
	for i, d := range rows {
		res[i] = RecentDocument{
			ID:           d.ID,
			Reference:    d.Reference,
			EmployeeName: d.FirstName + " " + d.LastName,
			Destination:  d.DestinationPlace,
			IssuedAt:     d.CreatedAt.Format("2006-01-02"),
		}
	}
	return res, nil
}

func (r *repository) ActivityByDate(ctx context.Context, since time.Time) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Table("activity_logs").
		Select("TO_CHAR(created_at::date, 'YYYY-MM-DD') AS key, COUNT(id) AS count").
		Where("created_at >= ?", since).
		Group("created_at::date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func (r *repository) ActivityByType(ctx context.Context, since time.Time) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Table("activity_logs").
		Select("action_type AS key, COUNT(id) AS count").
		Where("created_at >= ?", since).
		Group("action_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func (r *repository) RecentActivities(ctx context.Context, since time.Time, limit int) ([]RecentActivity, error) {
	type row struct {
		ID          string
		UserEmail   string
		ActionType  string
		EntityType  string
		Description string
		CreatedAt   time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("activity_logs").
		Select("id, user_email, action_type, entity_type, description, created_at").
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make([]RecentActivity, len(rows))
	for i, a := range rows {
		res[i] = RecentActivity{
			ID:          a.ID,
			UserEmail:   a.UserEmail,
			ActionType:  a.ActionType,
			EntityType:  a.EntityType,
			Description: a.Description,
			Timestamp:   a.CreatedAt.Format(time.RFC3339),
		}
	}
	return res, nil
}

func toCountMap(rows []groupCount) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, row := range rows {
		m[row.Key] = row.Count
	}
	return m
}
