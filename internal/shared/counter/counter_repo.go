package counter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// maxRetries bounds how often a serialization failure is retried before
// the caller sees a conflict.
const maxRetries = 3

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, docType string, year int) (int64, error)
}

// ErrSerialization is returned when the atomic increment could not be
// serialized within maxRetries attempts.
var ErrSerialization = errors.New("counter increment could not be serialized")

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue atomically increments the per-type-per-year counter. The
// upsert makes the read-modify-write a single statement, so two concurrent
// requests can never observe the same value.
func (r *repository) GetNextValue(ctx context.Context, docType string, year int) (int64, error) {
	var nextValue int64
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := r.db.WithContext(ctx).Raw(`
			INSERT INTO document_counters (doc_type, year, last_value, updated_at)
			VALUES (?, ?, 1, now())
			ON CONFLICT (doc_type, year) DO UPDATE
			SET last_value = document_counters.last_value + 1, updated_at = now()
			RETURNING last_value
		`, docType, year).Scan(&nextValue).Error

		if err == nil {
			return nextValue, nil
		}

		if !isRetryable(err) {
			return 0, err
		}

		lastErr = err
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}

	return 0, errors.Join(ErrSerialization, lastErr)
}

// isRetryable reports whether err is a serialization failure (40001) or a
// deadlock (40P01), the only two states worth another attempt.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
