package counter_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go-schooldocs/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupCounterRepoTest(t *testing.T) (counter.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return counter.NewRepository(gormDB), mock
}

func TestCounterRepository_GetNextValue(t *testing.T) {
	repo, mock := setupCounterRepoTest(t)

	mock.ExpectQuery("INSERT INTO document_counters").
		WithArgs(counter.DocTypeAttestation, 2026).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(17)))

	value, err := repo.GetNextValue(context.Background(), counter.DocTypeAttestation, 2026)

	require.NoError(t, err)
	assert.Equal(t, int64(17), value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepository_GetNextValue_RetriesSerializationFailure(t *testing.T) {
	repo, mock := setupCounterRepoTest(t)

	mock.ExpectQuery("INSERT INTO document_counters").
		WillReturnError(&pgconn.PgError{Code: "40001"})
	mock.ExpectQuery("INSERT INTO document_counters").
		WithArgs(counter.DocTypeMission, 2026).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(4)))

	value, err := repo.GetNextValue(context.Background(), counter.DocTypeMission, 2026)

	require.NoError(t, err)
	assert.Equal(t, int64(4), value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepository_GetNextValue_SerializationExhaustsRetries(t *testing.T) {
	repo, mock := setupCounterRepoTest(t)

	for i := 0; i < 3; i++ {
		mock.ExpectQuery("INSERT INTO document_counters").
			WillReturnError(&pgconn.PgError{Code: "40001"})
	}

	_, err := repo.GetNextValue(context.Background(), counter.DocTypeAttestation, 2026)

	assert.ErrorIs(t, err, counter.ErrSerialization)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepository_GetNextValue_DeadlockExhaustsRetries(t *testing.T) {
	repo, mock := setupCounterRepoTest(t)

	for i := 0; i < 3; i++ {
		mock.ExpectQuery("INSERT INTO document_counters").
			WillReturnError(&pgconn.PgError{Code: "40P01"})
	}

	_, err := repo.GetNextValue(context.Background(), counter.DocTypeAttestation, 2026)

	assert.ErrorIs(t, err, counter.ErrSerialization)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "40P01", pgErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepository_GetNextValue_NonRetryableFailsImmediately(t *testing.T) {
	repo, mock := setupCounterRepoTest(t)

	mock.ExpectQuery("INSERT INTO document_counters").
		WillReturnError(&pgconn.PgError{Code: "42P01"})

	_, err := repo.GetNextValue(context.Background(), counter.DocTypeAttestation, 2026)

	require.Error(t, err)
	assert.False(t, errors.Is(err, counter.ErrSerialization))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepository_GetNextValue_DriverErrorNotRetried(t *testing.T) {
	repo, mock := setupCounterRepoTest(t)

	mock.ExpectQuery("INSERT INTO document_counters").
		WillReturnError(sql.ErrConnDone)

	_, err := repo.GetNextValue(context.Background(), counter.DocTypeAttestation, 2026)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// serialRepository hands out strictly increasing values per type/year
// under a mutex, like the database upsert does.
type serialRepository struct {
	mu     sync.Mutex
	values map[string]int64
}

func (r *serialRepository) GetNextValue(ctx context.Context, docType string, year int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values == nil {
		r.values = make(map[string]int64)
	}
	key := fmt.Sprintf("%s/%d", docType, year)
	r.values[key]++
	return r.values[key], nil
}

func TestGenerator_Next_ConcurrentReferencesDistinct(t *testing.T) {
	gen := counter.NewGenerator(&serialRepository{})

	const n = 64
	refs := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := gen.Next(context.Background(), counter.DocTypeAttestation, 2026)
			assert.NoError(t, err)
			refs <- ref
		}()
	}
	wg.Wait()
	close(refs)

	seen := make(map[string]bool, n)
	for ref := range refs {
		assert.False(t, seen[ref], "reference %s issued twice", ref)
		seen[ref] = true
	}
	assert.Len(t, seen, n)
}
