package employee

import (
	"errors"
	"strings"

	employeeerrors "go-schooldocs/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503: documents still reference this employee
		if pgErr.Code == "23503" {
			return employeeerrors.ErrEmployeeHasDocuments
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return employeeerrors.ErrEmployeeHasDocuments
	}

	return err
}
