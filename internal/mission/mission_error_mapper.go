package mission

import (
	"errors"
	"strings"

	missionerrors "go-schooldocs/internal/mission/errors"
	"go-schooldocs/internal/shared/counter"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return missionerrors.ErrMissionNotFound
	}

	if errors.Is(err, counter.ErrSerialization) {
		return missionerrors.ErrReferenceConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_mission_reference" {
			return missionerrors.ErrReferenceConflict
		}
		if pgErr.Code == "23503" {
			return missionerrors.ErrEmployeeNotFound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_mission_reference") {
		return missionerrors.ErrReferenceConflict
	}

	return err
}
