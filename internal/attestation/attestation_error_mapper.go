package attestation

import (
	"errors"
	"strings"

	attestationerrors "go-schooldocs/internal/attestation/errors"
	"go-schooldocs/internal/shared/counter"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attestationerrors.ErrAttestationNotFound
	}

	if errors.Is(err, counter.ErrSerialization) {
		return attestationerrors.ErrReferenceConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attestation_reference" {
			return attestationerrors.ErrReferenceConflict
		}
		if pgErr.Code == "23503" {
			return attestationerrors.ErrEmployeeNotFound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attestation_reference") {
		return attestationerrors.ErrReferenceConflict
	}

	return err
}
