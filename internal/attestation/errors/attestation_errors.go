package attestationerrors

import (
	"net/http"

	"go-schooldocs/internal/shared/apperror"
)

var (
	ErrAttestationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attestation not found",
		http.StatusNotFound,
	)
	ErrReferenceConflict = apperror.New(
		apperror.CodeConflict,
		"Could not issue a unique reference number, please retry",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Employee not found for this attestation",
		http.StatusBadRequest,
	)
)
