package missionerrors

import (
	"net/http"

	"go-schooldocs/internal/shared/apperror"
)

var (
	ErrMissionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Mission order not found",
		http.StatusNotFound,
	)
	ErrReferenceConflict = apperror.New(
		apperror.CodeConflict,
		"Could not issue a unique reference number, please retry",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Employee not found for this mission order",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected RFC 3339",
		http.StatusBadRequest,
	)
	ErrInvalidTravelWindow = apperror.New(
		apperror.CodeInvalidInput,
		"Return must be after departure",
		http.StatusBadRequest,
	)
)
