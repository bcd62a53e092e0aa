package employeeerrors

import (
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidSalaryRange = apperror.New(
		apperror.CodeInvalidRange,
		"Minimum salary cannot be greater than maximum salary",
		http.StatusBadRequest,
	)
	ErrInvalidHireDateRange = apperror.New(
		apperror.CodeInvalidRange,
		"Start date cannot be after end date",
		http.StatusBadRequest,
	)
	ErrUnsupportedSortField = apperror.New(
		apperror.CodeInvalidQuery,
		"Unsupported sort field",
		http.StatusBadRequest,
	)
	ErrInvalidDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown department",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown employee status",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrValidationFailed = apperror.New(
		apperror.CodeInvalidInput,
		"Employee data failed validation",
		http.StatusBadRequest,
	)
)
