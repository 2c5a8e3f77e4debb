package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenNotFound    = errors.New("token not found")
	ErrInvalidFormat    = errors.New("invalid token format")
	ErrMissingUsername  = errors.New("token does not carry preferred_username")
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Persistence errors surfaced to the program details view
	ErrPersistenceFailed = errors.New("persistence failed")
)

// Program errors
var (
	ErrProgramNotFound           = errors.New("program not found")
	ErrProgramAlreadyExists      = errors.New("program with this name or marketing slug already exists")
	ErrProgramOrganizationExists = errors.New("cannot associate multiple organizations with a program")
)

// Organization errors
var (
	ErrOrganizationNotFound      = errors.New("organization not found")
	ErrOrganizationAlreadyExists = errors.New("organization with this key or display name already exists")
)

// Course code errors
var (
	ErrCourseCodeNotFound        = errors.New("course code not found")
	ErrCourseCodeAlreadyExists   = errors.New("course code with this key already exists for the organization")
	ErrCourseCodeInOtherProgram  = errors.New("cannot associate multiple programs with a course code")
	ErrCourseCodeOrgMismatch     = errors.New("course code must be offered by the same organization offering the program")
	ErrProgramCourseCodeNotFound = errors.New("program course code not found")
)

// Run mode errors
var (
	ErrRunModeNotFound  = errors.New("run mode not found")
	ErrRunModeDuplicate = errors.New("duplicate course run modes are not allowed for course codes in a program")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a validation CustomError carrying the offending field.
func NewValidationError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// Field returns the field named in Details, if any.
func (e *CustomError) Field() string {
	if e.Details == nil {
		return ""
	}
	f, _ := e.Details["field"].(string)
	return f
}
