package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrPermissionDenied = errors.New("permission denied")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Catalog errors
var (
	ErrProgramNotFound   = errors.New("program not found")
	ErrCohortNotFound    = errors.New("cohort not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrProfessorNotFound = errors.New("professor not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrExamKindNotFound  = errors.New("exam kind not found")
)

// Calendar errors
var (
	ErrExamNotFound       = errors.New("exam not found")
	ErrSubmissionNotFound = errors.New("calendar submission not found")
	ErrNoDraftExams       = errors.New("program has no draft exams to submit")
	ErrUserNotFound       = errors.New("user not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithCode adds a machine-checkable error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
