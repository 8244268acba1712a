package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidPassword  = errors.New("invalid password")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrSelfRoleChange     = errors.New("cannot change your own role")
)

// Subject errors
var (
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrSubjectAlreadyExists = errors.New("subject ID already exists")
	ErrInvalidSubjectCode   = errors.New("subject ID must be exactly 3 uppercase letters")
)

// Course errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course ID already exists")
	ErrInvalidYearLevel    = errors.New("year level outside school range")
)

// Potential student errors
var (
	ErrStudentNotFound         = errors.New("student not found or not allowed")
	ErrStudentEmailExists      = errors.New("a student or user with this email already exists")
	ErrInvalidStudentSelection = errors.New("invalid student selection")
)

// Enrolment errors
var (
	ErrEnrolmentNotFound = errors.New("enrolment not found")
	ErrAlreadyEnrolled   = errors.New("already enrolled")
)

// AlreadyEnrolledError reports a duplicate enrolment attempt, naming the
// students that are already enrolled so the caller can show who was rejected.
type AlreadyEnrolledError struct {
	StudentNames []string
}

// Error implements the error interface with a pluralized message.
func (e *AlreadyEnrolledError) Error() string {
	if len(e.StudentNames) == 1 {
		return e.StudentNames[0] + " is already enrolled."
	}
	msg := ""
	for i, name := range e.StudentNames {
		if i > 0 {
			msg += ", "
		}
		msg += name
	}
	return msg + " are already enrolled."
}

// Unwrap lets errors.Is match ErrAlreadyEnrolled.
func (e *AlreadyEnrolledError) Unwrap() error {
	return ErrAlreadyEnrolled
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
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
