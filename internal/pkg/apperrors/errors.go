package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Uniqueness errors
	ErrDuplicateUser   = errors.New("user with this ID number or email already exists")
	ErrDuplicateCourse = errors.New("course with this code already exists")

	// Resource errors
	ErrNotFound = errors.New("resource not found")

	// Authentication and authorization errors
	ErrUnauthenticated    = errors.New("no token provided")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Password errors
	ErrWrongPassword = errors.New("old password is incorrect")
	ErrSamePassword  = errors.New("new password cannot be the same as the old one")

	// External collaborator errors
	ErrDependencyFailed = errors.New("external dependency failed")

	// Unexpected store failures
	ErrInternal = errors.New("internal error")
)

// CustomError carries a caller-facing message on top of a sentinel error.
type CustomError struct {
	Err     error
	Message string
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

// NewValidationError creates a validation error with a message listing
// what is missing or malformed.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewNotFoundError creates a not-found error with a message naming the
// absent entity.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewDependencyError wraps an object-store or mail delegate failure.
func NewDependencyError(message string) error {
	return &CustomError{Err: ErrDependencyFailed, Message: message}
}

// Message returns the caller-facing message for err, falling back to the
// plain error text.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
