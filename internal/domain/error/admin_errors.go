// Package error defines domain-specific errors for the consultancy back-office application.
package error

import "errors"

// Admin and identity domain errors.
var (
	// ErrInvalidToken is returned when the identity service rejects a bearer token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrProfileNotFound is returned when no profile row exists for an identity user.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrIdentityUserNotFound is returned when the identity service has no user with the given id.
	ErrIdentityUserNotFound = errors.New("identity user not found")

	// ErrInsufficientRole is returned when the caller's role does not grant the requested access.
	ErrInsufficientRole = errors.New("insufficient role")
)

// AdminErrorCode defines error codes for admin operations.
// Format: ADM-XXYYYY where XX is category and YYYY is specific error.
type AdminErrorCode string

const (
	// Authentication errors (01XXXX)
	ErrCodeAdminUnauthorized AdminErrorCode = "ADM-010001"
	ErrCodeAdminInvalidToken AdminErrorCode = "ADM-010002"

	// Authorization errors (02XXXX)
	ErrCodeAdminForbidden AdminErrorCode = "ADM-020001"

	// Request errors (03XXXX)
	ErrCodeAdminMissingUserID AdminErrorCode = "ADM-030001"

	// Identity provider errors (04XXXX)
	ErrCodeAdminTargetNotFound AdminErrorCode = "ADM-040001"
	ErrCodeAdminDeleteFailed   AdminErrorCode = "ADM-040002"

	// Throttling errors (05XXXX)
	ErrCodeAdminRateLimited AdminErrorCode = "ADM-050001"
)

// AdminError represents an admin operation error with code and message.
// Message is safe to return to the caller.
type AdminError struct {
	Code    AdminErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AdminError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AdminError) Unwrap() error {
	return e.Err
}

// NewAdminError creates a new AdminError with the given code and message.
func NewAdminError(code AdminErrorCode, message string, err error) *AdminError {
	return &AdminError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IdentityError is a failure reported by the identity provider.
type IdentityError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *IdentityError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *IdentityError) Unwrap() error {
	return e.Err
}

// NewIdentityError creates a new IdentityError for the given HTTP status and downstream message.
func NewIdentityError(statusCode int, message string, err error) *IdentityError {
	return &IdentityError{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}
