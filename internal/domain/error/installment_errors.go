package error

import "errors"

// Installment domain errors.
var (
	// ErrInvalidInstallmentKey is returned when a key is not "<invoiceNumber>-<index>" with index >= 2.
	ErrInvalidInstallmentKey = errors.New("invalid installment key")

	// ErrInvalidInstallmentStatus is returned when the status is not a known value.
	ErrInvalidInstallmentStatus = errors.New("invalid installment status")

	// ErrNegativeInstallmentValue is returned when an edited value is below zero.
	ErrNegativeInstallmentValue = errors.New("installment value cannot be negative")

	// ErrInvalidEmissionFilter is returned for an emission filter other than all, emitted or pending.
	ErrInvalidEmissionFilter = errors.New("invalid emission filter")

	// ErrInvalidPeriodFilter is returned when month or year are out of range.
	ErrInvalidPeriodFilter = errors.New("invalid period filter")
)

// InstallmentErrorCode defines error codes for installment errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InstallmentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidInstallmentKey    InstallmentErrorCode = "INS-010001"
	ErrCodeInvalidInstallmentStatus InstallmentErrorCode = "INS-010002"
	ErrCodeNegativeInstallmentValue InstallmentErrorCode = "INS-010003"
	ErrCodeInvalidInstallmentFilter InstallmentErrorCode = "INS-010004"
	ErrCodeInvalidInstallmentDate   InstallmentErrorCode = "INS-010005"
	ErrCodeInvalidInstallmentBody   InstallmentErrorCode = "INS-010006"

	// Storage errors (02XXXX)
	ErrCodeInstallmentLoadFailed InstallmentErrorCode = "INS-020001"
	ErrCodeInstallmentSaveFailed InstallmentErrorCode = "INS-020002"
)

// InstallmentError represents an installment error with code and message.
type InstallmentError struct {
	Code    InstallmentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InstallmentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InstallmentError) Unwrap() error {
	return e.Err
}

// NewInstallmentError creates a new InstallmentError with the given code and message.
func NewInstallmentError(code InstallmentErrorCode, message string, err error) *InstallmentError {
	return &InstallmentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
