package error

import "errors"

// Invoice domain errors.
var (
	// ErrInvoiceAlreadyExists is returned when an invoice with the same number and installment exists.
	ErrInvoiceAlreadyExists = errors.New("invoice already exists for this installment")

	// ErrInvalidGrossValue is returned when the gross value is zero or negative.
	ErrInvalidGrossValue = errors.New("gross value must be greater than zero")

	// ErrInvalidInstallmentCount is returned when the installment index or count is out of range.
	ErrInvalidInstallmentCount = errors.New("invalid installment count")

	// ErrInvalidInvoiceDate is returned when a date is missing or not in YYYY-MM-DD format.
	ErrInvalidInvoiceDate = errors.New("invalid invoice date")
)

// InvoiceErrorCode defines error codes for invoice errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvoiceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingInvoiceFields    InvoiceErrorCode = "INV-010001"
	ErrCodeInvalidGrossValue       InvoiceErrorCode = "INV-010002"
	ErrCodeInvalidTaxRate          InvoiceErrorCode = "INV-010003"
	ErrCodeInvalidInstallmentCount InvoiceErrorCode = "INV-010004"
	ErrCodeInvalidInvoiceDate      InvoiceErrorCode = "INV-010005"
	ErrCodeInvoiceAlreadyExists    InvoiceErrorCode = "INV-010006"

	// Storage errors (02XXXX)
	ErrCodeInvoiceStorageFailed InvoiceErrorCode = "INV-020001"
)

// InvoiceError represents an invoice error with code and message.
type InvoiceError struct {
	Code    InvoiceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvoiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvoiceError) Unwrap() error {
	return e.Err
}

// NewInvoiceError creates a new InvoiceError with the given code and message.
func NewInvoiceError(code InvoiceErrorCode, message string, err error) *InvoiceError {
	return &InvoiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
