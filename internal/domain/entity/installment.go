package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the payment status of an installment.
type InstallmentStatus string

const (
	InstallmentStatusPendente  InstallmentStatus = "pendente"
	InstallmentStatusPago      InstallmentStatus = "pago"
	InstallmentStatusAtrasado  InstallmentStatus = "atrasado"
	InstallmentStatusCancelado InstallmentStatus = "cancelado"
)

// IsValid reports whether the status is one of the known values.
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentStatusPendente, InstallmentStatusPago, InstallmentStatusAtrasado, InstallmentStatusCancelado:
		return true
	default:
		return false
	}
}

// Installment is a projected future installment of a split invoice.
type Installment struct {
	Key               string
	Index             int
	TotalInstallments int
	InvoiceNumber     string
	ClientName        string
	IssueDate         time.Time
	DueDate           time.Time
	Value             decimal.Decimal
	Emitted           bool
	PaymentDate       *time.Time
	Status            InstallmentStatus
}

// InstallmentExtra holds the user annotations layered over a projected installment.
type InstallmentExtra struct {
	Key         string
	Emitted     bool
	PaymentDate *time.Time
	Status      InstallmentStatus
	EditedValue *decimal.Decimal
	UpdatedAt   time.Time
}

// InstallmentKey builds the override key "<invoiceNumber>-<index>".
func InstallmentKey(invoiceNumber string, index int) string {
	return fmt.Sprintf("%s-%d", invoiceNumber, index)
}

// ParseInstallmentKey splits a key into invoice number and index.
// The index is taken after the last dash, so invoice numbers may themselves contain dashes.
func ParseInstallmentKey(key string) (string, int, error) {
	sep := strings.LastIndex(key, "-")
	if sep <= 0 || sep == len(key)-1 {
		return "", 0, fmt.Errorf("malformed installment key %q", key)
	}

	index, err := strconv.Atoi(key[sep+1:])
	if err != nil {
		return "", 0, fmt.Errorf("malformed installment index in key %q: %w", key, err)
	}

	return key[:sep], index, nil
}
