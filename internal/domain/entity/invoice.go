package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestao-consultoria/backend/internal/domain/valueobject"
)

// Invoice represents a service invoice (nota fiscal) issued to a client.
// A split invoice is stored once per emitted installment, all sharing the same Number.
type Invoice struct {
	ID                uuid.UUID
	Number            string
	ClientName        string
	IssueDate         time.Time
	DueDate           time.Time
	GrossValue        decimal.Decimal
	Taxes             valueobject.TaxRates
	NetValue          decimal.Decimal
	InstallmentNumber *int // nil when the invoice is not split or is the first installment
	TotalInstallments int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewInvoice creates a new Invoice, computing its net value from the withholding rates.
func NewInvoice(
	number string,
	clientName string,
	issueDate time.Time,
	dueDate time.Time,
	grossValue decimal.Decimal,
	taxes valueobject.TaxRates,
	installmentNumber *int,
	totalInstallments int,
) *Invoice {
	now := time.Now().UTC()

	if totalInstallments < 1 {
		totalInstallments = 1
	}

	return &Invoice{
		ID:                uuid.New(),
		Number:            number,
		ClientName:        clientName,
		IssueDate:         issueDate,
		DueDate:           dueDate,
		GrossValue:        grossValue,
		Taxes:             taxes,
		NetValue:          valueobject.CalculateTaxes(grossValue, taxes).Net,
		InstallmentNumber: installmentNumber,
		TotalInstallments: totalInstallments,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// CurrentInstallment returns the 1-based installment index this record represents.
func (i *Invoice) CurrentInstallment() int {
	if i.InstallmentNumber == nil || *i.InstallmentNumber < 1 {
		return 1
	}
	return *i.InstallmentNumber
}

// TaxBreakdown returns the withholding applied to the gross value.
func (i *Invoice) TaxBreakdown() valueobject.TaxBreakdown {
	return valueobject.CalculateTaxes(i.GrossValue, i.Taxes)
}

// HasPendingInstallments reports whether installments after this record remain to be projected.
func (i *Invoice) HasPendingInstallments() bool {
	return i.TotalInstallments > 1 && i.CurrentInstallment() < i.TotalInstallments
}
