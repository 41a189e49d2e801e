// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-consultoria/backend/internal/application/adapter"
	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
	"github.com/gestao-consultoria/backend/internal/domain/valueobject"
)

// CreateInvoiceInput represents the input for registering an invoice.
type CreateInvoiceInput struct {
	Number            string
	ClientName        string
	IssueDate         time.Time
	DueDate           time.Time
	GrossValue        decimal.Decimal
	Taxes             valueobject.TaxRates
	InstallmentNumber *int
	TotalInstallments int // 0 means a single installment
}

// InvoiceOutput represents an invoice together with its withholding breakdown.
type InvoiceOutput struct {
	Invoice *entity.Invoice
	Taxes   valueobject.TaxBreakdown
}

// CreateInvoiceUseCase handles invoice registration logic.
type CreateInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewCreateInvoiceUseCase creates a new CreateInvoiceUseCase instance.
func NewCreateInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute validates and stores a new invoice.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, input CreateInvoiceInput) (*InvoiceOutput, error) {
	input.Number = strings.TrimSpace(input.Number)
	input.ClientName = strings.TrimSpace(input.ClientName)
	if input.TotalInstallments == 0 {
		input.TotalInstallments = 1
	}

	if err := validateInvoice(input); err != nil {
		return nil, err
	}

	index := 1
	if input.InstallmentNumber != nil {
		index = *input.InstallmentNumber
	}

	exists, err := uc.invoiceRepo.ExistsByNumberAndInstallment(ctx, input.Number, index)
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceStorageFailed,
			"failed to check existing invoice",
			err,
		)
	}
	if exists {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceAlreadyExists,
			"invoice already registered for this installment",
			domainerror.ErrInvoiceAlreadyExists,
		)
	}

	invoice := entity.NewInvoice(
		input.Number,
		input.ClientName,
		input.IssueDate,
		input.DueDate,
		input.GrossValue,
		input.Taxes,
		input.InstallmentNumber,
		input.TotalInstallments,
	)

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		if errors.Is(err, domainerror.ErrInvoiceAlreadyExists) {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeInvoiceAlreadyExists,
				"invoice already registered for this installment",
				err,
			)
		}
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceStorageFailed,
			"failed to create invoice",
			err,
		)
	}

	return &InvoiceOutput{
		Invoice: invoice,
		Taxes:   invoice.TaxBreakdown(),
	}, nil
}

func validateInvoice(input CreateInvoiceInput) error {
	if input.Number == "" || input.ClientName == "" {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeMissingInvoiceFields,
			"number and client name are required",
			nil,
		)
	}

	if input.IssueDate.IsZero() || input.DueDate.IsZero() {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoiceDate,
			"issue date and due date are required",
			domainerror.ErrInvalidInvoiceDate,
		)
	}

	if !input.GrossValue.IsPositive() {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidGrossValue,
			"gross value must be greater than zero",
			domainerror.ErrInvalidGrossValue,
		)
	}

	if err := input.Taxes.Validate(); err != nil {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidTaxRate,
			"tax rates must be between 0 and 100",
			err,
		)
	}

	if input.TotalInstallments < 1 {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInstallmentCount,
			"installment count must be at least 1",
			domainerror.ErrInvalidInstallmentCount,
		)
	}

	if n := input.InstallmentNumber; n != nil && (*n < 1 || *n > input.TotalInstallments) {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInstallmentCount,
			"installment number must be between 1 and the installment count",
			domainerror.ErrInvalidInstallmentCount,
		)
	}

	return nil
}
