package invoice

import (
	"context"

	"github.com/gestao-consultoria/backend/internal/application/adapter"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
)

// ListInvoicesOutput represents the output of listing invoices.
type ListInvoicesOutput struct {
	Invoices []*InvoiceOutput
}

// ListInvoicesUseCase handles listing invoices logic.
type ListInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(invoiceRepo adapter.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute returns every invoice ordered by due date, then number.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context) (*ListInvoicesOutput, error) {
	invoices, err := uc.invoiceRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceStorageFailed,
			"failed to list invoices",
			err,
		)
	}

	output := make([]*InvoiceOutput, 0, len(invoices))
	for _, inv := range invoices {
		output = append(output, &InvoiceOutput{
			Invoice: inv,
			Taxes:   inv.TaxBreakdown(),
		})
	}

	return &ListInvoicesOutput{Invoices: output}, nil
}
