package installment

import (
	"cmp"
	"context"
	"slices"

	"github.com/gestao-consultoria/backend/internal/application/adapter"
	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
)

// ListInstallmentsInput represents the input for listing projected installments.
type ListInstallmentsInput struct {
	Criteria FilterCriteria
}

// ListInstallmentsOutput represents the output of listing projected installments.
type ListInstallmentsOutput struct {
	Installments []*entity.Installment
	Generated    int // before filtering
}

// ListInstallmentsUseCase projects the pending installments of every split invoice.
type ListInstallmentsUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	extraRepo   adapter.InstallmentExtraRepository
	metrics     adapter.MetricsRecorder
}

// NewListInstallmentsUseCase creates a new ListInstallmentsUseCase instance.
func NewListInstallmentsUseCase(
	invoiceRepo adapter.InvoiceRepository,
	extraRepo adapter.InstallmentExtraRepository,
	metrics adapter.MetricsRecorder,
) *ListInstallmentsUseCase {
	return &ListInstallmentsUseCase{
		invoiceRepo: invoiceRepo,
		extraRepo:   extraRepo,
		metrics:     metrics,
	}
}

// Execute loads invoices and overrides, generates every schedule and applies the filter.
func (uc *ListInstallmentsUseCase) Execute(ctx context.Context, input ListInstallmentsInput) (*ListInstallmentsOutput, error) {
	if err := validateCriteria(input.Criteria); err != nil {
		return nil, err
	}

	invoices, err := uc.invoiceRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInstallmentLoadFailed,
			"failed to load invoices",
			err,
		)
	}

	extras, err := uc.extraRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInstallmentLoadFailed,
			"failed to load installment overrides",
			err,
		)
	}

	all := make([]*entity.Installment, 0)
	for _, inv := range latestRecords(invoices) {
		if !inv.HasPendingInstallments() {
			continue
		}

		current := inv.CurrentInstallment()
		all = append(all, GenerateSchedule(ScheduleInput{
			InvoiceNumber:     inv.Number,
			ClientName:        inv.ClientName,
			InstallmentNumber: current,
			TotalInstallments: inv.TotalInstallments,
			DueDate:           inv.DueDate,
			IssueSeed:         ResolveIssueSeed(invoices, inv.Number, current, inv.IssueDate),
			NetValue:          inv.NetValue,
		}, extras)...)
	}

	uc.metrics.RecordInstallmentsGenerated(len(all))

	return &ListInstallmentsOutput{
		Installments: Filter(all, input.Criteria),
		Generated:    len(all),
	}, nil
}

// latestRecords keeps, per invoice number, the record with the highest installment index.
// Installments up to that index were already emitted as real invoices.
// The result is ordered by the kept record's due date, then number.
func latestRecords(invoices []*entity.Invoice) []*entity.Invoice {
	latest := make(map[string]int, len(invoices))
	result := make([]*entity.Invoice, 0, len(invoices))

	for _, inv := range invoices {
		pos, seen := latest[inv.Number]
		if !seen {
			latest[inv.Number] = len(result)
			result = append(result, inv)
			continue
		}
		if inv.CurrentInstallment() > result[pos].CurrentInstallment() {
			result[pos] = inv
		}
	}

	slices.SortStableFunc(result, func(a, b *entity.Invoice) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})

	return result
}

func validateCriteria(c FilterCriteria) error {
	if !c.Emission.IsValid() {
		return domainerror.NewInstallmentError(
			domainerror.ErrCodeInvalidInstallmentFilter,
			"emission must be one of all, emitted or pending",
			domainerror.ErrInvalidEmissionFilter,
		)
	}

	if c.Month < 0 || c.Month > 12 || c.Year < 0 {
		return domainerror.NewInstallmentError(
			domainerror.ErrCodeInvalidInstallmentFilter,
			"month must be between 1 and 12 and year must be positive",
			domainerror.ErrInvalidPeriodFilter,
		)
	}

	return nil
}
