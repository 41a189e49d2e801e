package installment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
)

type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
	err      error
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	f.invoices = append(f.invoices, inv)
	return nil
}

func (f *fakeInvoiceRepo) FindAll(context.Context) ([]*entity.Invoice, error) {
	return f.invoices, f.err
}

func (f *fakeInvoiceRepo) ExistsByNumberAndInstallment(context.Context, string, int) (bool, error) {
	return false, nil
}

type fakeExtraRepo struct {
	extras  map[string]*entity.InstallmentExtra
	findErr error
	saveErr error
}

func newFakeExtraRepo() *fakeExtraRepo {
	return &fakeExtraRepo{extras: map[string]*entity.InstallmentExtra{}}
}

func (f *fakeExtraRepo) FindAll(context.Context) (map[string]*entity.InstallmentExtra, error) {
	return f.extras, f.findErr
}

func (f *fakeExtraRepo) FindByKey(_ context.Context, key string) (*entity.InstallmentExtra, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	extra, ok := f.extras[key]
	if !ok {
		return nil, nil
	}
	clone := *extra
	return &clone, nil
}

func (f *fakeExtraRepo) Upsert(_ context.Context, extra *entity.InstallmentExtra) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	clone := *extra
	f.extras[extra.Key] = &clone
	return nil
}

type fakeMetrics struct {
	generated int
}

func (f *fakeMetrics) RecordUserDeletion(string) {}

func (f *fakeMetrics) RecordInstallmentsGenerated(count int) {
	f.generated += count
}

func TestListInstallmentsUseCase_Execute(t *testing.T) {
	invoices := &fakeInvoiceRepo{invoices: []*entity.Invoice{
		{
			Number: "1234", ClientName: "Acme", TotalInstallments: 3,
			IssueDate: day(2024, time.January, 15), DueDate: day(2024, time.February, 15),
			NetValue: decimal.NewFromInt(8885),
		},
		{
			Number: "500", ClientName: "Beta", TotalInstallments: 1,
			IssueDate: day(2024, time.January, 20), DueDate: day(2024, time.February, 20),
			NetValue: decimal.NewFromInt(1000),
		},
		{
			Number: "600", ClientName: "Gama", TotalInstallments: 4,
			IssueDate: day(2024, time.January, 5), DueDate: day(2024, time.February, 5),
			NetValue: decimal.NewFromInt(2000),
		},
		{
			Number: "600", ClientName: "Gama", TotalInstallments: 4, InstallmentNumber: intPtr(3),
			IssueDate: day(2024, time.March, 5), DueDate: day(2024, time.April, 5),
			NetValue: decimal.NewFromInt(2000),
		},
	}}
	extras := newFakeExtraRepo()
	extras.extras["1234-3"] = &entity.InstallmentExtra{Key: "1234-3", Emitted: true, Status: entity.InstallmentStatusPago}
	metrics := &fakeMetrics{}

	uc := NewListInstallmentsUseCase(invoices, extras, metrics)

	t.Run("projects every split invoice from its latest record", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListInstallmentsInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := keys(output.Installments)
		expected := []string{"1234-2", "1234-3", "600-4"}
		if len(got) != len(expected) {
			t.Fatalf("expected %v, got %v", expected, got)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("expected %v, got %v", expected, got)
			}
		}

		last := output.Installments[2]
		if !last.IssueDate.Equal(day(2024, time.April, 5)) {
			t.Errorf("expected issue chained from installment 3, got %s", last.IssueDate.Format(time.DateOnly))
		}
		if !last.DueDate.Equal(day(2024, time.May, 5)) {
			t.Errorf("expected due 2024-05-05, got %s", last.DueDate.Format(time.DateOnly))
		}
		if output.Generated != 3 {
			t.Errorf("expected 3 generated, got %d", output.Generated)
		}
	})

	t.Run("applies the filter after generation", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListInstallmentsInput{
			Criteria: FilterCriteria{Emission: EmissionEmitted},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Installments) != 1 || output.Installments[0].Key != "1234-3" {
			t.Errorf("expected only 1234-3, got %v", keys(output.Installments))
		}
		if output.Generated != 3 {
			t.Errorf("expected 3 generated, got %d", output.Generated)
		}
	})

	t.Run("records generated installments", func(t *testing.T) {
		if metrics.generated != 6 {
			t.Errorf("expected 6 recorded installments, got %d", metrics.generated)
		}
	})
}

func TestListInstallmentsUseCase_Errors(t *testing.T) {
	tests := []struct {
		name         string
		criteria     FilterCriteria
		invoiceErr   error
		extraErr     error
		expectedCode domainerror.InstallmentErrorCode
	}{
		{name: "invalid emission", criteria: FilterCriteria{Emission: "x"}, expectedCode: domainerror.ErrCodeInvalidInstallmentFilter},
		{name: "invalid month", criteria: FilterCriteria{Month: 13}, expectedCode: domainerror.ErrCodeInvalidInstallmentFilter},
		{name: "invoice load fails", invoiceErr: errors.New("boom"), expectedCode: domainerror.ErrCodeInstallmentLoadFailed},
		{name: "extras load fails", extraErr: errors.New("boom"), expectedCode: domainerror.ErrCodeInstallmentLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extras := newFakeExtraRepo()
			extras.findErr = tt.extraErr
			uc := NewListInstallmentsUseCase(&fakeInvoiceRepo{err: tt.invoiceErr}, extras, &fakeMetrics{})

			_, err := uc.Execute(context.Background(), ListInstallmentsInput{Criteria: tt.criteria})

			var insErr *domainerror.InstallmentError
			if !errors.As(err, &insErr) {
				t.Fatalf("expected InstallmentError, got %v", err)
			}
			if insErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, insErr.Code)
			}
		})
	}
}

func TestListInstallmentsUseCase_OrdersByLatestRecord(t *testing.T) {
	// Repository order is due date ascending, so "600" first appears through its index-1 record.
	invoices := &fakeInvoiceRepo{invoices: []*entity.Invoice{
		{
			Number: "600", ClientName: "Gama", TotalInstallments: 4,
			IssueDate: day(2024, time.January, 5), DueDate: day(2024, time.January, 10),
			NetValue: decimal.NewFromInt(2000),
		},
		{
			Number: "700", ClientName: "Delta", TotalInstallments: 2,
			IssueDate: day(2024, time.January, 15), DueDate: day(2024, time.February, 10),
			NetValue: decimal.NewFromInt(500),
		},
		{
			Number: "600", ClientName: "Gama", TotalInstallments: 4, InstallmentNumber: intPtr(3),
			IssueDate: day(2024, time.March, 5), DueDate: day(2024, time.March, 10),
			NetValue: decimal.NewFromInt(2000),
		},
		{
			Number: "650", ClientName: "Epsilon", TotalInstallments: 2,
			IssueDate: day(2024, time.January, 15), DueDate: day(2024, time.February, 10),
			NetValue: decimal.NewFromInt(700),
		},
	}}

	uc := NewListInstallmentsUseCase(invoices, newFakeExtraRepo(), &fakeMetrics{})

	output, err := uc.Execute(context.Background(), ListInstallmentsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := keys(output.Installments)
	expected := []string{"650-2", "700-2", "600-4"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, got)
			break
		}
	}
}
