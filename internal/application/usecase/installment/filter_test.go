package installment

import (
	"reflect"
	"testing"
	"time"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
)

func sampleInstallments() []*entity.Installment {
	return []*entity.Installment{
		{Key: "1234-2", InvoiceNumber: "1234", ClientName: "Acme Consultoria", DueDate: day(2024, time.March, 15), Emitted: true},
		{Key: "1234-3", InvoiceNumber: "1234", ClientName: "Acme Consultoria", DueDate: day(2024, time.April, 15)},
		{Key: "987-2", InvoiceNumber: "987", ClientName: "Beta Ltda", DueDate: day(2025, time.March, 10)},
	}
}

func keys(items []*entity.Installment) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, item.Key)
	}
	return result
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria FilterCriteria
		expected []string
	}{
		{name: "no criteria", criteria: FilterCriteria{}, expected: []string{"1234-2", "1234-3", "987-2"}},
		{name: "search client case insensitive", criteria: FilterCriteria{Search: "beta"}, expected: []string{"987-2"}},
		{name: "search invoice number", criteria: FilterCriteria{Search: "123"}, expected: []string{"1234-2", "1234-3"}},
		{name: "month", criteria: FilterCriteria{Month: 3}, expected: []string{"1234-2", "987-2"}},
		{name: "month and year", criteria: FilterCriteria{Month: 3, Year: 2025}, expected: []string{"987-2"}},
		{name: "emitted", criteria: FilterCriteria{Emission: EmissionEmitted}, expected: []string{"1234-2"}},
		{name: "pending", criteria: FilterCriteria{Emission: EmissionPending}, expected: []string{"1234-3", "987-2"}},
		{name: "all", criteria: FilterCriteria{Emission: EmissionAll}, expected: []string{"1234-2", "1234-3", "987-2"}},
		{name: "nothing matches", criteria: FilterCriteria{Search: "gamma"}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys(Filter(sampleInstallments(), tt.criteria))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	input := sampleInstallments()
	snapshot := sampleInstallments()

	_ = Filter(input, FilterCriteria{Search: "acme", Month: 4, Emission: EmissionPending})

	if !reflect.DeepEqual(input, snapshot) {
		t.Error("expected input to be unchanged")
	}
}

func TestEmissionFilter_IsValid(t *testing.T) {
	for _, f := range []EmissionFilter{"", EmissionAll, EmissionEmitted, EmissionPending} {
		if !f.IsValid() {
			t.Errorf("expected %q to be valid", f)
		}
	}
	if EmissionFilter("emitidas").IsValid() {
		t.Error("expected unknown filter to be invalid")
	}
}
