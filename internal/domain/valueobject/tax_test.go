package valueobject

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func rates(iss, irrf, pis, cofins, csll string) TaxRates {
	return TaxRates{
		ISS:    decimal.RequireFromString(iss),
		IRRF:   decimal.RequireFromString(irrf),
		PIS:    decimal.RequireFromString(pis),
		COFINS: decimal.RequireFromString(cofins),
		CSLL:   decimal.RequireFromString(csll),
	}
}

func TestCalculateTaxes(t *testing.T) {
	tests := []struct {
		name          string
		gross         string
		rates         TaxRates
		expectedIRRF  string
		expectedPIS   string
		expectedTotal string
		expectedNet   string
	}{
		{
			name:          "all retentions withheld",
			gross:         "10000",
			rates:         rates("5", "1.5", "0.65", "3", "1"),
			expectedIRRF:  "150",
			expectedPIS:   "65",
			expectedTotal: "1115",
			expectedNet:   "8885",
		},
		{
			name:          "small irrf is dispensed",
			gross:         "400",
			rates:         rates("5", "1.5", "0.65", "3", "1"),
			expectedIRRF:  "0",
			expectedPIS:   "2.6",
			expectedTotal: "38.6",
			expectedNet:   "361.4",
		},
		{
			name:          "small social contributions are dispensed together",
			gross:         "200",
			rates:         rates("5", "1.5", "0.65", "3", "1"),
			expectedIRRF:  "0",
			expectedPIS:   "0",
			expectedTotal: "10",
			expectedNet:   "190",
		},
		{
			name:          "no rates",
			gross:         "1500",
			rates:         TaxRates{},
			expectedIRRF:  "0",
			expectedPIS:   "0",
			expectedTotal: "0",
			expectedNet:   "1500",
		},
		{
			name:          "retentions rounded to cents",
			gross:         "333.33",
			rates:         rates("5", "0", "0", "0", "0"),
			expectedIRRF:  "0",
			expectedPIS:   "0",
			expectedTotal: "16.67",
			expectedNet:   "316.66",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTaxes(decimal.RequireFromString(tt.gross), tt.rates)

			if !got.IRRF.Equal(decimal.RequireFromString(tt.expectedIRRF)) {
				t.Errorf("expected IRRF %s, got %s", tt.expectedIRRF, got.IRRF)
			}
			if !got.PIS.Equal(decimal.RequireFromString(tt.expectedPIS)) {
				t.Errorf("expected PIS %s, got %s", tt.expectedPIS, got.PIS)
			}
			if !got.Total.Equal(decimal.RequireFromString(tt.expectedTotal)) {
				t.Errorf("expected total %s, got %s", tt.expectedTotal, got.Total)
			}
			if !got.Net.Equal(decimal.RequireFromString(tt.expectedNet)) {
				t.Errorf("expected net %s, got %s", tt.expectedNet, got.Net)
			}
			if !got.Gross.Sub(got.Total).Equal(got.Net) {
				t.Errorf("net %s does not equal gross %s minus total %s", got.Net, got.Gross, got.Total)
			}
		})
	}
}

func TestTaxRates_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rates   TaxRates
		wantErr bool
	}{
		{name: "zero rates", rates: TaxRates{}, wantErr: false},
		{name: "typical rates", rates: rates("5", "1.5", "0.65", "3", "1"), wantErr: false},
		{name: "full rate", rates: rates("100", "0", "0", "0", "0"), wantErr: false},
		{name: "above hundred", rates: rates("0", "100.01", "0", "0", "0"), wantErr: true},
		{name: "negative", rates: rates("0", "0", "0", "0", "-1"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rates.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidTaxRate) {
				t.Errorf("expected ErrInvalidTaxRate, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
