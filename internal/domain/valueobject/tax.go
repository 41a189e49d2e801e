package valueobject

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidTaxRate is returned when a withholding rate is outside [0, 100].
var ErrInvalidTaxRate = errors.New("tax rate must be between 0 and 100")

var (
	hundred = decimal.NewFromInt(100)

	// minimumWithholding is the amount at or below which IRRF, and separately the combined
	// PIS/COFINS/CSLL, are not withheld.
	minimumWithholding = decimal.NewFromInt(10)
)

// TaxRates holds the withholding percentages applied to a service invoice (1.5 = 1.5%).
type TaxRates struct {
	ISS    decimal.Decimal
	IRRF   decimal.Decimal
	PIS    decimal.Decimal
	COFINS decimal.Decimal
	CSLL   decimal.Decimal
}

// Validate checks every rate is within [0, 100].
func (r TaxRates) Validate() error {
	for _, rate := range []decimal.Decimal{r.ISS, r.IRRF, r.PIS, r.COFINS, r.CSLL} {
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			return ErrInvalidTaxRate
		}
	}
	return nil
}

// TaxBreakdown is the result of applying TaxRates to a gross value.
type TaxBreakdown struct {
	Gross  decimal.Decimal
	ISS    decimal.Decimal
	IRRF   decimal.Decimal
	PIS    decimal.Decimal
	COFINS decimal.Decimal
	CSLL   decimal.Decimal
	Total  decimal.Decimal
	Net    decimal.Decimal
}

// CalculateTaxes applies the withholding rates to gross.
// Each retention is rounded to cents. IRRF of R$ 10,00 or less is dispensed, and so is the
// PIS + COFINS + CSLL group when its combined value is R$ 10,00 or less.
func CalculateTaxes(gross decimal.Decimal, rates TaxRates) TaxBreakdown {
	b := TaxBreakdown{
		Gross:  gross,
		ISS:    retention(gross, rates.ISS),
		IRRF:   retention(gross, rates.IRRF),
		PIS:    retention(gross, rates.PIS),
		COFINS: retention(gross, rates.COFINS),
		CSLL:   retention(gross, rates.CSLL),
	}

	if b.IRRF.LessThanOrEqual(minimumWithholding) {
		b.IRRF = decimal.Zero
	}

	if b.PIS.Add(b.COFINS).Add(b.CSLL).LessThanOrEqual(minimumWithholding) {
		b.PIS = decimal.Zero
		b.COFINS = decimal.Zero
		b.CSLL = decimal.Zero
	}

	b.Total = b.ISS.Add(b.IRRF).Add(b.PIS).Add(b.COFINS).Add(b.CSLL)
	b.Net = gross.Sub(b.Total)
	return b
}

func retention(gross, rate decimal.Decimal) decimal.Decimal {
	return gross.Mul(rate).Div(hundred).Round(2)
}
