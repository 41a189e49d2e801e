// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-consultoria/backend/internal/application/usecase/invoice"
	"github.com/gestao-consultoria/backend/internal/domain/valueobject"
)

// TaxRatesRequest holds withholding percentages (1.5 means 1.5%).
type TaxRatesRequest struct {
	ISS    decimal.Decimal `json:"iss"`
	IRRF   decimal.Decimal `json:"irrf"`
	PIS    decimal.Decimal `json:"pis"`
	COFINS decimal.Decimal `json:"cofins"`
	CSLL   decimal.Decimal `json:"csll"`
}

// CreateInvoiceRequest represents the request body for invoice registration.
type CreateInvoiceRequest struct {
	Number            string          `json:"number" binding:"required,max=50"`
	ClientName        string          `json:"client_name" binding:"required,max=255"`
	IssueDate         string          `json:"issue_date" binding:"required"`
	DueDate           string          `json:"due_date" binding:"required"`
	GrossValue        decimal.Decimal `json:"gross_value"`
	Taxes             TaxRatesRequest `json:"taxes"`
	InstallmentNumber *int            `json:"installment_number,omitempty"`
	TotalInstallments int             `json:"total_installments,omitempty"`
}

// ToRates converts the request rates to the domain value object.
func (r TaxRatesRequest) ToRates() valueobject.TaxRates {
	return valueobject.TaxRates{
		ISS:    r.ISS,
		IRRF:   r.IRRF,
		PIS:    r.PIS,
		COFINS: r.COFINS,
		CSLL:   r.CSLL,
	}
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.UTC)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// TaxBreakdownResponse represents the withholding applied to an invoice.
type TaxBreakdownResponse struct {
	ISS    string `json:"iss"`
	IRRF   string `json:"irrf"`
	PIS    string `json:"pis"`
	COFINS string `json:"cofins"`
	CSLL   string `json:"csll"`
	Total  string `json:"total"`
}

// TaxRatesResponse represents the stored withholding percentages.
type TaxRatesResponse struct {
	ISS    string `json:"iss"`
	IRRF   string `json:"irrf"`
	PIS    string `json:"pis"`
	COFINS string `json:"cofins"`
	CSLL   string `json:"csll"`
}

// InvoiceResponse represents a single invoice in API responses.
type InvoiceResponse struct {
	ID                string               `json:"id"`
	Number            string               `json:"number"`
	ClientName        string               `json:"client_name"`
	IssueDate         string               `json:"issue_date"`
	DueDate           string               `json:"due_date"`
	GrossValue        string               `json:"gross_value"`
	NetValue          string               `json:"net_value"`
	Rates             TaxRatesResponse     `json:"rates"`
	Taxes             TaxBreakdownResponse `json:"taxes"`
	InstallmentNumber *int                 `json:"installment_number"`
	TotalInstallments int                  `json:"total_installments"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// InvoiceListResponse represents the response for listing invoices.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToInvoiceResponse converts an invoice use case output to an InvoiceResponse DTO.
func ToInvoiceResponse(output *invoice.InvoiceOutput) InvoiceResponse {
	inv := output.Invoice

	return InvoiceResponse{
		ID:         inv.ID.String(),
		Number:     inv.Number,
		ClientName: inv.ClientName,
		IssueDate:  FormatDate(inv.IssueDate),
		DueDate:    FormatDate(inv.DueDate),
		GrossValue: inv.GrossValue.StringFixed(2),
		NetValue:   inv.NetValue.StringFixed(2),
		Rates: TaxRatesResponse{
			ISS:    inv.Taxes.ISS.String(),
			IRRF:   inv.Taxes.IRRF.String(),
			PIS:    inv.Taxes.PIS.String(),
			COFINS: inv.Taxes.COFINS.String(),
			CSLL:   inv.Taxes.CSLL.String(),
		},
		Taxes: TaxBreakdownResponse{
			ISS:    output.Taxes.ISS.StringFixed(2),
			IRRF:   output.Taxes.IRRF.StringFixed(2),
			PIS:    output.Taxes.PIS.StringFixed(2),
			COFINS: output.Taxes.COFINS.StringFixed(2),
			CSLL:   output.Taxes.CSLL.StringFixed(2),
			Total:  output.Taxes.Total.StringFixed(2),
		},
		InstallmentNumber: inv.InstallmentNumber,
		TotalInstallments: inv.TotalInstallments,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}

// ToInvoiceListResponse converts the list output to an InvoiceListResponse DTO.
func ToInvoiceListResponse(output *invoice.ListInvoicesOutput) InvoiceListResponse {
	invoices := make([]InvoiceResponse, 0, len(output.Invoices))
	for _, inv := range output.Invoices {
		invoices = append(invoices, ToInvoiceResponse(inv))
	}
	return InvoiceListResponse{Invoices: invoices}
}
