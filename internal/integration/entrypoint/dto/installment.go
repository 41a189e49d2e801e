// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
)

// UpdateInstallmentRequest represents the request body for an installment override patch.
type UpdateInstallmentRequest struct {
	Emitted          *bool            `json:"emitted,omitempty"`
	PaymentDate      *string          `json:"payment_date,omitempty"`
	ClearPaymentDate bool             `json:"clear_payment_date,omitempty"`
	Status           *string          `json:"status,omitempty"`
	Value            *decimal.Decimal `json:"value,omitempty"`
	ClearValue       bool             `json:"clear_value,omitempty"`
}

// InstallmentResponse represents a projected installment in API responses.
type InstallmentResponse struct {
	Key               string  `json:"key"`
	InvoiceNumber     string  `json:"invoice_number"`
	ClientName        string  `json:"client_name"`
	Index             int     `json:"index"`
	TotalInstallments int     `json:"total_installments"`
	IssueDate         string  `json:"issue_date"`
	DueDate           string  `json:"due_date"`
	Value             string  `json:"value"`
	Emitted           bool    `json:"emitted"`
	PaymentDate       *string `json:"payment_date"`
	Status            string  `json:"status"`
}

// InstallmentListResponse represents the response for listing installments.
type InstallmentListResponse struct {
	Installments []InstallmentResponse `json:"installments"`
	Total        int                   `json:"total"`
}

// InstallmentExtraResponse represents a stored override in API responses.
type InstallmentExtraResponse struct {
	Key         string  `json:"key"`
	Emitted     bool    `json:"emitted"`
	PaymentDate *string `json:"payment_date"`
	Status      string  `json:"status"`
	Value       *string `json:"value"`
}

// ToInstallmentResponse converts a domain Installment to an InstallmentResponse DTO.
func ToInstallmentResponse(item *entity.Installment) InstallmentResponse {
	var paymentDate *string
	if item.PaymentDate != nil {
		formatted := FormatDate(*item.PaymentDate)
		paymentDate = &formatted
	}

	return InstallmentResponse{
		Key:               item.Key,
		InvoiceNumber:     item.InvoiceNumber,
		ClientName:        item.ClientName,
		Index:             item.Index,
		TotalInstallments: item.TotalInstallments,
		IssueDate:         FormatDate(item.IssueDate),
		DueDate:           FormatDate(item.DueDate),
		Value:             item.Value.StringFixed(2),
		Emitted:           item.Emitted,
		PaymentDate:       paymentDate,
		Status:            string(item.Status),
	}
}

// ToInstallmentListResponse converts installments to an InstallmentListResponse DTO.
func ToInstallmentListResponse(items []*entity.Installment) InstallmentListResponse {
	installments := make([]InstallmentResponse, 0, len(items))
	for _, item := range items {
		installments = append(installments, ToInstallmentResponse(item))
	}
	return InstallmentListResponse{
		Installments: installments,
		Total:        len(installments),
	}
}

// ToInstallmentExtraResponse converts a domain InstallmentExtra to its response DTO.
func ToInstallmentExtraResponse(extra *entity.InstallmentExtra) InstallmentExtraResponse {
	response := InstallmentExtraResponse{
		Key:     extra.Key,
		Emitted: extra.Emitted,
		Status:  string(extra.Status),
	}

	if extra.PaymentDate != nil {
		formatted := FormatDate(*extra.PaymentDate)
		response.PaymentDate = &formatted
	}
	if extra.EditedValue != nil {
		value := extra.EditedValue.StringFixed(2)
		response.Value = &value
	}

	return response
}
