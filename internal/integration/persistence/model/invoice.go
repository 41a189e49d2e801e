// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
	"github.com/gestao-consultoria/backend/internal/domain/valueobject"
)

// InvoiceModel represents the invoices table in the database.
type InvoiceModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number            string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_number_installment"`
	ClientName        string          `gorm:"type:varchar(255);not null"`
	IssueDate         time.Time       `gorm:"type:date;not null"`
	DueDate           time.Time       `gorm:"type:date;not null;index"`
	GrossValue        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ISSRate           decimal.Decimal `gorm:"column:iss_rate;type:decimal(5,2);not null;default:0"`
	IRRFRate          decimal.Decimal `gorm:"column:irrf_rate;type:decimal(5,2);not null;default:0"`
	PISRate           decimal.Decimal `gorm:"column:pis_rate;type:decimal(5,2);not null;default:0"`
	COFINSRate        decimal.Decimal `gorm:"column:cofins_rate;type:decimal(5,2);not null;default:0"`
	CSLLRate          decimal.Decimal `gorm:"column:csll_rate;type:decimal(5,2);not null;default:0"`
	NetValue          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	InstallmentNumber *int            `gorm:"type:integer;uniqueIndex:idx_invoice_number_installment"`
	TotalInstallments int             `gorm:"type:integer;not null;default:1"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel to a domain Invoice entity.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	return &entity.Invoice{
		ID:         m.ID,
		Number:     m.Number,
		ClientName: m.ClientName,
		IssueDate:  m.IssueDate,
		DueDate:    m.DueDate,
		GrossValue: m.GrossValue,
		Taxes: valueobject.TaxRates{
			ISS:    m.ISSRate,
			IRRF:   m.IRRFRate,
			PIS:    m.PISRate,
			COFINS: m.COFINSRate,
			CSLL:   m.CSLLRate,
		},
		NetValue:          m.NetValue,
		InstallmentNumber: m.InstallmentNumber,
		TotalInstallments: m.TotalInstallments,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// InvoiceFromEntity creates an InvoiceModel from a domain Invoice entity.
func InvoiceFromEntity(invoice *entity.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:                invoice.ID,
		Number:            invoice.Number,
		ClientName:        invoice.ClientName,
		IssueDate:         invoice.IssueDate,
		DueDate:           invoice.DueDate,
		GrossValue:        invoice.GrossValue,
		ISSRate:           invoice.Taxes.ISS,
		IRRFRate:          invoice.Taxes.IRRF,
		PISRate:           invoice.Taxes.PIS,
		COFINSRate:        invoice.Taxes.COFINS,
		CSLLRate:          invoice.Taxes.CSLL,
		NetValue:          invoice.NetValue,
		InstallmentNumber: invoice.InstallmentNumber,
		TotalInstallments: invoice.TotalInstallments,
		CreatedAt:         invoice.CreatedAt,
		UpdatedAt:         invoice.UpdatedAt,
	}
}
