// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
)

// InstallmentExtraModel represents the installment_extras table, keyed by "<invoiceNumber>-<index>".
type InstallmentExtraModel struct {
	Key         string           `gorm:"column:key;type:varchar(80);primaryKey"`
	Emitted     bool             `gorm:"not null;default:false"`
	PaymentDate *time.Time       `gorm:"type:date"`
	Status      string           `gorm:"type:varchar(20);not null;default:'pendente'"`
	EditedValue *decimal.Decimal `gorm:"type:decimal(15,2)"`
	UpdatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for the InstallmentExtraModel.
func (InstallmentExtraModel) TableName() string {
	return "installment_extras"
}

// ToEntity converts an InstallmentExtraModel to a domain InstallmentExtra entity.
func (m *InstallmentExtraModel) ToEntity() *entity.InstallmentExtra {
	return &entity.InstallmentExtra{
		Key:         m.Key,
		Emitted:     m.Emitted,
		PaymentDate: m.PaymentDate,
		Status:      entity.InstallmentStatus(m.Status),
		EditedValue: m.EditedValue,
		UpdatedAt:   m.UpdatedAt,
	}
}

// InstallmentExtraFromEntity creates an InstallmentExtraModel from a domain InstallmentExtra entity.
func InstallmentExtraFromEntity(extra *entity.InstallmentExtra) *InstallmentExtraModel {
	status := string(extra.Status)
	if status == "" {
		status = string(entity.InstallmentStatusPendente)
	}

	return &InstallmentExtraModel{
		Key:         extra.Key,
		Emitted:     extra.Emitted,
		PaymentDate: extra.PaymentDate,
		Status:      status,
		EditedValue: extra.EditedValue,
		UpdatedAt:   extra.UpdatedAt,
	}
}
