// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gestao-consultoria/backend/internal/application/adapter"
	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
	"github.com/gestao-consultoria/backend/internal/integration/persistence/model"
)

// invoiceRepository implements the adapter.InvoiceRepository interface.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance.
func NewInvoiceRepository(db *gorm.DB) adapter.InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

// Create creates a new invoice in the database.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoiceModel := model.InvoiceFromEntity(invoice)
	result := r.db.WithContext(ctx).Create(invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrInvoiceAlreadyExists
		}
		return result.Error
	}
	return nil
}

// FindAll returns every invoice ordered by due date, then number.
func (r *invoiceRepository) FindAll(ctx context.Context) ([]*entity.Invoice, error) {
	var invoiceModels []model.InvoiceModel
	result := r.db.WithContext(ctx).
		Order("due_date ASC").
		Order("number ASC").
		Order("installment_number ASC").
		Find(&invoiceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToEntity()
	}
	return invoices, nil
}

// ExistsByNumberAndInstallment checks whether an invoice with the number and installment index exists.
func (r *invoiceRepository) ExistsByNumberAndInstallment(ctx context.Context, number string, installment int) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.InvoiceModel{}).Where("number = ?", number)
	if installment == 1 {
		query = query.Where("installment_number IS NULL OR installment_number = ?", 1)
	} else {
		query = query.Where("installment_number = ?", installment)
	}

	var count int64
	if result := query.Count(&count); result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
