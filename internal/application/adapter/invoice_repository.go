// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
)

// InvoiceRepository defines the interface for invoice persistence operations.
type InvoiceRepository interface {
	// Create persists a new invoice.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// FindAll returns every invoice ordered by due date, then number.
	FindAll(ctx context.Context) ([]*entity.Invoice, error)

	// ExistsByNumberAndInstallment checks whether an invoice with the number and installment index exists.
	// Index 1 also matches records stored without an installment number.
	ExistsByNumberAndInstallment(ctx context.Context, number string, installment int) (bool, error)
}
