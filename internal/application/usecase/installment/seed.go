package installment

import (
	"time"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
)

// ResolveIssueSeed picks the issue date the schedule chains from.
// It prefers the record of the same invoice number stored for currentIndex, then the
// record for installment 1 (or with no installment number), and otherwise returns fallback.
func ResolveIssueSeed(invoices []*entity.Invoice, number string, currentIndex int, fallback time.Time) time.Time {
	var first *entity.Invoice

	for _, inv := range invoices {
		if inv.Number != number {
			continue
		}

		if inv.InstallmentNumber != nil && *inv.InstallmentNumber == currentIndex {
			return inv.IssueDate
		}

		if first == nil && (inv.InstallmentNumber == nil || *inv.InstallmentNumber == 1) {
			first = inv
		}
	}

	if first != nil {
		return first.IssueDate
	}
	return fallback
}
