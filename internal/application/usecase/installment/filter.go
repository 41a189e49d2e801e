package installment

import (
	"strings"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
)

// EmissionFilter partitions installments by whether their invoice was already emitted.
type EmissionFilter string

const (
	EmissionAll     EmissionFilter = "all"
	EmissionEmitted EmissionFilter = "emitted"
	EmissionPending EmissionFilter = "pending"
)

// IsValid reports whether the filter is a known value. Empty means all.
func (f EmissionFilter) IsValid() bool {
	switch f {
	case "", EmissionAll, EmissionEmitted, EmissionPending:
		return true
	default:
		return false
	}
}

// FilterCriteria narrows a list of installments. Zero values match everything.
type FilterCriteria struct {
	Search   string
	Month    int
	Year     int
	Emission EmissionFilter
}

// Filter returns the installments matching criteria, keeping their order.
// The input slice and its elements are not modified.
func Filter(installments []*entity.Installment, criteria FilterCriteria) []*entity.Installment {
	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	result := make([]*entity.Installment, 0, len(installments))

	for _, item := range installments {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.ClientName), search) &&
			!strings.Contains(strings.ToLower(item.InvoiceNumber), search) {
			continue
		}

		if criteria.Month != 0 && int(item.DueDate.Month()) != criteria.Month {
			continue
		}

		if criteria.Year != 0 && item.DueDate.Year() != criteria.Year {
			continue
		}

		switch criteria.Emission {
		case EmissionEmitted:
			if !item.Emitted {
				continue
			}
		case EmissionPending:
			if item.Emitted {
				continue
			}
		}

		result = append(result, item)
	}

	return result
}
