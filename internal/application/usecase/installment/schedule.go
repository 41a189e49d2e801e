// Package installment contains the installment projection use cases.
package installment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
	"github.com/gestao-consultoria/backend/internal/domain/valueobject"
)

// ScheduleInput describes the invoice whose remaining installments are projected.
type ScheduleInput struct {
	InvoiceNumber     string
	ClientName        string
	InstallmentNumber int // index of the invoice record, 1 when unset
	TotalInstallments int
	DueDate           time.Time
	IssueSeed         time.Time // issue date of installment InstallmentNumber
	NetValue          decimal.Decimal
}

// GenerateSchedule projects installments InstallmentNumber+1 through TotalInstallments.
//
// Issue dates chain month by month from IssueSeed, each one moved forward to the next
// business day before the following month is added. Due dates are DueDate plus the
// month offset and are never adjusted. Every installment repeats NetValue unless an
// override carries an edited value. The result is empty when there is nothing left to project.
func GenerateSchedule(input ScheduleInput, extras map[string]*entity.InstallmentExtra) []*entity.Installment {
	current := input.InstallmentNumber
	if current < 1 {
		current = 1
	}

	if input.TotalInstallments <= 1 || current >= input.TotalInstallments {
		return []*entity.Installment{}
	}

	schedule := make([]*entity.Installment, 0, input.TotalInstallments-current)
	issue := input.IssueSeed

	for index := current + 1; index <= input.TotalInstallments; index++ {
		issue = valueobject.NextBusinessDay(valueobject.AddMonths(issue, 1))
		key := entity.InstallmentKey(input.InvoiceNumber, index)

		item := &entity.Installment{
			Key:               key,
			Index:             index,
			TotalInstallments: input.TotalInstallments,
			InvoiceNumber:     input.InvoiceNumber,
			ClientName:        input.ClientName,
			IssueDate:         issue,
			DueDate:           valueobject.AddMonths(input.DueDate, index-current),
			Value:             input.NetValue,
			Status:            entity.InstallmentStatusPendente,
		}

		if extra, ok := extras[key]; ok && extra != nil {
			applyExtra(item, extra)
		}

		schedule = append(schedule, item)
	}

	return schedule
}

func applyExtra(item *entity.Installment, extra *entity.InstallmentExtra) {
	item.Emitted = extra.Emitted

	if extra.PaymentDate != nil {
		paid := *extra.PaymentDate
		item.PaymentDate = &paid
	}

	if extra.Status != "" {
		item.Status = extra.Status
	}

	if extra.EditedValue != nil {
		item.Value = *extra.EditedValue
	}
}
