// Package schedule generates amortized repayment schedules for loans.
package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/praditya/loan-ledger/internal/domain"
	"github.com/praditya/loan-ledger/pkg/utils"
)

// Generate builds the installment schedule for a loan: `terms` installments of
// floor(amount/terms) each, due on successive calendar months after the
// processing date. The last installment absorbs the floor-division remainder
// so the schedule sums exactly to the principal.
//
// The caller is responsible for rejecting terms <= 0 and amount < terms before
// calling; Generate assumes the base installment is positive.
func Generate(loanID uuid.UUID, amount int64, currencyCode string, terms int, processedAt time.Time) []*domain.ScheduledRepayment {
	base := amount / int64(terms)

	installments := make([]*domain.ScheduledRepayment, 0, terms)
	for i := 1; i <= terms; i++ {
		installments = append(installments, &domain.ScheduledRepayment{
			ID:                uuid.New(),
			LoanID:            loanID,
			Amount:            base,
			OutstandingAmount: base,
			CurrencyCode:      currencyCode,
			DueDate:           utils.AddMonths(processedAt, i),
			Status:            domain.ScheduleStatusDue,
		})
	}

	// The remainder of the floor division lands on the last installment, but
	// only when the terms do not divide the amount evenly.
	lastAmount := amount - base*int64(terms-1)
	if lastAmount != base {
		last := installments[terms-1]
		last.Amount = lastAmount
		last.OutstandingAmount = lastAmount
	}

	return installments
}
