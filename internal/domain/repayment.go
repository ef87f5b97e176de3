package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ScheduleStatusDue     = "due"
	ScheduleStatusPartial = "partial"
	ScheduleStatusRepaid  = "repaid"
)

// ScheduledRepayment is one installment of a loan's amortized schedule.
type ScheduledRepayment struct {
	ID                uuid.UUID `json:"id" db:"id"`
	LoanID            uuid.UUID `json:"loan_id" db:"loan_id"`
	Amount            int64     `json:"amount" db:"amount"`
	OutstandingAmount int64     `json:"outstanding_amount" db:"outstanding_amount"`
	CurrencyCode      string    `json:"currency_code" db:"currency_code"`
	DueDate           time.Time `json:"due_date" db:"due_date"`
	Status            string    `json:"status" db:"status"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// Due returns the installment's original due amount as Money.
func (s *ScheduledRepayment) Due() Money {
	return NewMoney(s.Amount, s.CurrencyCode)
}

// ReceivedRepayment is the audit record of a single repayment call. Rows are
// append-only: the stored amount is the raw payment received, independent of
// how much of it the target installment absorbed.
type ReceivedRepayment struct {
	ID           uuid.UUID `json:"id" db:"id"`
	LoanID       uuid.UUID `json:"loan_id" db:"loan_id"`
	Amount       int64     `json:"amount" db:"amount"`
	CurrencyCode string    `json:"currency_code" db:"currency_code"`
	ReceivedAt   time.Time `json:"received_at" db:"received_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
