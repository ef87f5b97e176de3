package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	LoanStatusDue    = "due"
	LoanStatusRepaid = "repaid"
)

// Loan represents a disbursed loan and its remaining balance. Amounts are
// integer minor units in the loan's currency.
type Loan struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            string    `json:"user_id" db:"user_id"`
	Amount            int64     `json:"amount" db:"amount"`
	Terms             int       `json:"terms" db:"terms"`
	OutstandingAmount int64     `json:"outstanding_amount" db:"outstanding_amount"`
	CurrencyCode      string    `json:"currency_code" db:"currency_code"`
	Status            string    `json:"status" db:"status"`
	ProcessedAt       time.Time `json:"processed_at" db:"processed_at"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// Principal returns the original loan amount as Money.
func (l *Loan) Principal() Money {
	return NewMoney(l.Amount, l.CurrencyCode)
}

// Outstanding returns the remaining balance as Money.
func (l *Loan) Outstanding() Money {
	return NewMoney(l.OutstandingAmount, l.CurrencyCode)
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	Amount       int64  `json:"amount" validate:"required,gt=0"`
	CurrencyCode string `json:"currency_code" validate:"required,len=3"`
	Terms        int    `json:"terms" validate:"required,gt=0"`
	ProcessedAt  string `json:"processed_at" validate:"required"`
}

type CreateLoanResponse struct {
	Loan     *Loan                 `json:"loan"`
	Schedule []*ScheduledRepayment `json:"schedule"`
}

type RepayLoanRequest struct {
	Amount       int64  `json:"amount" validate:"required,gt=0"`
	CurrencyCode string `json:"currency_code" validate:"required,len=3"`
	ReceivedAt   string `json:"received_at" validate:"required"`
}

type LoanResponse struct {
	Loan        *Loan  `json:"loan"`
	Principal   string `json:"principal"`
	Outstanding string `json:"outstanding"`
}

type ScheduleResponse struct {
	LoanID   uuid.UUID             `json:"loan_id"`
	Schedule []*ScheduledRepayment `json:"schedule"`
}
