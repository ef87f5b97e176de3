package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/praditya/loan-ledger/internal/domain"
)

// TxRunner executes a function inside a database transaction. The transaction
// is carried on the context; repository methods pick it up transparently, so a
// service can span several repositories with one atomic unit of work.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create persists a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// GetByIDForUpdate retrieves a loan with a row lock, for use inside a transaction
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// UpdateBalance updates a loan's outstanding amount and status
	UpdateBalance(ctx context.Context, id uuid.UUID, outstandingAmount int64, status string) error
}

// ScheduleRepository defines the interface for scheduled repayment data operations
type ScheduleRepository interface {
	// CreateBatch persists all installments of a loan's schedule
	CreateBatch(ctx context.Context, installments []*domain.ScheduledRepayment) error

	// GetByLoanID retrieves a loan's schedule ordered by due date
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.ScheduledRepayment, error)

	// FindDueInstallment returns the earliest installment in due status,
	// ordered by due date. Installments in partial status are not matched.
	FindDueInstallment(ctx context.Context, loanID uuid.UUID) (*domain.ScheduledRepayment, error)

	// UpdateAllocation updates an installment's outstanding amount and status
	UpdateAllocation(ctx context.Context, id uuid.UUID, outstandingAmount int64, status string) error

	// ListDueWithin returns unpaid installments with a due date inside [from, to]
	ListDueWithin(ctx context.Context, from, to time.Time) ([]*domain.ScheduledRepayment, error)

	// ListOverdue returns unpaid installments whose due date has passed
	ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.ScheduledRepayment, error)
}

// ReceivedRepository defines the interface for received repayment data operations
type ReceivedRepository interface {
	// Create appends a received repayment record
	Create(ctx context.Context, repayment *domain.ReceivedRepayment) error

	// GetByLoanID retrieves all received repayments for a loan
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.ReceivedRepayment, error)
}
