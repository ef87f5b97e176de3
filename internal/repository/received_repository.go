package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/praditya/loan-ledger/internal/domain"
)

type receivedRepository struct {
	db *sqlx.DB
}

func NewReceivedRepository(db *sqlx.DB) ReceivedRepository {
	return &receivedRepository{db: db}
}

// Create appends a received repayment row. Rows are never updated or deleted;
// they are the audit trail of allocator actions.
func (r *receivedRepository) Create(ctx context.Context, repayment *domain.ReceivedRepayment) error {
	query := `
		INSERT INTO received_repayments (id, loan_id, amount, currency_code, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	repayment.CreatedAt = time.Now()

	_, err := extFrom(ctx, r.db).ExecContext(ctx, query,
		repayment.ID,
		repayment.LoanID,
		repayment.Amount,
		repayment.CurrencyCode,
		repayment.ReceivedAt,
		repayment.CreatedAt,
	)

	return err
}

func (r *receivedRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.ReceivedRepayment, error) {
	query := `
		SELECT id, loan_id, amount, currency_code, received_at, created_at
		FROM received_repayments
		WHERE loan_id = $1
		ORDER BY received_at, created_at
	`

	var repayments []*domain.ReceivedRepayment
	if err := sqlx.SelectContext(ctx, extFrom(ctx, r.db), &repayments, query, loanID); err != nil {
		return nil, err
	}

	return repayments, nil
}
