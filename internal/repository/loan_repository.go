package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/praditya/loan-ledger/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, user_id, amount, terms, outstanding_amount, currency_code, status, processed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	loan.CreatedAt = now
	loan.UpdatedAt = now

	_, err := extFrom(ctx, r.db).ExecContext(ctx, query,
		loan.ID,
		loan.UserID,
		loan.Amount,
		loan.Terms,
		loan.OutstandingAmount,
		loan.CurrencyCode,
		loan.Status,
		loan.ProcessedAt,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	return r.get(ctx, id, false)
}

func (r *loanRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	return r.get(ctx, id, true)
}

func (r *loanRepository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Loan, error) {
	query := `
		SELECT id, user_id, amount, terms, outstanding_amount, currency_code, status, processed_at, created_at, updated_at
		FROM loans
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var loan domain.Loan
	if err := sqlx.GetContext(ctx, extFrom(ctx, r.db), &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) UpdateBalance(ctx context.Context, id uuid.UUID, outstandingAmount int64, status string) error {
	query := `
		UPDATE loans
		SET outstanding_amount = $2, status = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := extFrom(ctx, r.db).ExecContext(ctx, query, id, outstandingAmount, status, time.Now())
	return err
}
