package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/praditya/loan-ledger/internal/domain"
)

type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) CreateBatch(ctx context.Context, installments []*domain.ScheduledRepayment) error {
	query := `
		INSERT INTO scheduled_repayments (id, loan_id, amount, outstanding_amount, currency_code, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	ext := extFrom(ctx, r.db)
	now := time.Now()

	for _, inst := range installments {
		inst.CreatedAt = now
		_, err := ext.ExecContext(ctx, query,
			inst.ID,
			inst.LoanID,
			inst.Amount,
			inst.OutstandingAmount,
			inst.CurrencyCode,
			inst.DueDate,
			inst.Status,
			inst.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *scheduleRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.ScheduledRepayment, error) {
	query := `
		SELECT id, loan_id, amount, outstanding_amount, currency_code, due_date, status, created_at
		FROM scheduled_repayments
		WHERE loan_id = $1
		ORDER BY due_date
	`

	var installments []*domain.ScheduledRepayment
	if err := sqlx.SelectContext(ctx, extFrom(ctx, r.db), &installments, query, loanID); err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *scheduleRepository) FindDueInstallment(ctx context.Context, loanID uuid.UUID) (*domain.ScheduledRepayment, error) {
	// Strictly 'due' only: installments already in partial status are not
	// selected again. This mirrors the ledger's allocation policy.
	query := `
		SELECT id, loan_id, amount, outstanding_amount, currency_code, due_date, status, created_at
		FROM scheduled_repayments
		WHERE loan_id = $1 AND status = $2
		ORDER BY due_date ASC
		LIMIT 1
		FOR UPDATE
	`

	var installment domain.ScheduledRepayment
	if err := sqlx.GetContext(ctx, extFrom(ctx, r.db), &installment, query, loanID, domain.ScheduleStatusDue); err != nil {
		return nil, err
	}

	return &installment, nil
}

func (r *scheduleRepository) UpdateAllocation(ctx context.Context, id uuid.UUID, outstandingAmount int64, status string) error {
	query := `
		UPDATE scheduled_repayments
		SET outstanding_amount = $2, status = $3
		WHERE id = $1
	`

	_, err := extFrom(ctx, r.db).ExecContext(ctx, query, id, outstandingAmount, status)
	return err
}

func (r *scheduleRepository) ListDueWithin(ctx context.Context, from, to time.Time) ([]*domain.ScheduledRepayment, error) {
	query := `
		SELECT id, loan_id, amount, outstanding_amount, currency_code, due_date, status, created_at
		FROM scheduled_repayments
		WHERE status != $1 AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date, loan_id
	`

	var installments []*domain.ScheduledRepayment
	if err := sqlx.SelectContext(ctx, extFrom(ctx, r.db), &installments, query, domain.ScheduleStatusRepaid, from, to); err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *scheduleRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.ScheduledRepayment, error) {
	query := `
		SELECT id, loan_id, amount, outstanding_amount, currency_code, due_date, status, created_at
		FROM scheduled_repayments
		WHERE status != $1 AND due_date < $2
		ORDER BY due_date, loan_id
	`

	var installments []*domain.ScheduledRepayment
	if err := sqlx.SelectContext(ctx, extFrom(ctx, r.db), &installments, query, domain.ScheduleStatusRepaid, asOf); err != nil {
		return nil, err
	}

	return installments, nil
}
