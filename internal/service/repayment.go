package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/praditya/loan-ledger/internal/domain"
	"github.com/praditya/loan-ledger/internal/lock"
	customError "github.com/praditya/loan-ledger/pkg/errors"
	"github.com/praditya/loan-ledger/pkg/utils"
)

// RepayLoan allocates an incoming payment against the loan's earliest
// installment still in due status. The whole read-select-mutate-persist
// sequence runs under a per-loan lock and inside one transaction.
//
// Allocation rules, kept deliberately:
//   - installments in partial status are skipped by the lookup; only strictly
//     due ones are targeted;
//   - the installment's outstanding amount clamps at zero on overpayment, the
//     excess is absorbed;
//   - the loan's outstanding amount is NOT clamped and can go negative on
//     overpayment;
//   - the received repayment stores the raw payment amount regardless of how
//     much the installment absorbed.
func (s *LoanService) RepayLoan(ctx context.Context, loanID uuid.UUID, request *domain.RepayLoanRequest) (*domain.ReceivedRepayment, error) {
	if err := s.validate.Struct(request); err != nil {
		return nil, customError.WrapInvalidInput(err.Error())
	}

	receivedAt, err := utils.ParseDate(request.ReceivedAt)
	if err != nil {
		return nil, customError.WrapInvalidInput("received_at must be an ISO-8601 calendar date")
	}

	release, err := s.locker.Acquire(ctx, loanID.String(), s.lockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, customError.WrapLockError(loanID.String(), customError.ErrLockNotAcquired)
		}
		return nil, customError.WrapLockError(loanID.String(), err)
	}
	defer release()

	var received *domain.ReceivedRepayment

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		loan, err := s.LoanRepo.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return customError.WrapLoanNotFound(loanID.String())
			}
			return customError.WrapDatabaseError(err)
		}

		installment, err := s.ScheduleRepo.FindDueInstallment(ctx, loanID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return customError.WrapNoDueInstallment(loanID.String())
			}
			return customError.WrapDatabaseError(err)
		}

		remaining := domain.NewMoney(installment.OutstandingAmount, installment.CurrencyCode).Sub(request.Amount)
		if remaining.IsNegative() {
			remaining.Amount = 0
		}

		status := domain.ScheduleStatusPartial
		if remaining.IsZero() {
			status = domain.ScheduleStatusRepaid
		}

		if err := s.ScheduleRepo.UpdateAllocation(ctx, installment.ID, remaining.Amount, status); err != nil {
			return customError.WrapDatabaseError(err)
		}

		balance := loan.Outstanding().Sub(request.Amount)
		loanStatus := loan.Status
		if balance.IsZero() {
			loanStatus = domain.LoanStatusRepaid
		}

		if err := s.LoanRepo.UpdateBalance(ctx, loan.ID, balance.Amount, loanStatus); err != nil {
			return customError.WrapDatabaseError(err)
		}

		received = &domain.ReceivedRepayment{
			ID:           uuid.New(),
			LoanID:       loan.ID,
			Amount:       request.Amount,
			CurrencyCode: request.CurrencyCode,
			ReceivedAt:   receivedAt,
		}

		if err := s.ReceivedRepo.Create(ctx, received); err != nil {
			return customError.WrapDatabaseError(err)
		}

		return nil
	})
	if err != nil {
		var businessErr *customError.BusinessError
		if errors.As(err, &businessErr) {
			return nil, err
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return received, nil
}
