package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/praditya/loan-ledger/internal/domain"
	"github.com/praditya/loan-ledger/internal/lock"
	"github.com/praditya/loan-ledger/internal/repository"
	"github.com/praditya/loan-ledger/internal/schedule"
	customError "github.com/praditya/loan-ledger/pkg/errors"
	"github.com/praditya/loan-ledger/pkg/utils"
)

// CreationObserver is invoked after a loan and its schedule have been
// persisted. The ledger itself only notifies; logging or metrics live in the
// observer so they never become a hard dependency of the core.
type CreationObserver func(loan *domain.Loan, lastInstallment *domain.ScheduledRepayment)

type LoanService struct {
	LoanRepo     repository.LoanRepository
	ScheduleRepo repository.ScheduleRepository
	ReceivedRepo repository.ReceivedRepository

	tx       repository.TxRunner
	locker   lock.Locker
	lockTTL  time.Duration
	validate *validator.Validate
	observer CreationObserver
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	scheduleRepo repository.ScheduleRepository,
	receivedRepo repository.ReceivedRepository,
	tx repository.TxRunner,
	locker lock.Locker,
	lockTTL time.Duration,
) *LoanService {
	return &LoanService{
		LoanRepo:     loanRepo,
		ScheduleRepo: scheduleRepo,
		ReceivedRepo: receivedRepo,
		tx:           tx,
		locker:       locker,
		lockTTL:      lockTTL,
		validate:     validator.New(),
		observer: func(loan *domain.Loan, last *domain.ScheduledRepayment) {
			log.Printf("loan %s created: %d installments, last due %s over %s",
				loan.ID, loan.Terms, utils.FormatDate(last.DueDate), last.Due())
		},
	}
}

// WithCreationObserver replaces the post-creation callback.
func (s *LoanService) WithCreationObserver(observer CreationObserver) *LoanService {
	s.observer = observer
	return s
}

// CreateLoan validates the request, generates the amortized schedule and
// persists the loan together with all its installments in one transaction.
func (s *LoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, []*domain.ScheduledRepayment, error) {
	if err := s.validate.Struct(request); err != nil {
		return nil, nil, customError.WrapInvalidInput(err.Error())
	}

	processedAt, err := utils.ParseDate(request.ProcessedAt)
	if err != nil {
		return nil, nil, customError.WrapInvalidInput("processed_at must be an ISO-8601 calendar date")
	}

	// A base installment of zero would create unpayable zero-amount rows.
	if request.Amount/int64(request.Terms) == 0 {
		return nil, nil, customError.WrapInvalidInput("amount must be at least as large as terms")
	}

	loan := &domain.Loan{
		ID:                uuid.New(),
		UserID:            request.UserID,
		Amount:            request.Amount,
		Terms:             request.Terms,
		OutstandingAmount: request.Amount,
		CurrencyCode:      request.CurrencyCode,
		Status:            domain.LoanStatusDue,
		ProcessedAt:       processedAt,
	}

	installments := schedule.Generate(loan.ID, loan.Amount, loan.CurrencyCode, loan.Terms, loan.ProcessedAt)

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.LoanRepo.Create(ctx, loan); err != nil {
			return err
		}
		return s.ScheduleRepo.CreateBatch(ctx, installments)
	})
	if err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	if s.observer != nil {
		s.observer(loan, installments[len(installments)-1])
	}

	return loan, installments, nil
}

// GetLoan retrieves a loan by ID.
func (s *LoanService) GetLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.LoanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return loan, nil
}

// GetSchedule retrieves a loan's installments ordered by due date.
func (s *LoanService) GetSchedule(ctx context.Context, loanID uuid.UUID) ([]*domain.ScheduledRepayment, error) {
	if _, err := s.GetLoan(ctx, loanID); err != nil {
		return nil, err
	}

	installments, err := s.ScheduleRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return installments, nil
}

// ListRepayments retrieves the received repayments recorded against a loan.
func (s *LoanService) ListRepayments(ctx context.Context, loanID uuid.UUID) ([]*domain.ReceivedRepayment, error) {
	if _, err := s.GetLoan(ctx, loanID); err != nil {
		return nil, err
	}

	repayments, err := s.ReceivedRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return repayments, nil
}
