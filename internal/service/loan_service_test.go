package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/praditya/loan-ledger/internal/domain"
	"github.com/praditya/loan-ledger/internal/service"
	customError "github.com/praditya/loan-ledger/pkg/errors"
	"github.com/praditya/loan-ledger/tests/mocks"
)

func newService(loanRepo *mocks.MockLoanRepository, scheduleRepo *mocks.MockScheduleRepository, receivedRepo *mocks.MockReceivedRepository) *service.LoanService {
	return service.NewLoanService(
		loanRepo,
		scheduleRepo,
		receivedRepo,
		mocks.PassthroughTxRunner{},
		mocks.NoopLocker{},
		10*time.Second,
	)
}

func TestCreateLoan(t *testing.T) {
	tests := []struct {
		name           string
		request        *domain.CreateLoanRequest
		setupMocks     func(*mocks.MockLoanRepository, *mocks.MockScheduleRepository)
		expectedCode   string
		validateResult func(*testing.T, *domain.Loan, []*domain.ScheduledRepayment)
	}{
		{
			name: "Success - remainder absorbed by last installment",
			request: &domain.CreateLoanRequest{
				UserID:       "user-1",
				Amount:       10000,
				CurrencyCode: "IDR",
				Terms:        3,
				ProcessedAt:  "2022-01-20",
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository, scheduleRepo *mocks.MockScheduleRepository) {
				loanRepo.On("Create", mock.Anything, mock.MatchedBy(func(loan *domain.Loan) bool {
					return loan.Amount == 10000 && loan.OutstandingAmount == 10000 && loan.Status == domain.LoanStatusDue
				})).Return(nil)
				scheduleRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(installments []*domain.ScheduledRepayment) bool {
					return len(installments) == 3
				})).Return(nil)
			},
			validateResult: func(t *testing.T, loan *domain.Loan, installments []*domain.ScheduledRepayment) {
				require.Len(t, installments, 3)
				assert.Equal(t, int64(3333), installments[0].Amount)
				assert.Equal(t, int64(3333), installments[1].Amount)
				assert.Equal(t, int64(3334), installments[2].Amount)
				assert.Equal(t, "2022-02-20", installments[0].DueDate.Format("2006-01-02"))
				assert.Equal(t, "2022-03-20", installments[1].DueDate.Format("2006-01-02"))
				assert.Equal(t, "2022-04-20", installments[2].DueDate.Format("2006-01-02"))
				assert.Equal(t, domain.LoanStatusDue, loan.Status)
				assert.Equal(t, int64(10000), loan.OutstandingAmount)
			},
		},
		{
			name: "Success - evenly divisible amount needs no adjustment",
			request: &domain.CreateLoanRequest{
				UserID:       "user-2",
				Amount:       9000,
				CurrencyCode: "EUR",
				Terms:        4,
				ProcessedAt:  "2022-03-15",
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository, scheduleRepo *mocks.MockScheduleRepository) {
				loanRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				scheduleRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
			},
			validateResult: func(t *testing.T, loan *domain.Loan, installments []*domain.ScheduledRepayment) {
				require.Len(t, installments, 4)
				var sum int64
				for _, inst := range installments {
					assert.Equal(t, int64(2250), inst.Amount)
					sum += inst.Amount
				}
				assert.Equal(t, int64(9000), sum)
			},
		},
		{
			name: "Success - single term gets the full amount",
			request: &domain.CreateLoanRequest{
				UserID:       "user-3",
				Amount:       5000,
				CurrencyCode: "IDR",
				Terms:        1,
				ProcessedAt:  "2022-01-31",
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository, scheduleRepo *mocks.MockScheduleRepository) {
				loanRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				scheduleRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
			},
			validateResult: func(t *testing.T, loan *domain.Loan, installments []*domain.ScheduledRepayment) {
				require.Len(t, installments, 1)
				assert.Equal(t, int64(5000), installments[0].Amount)
				assert.Equal(t, "2022-02-28", installments[0].DueDate.Format("2006-01-02"))
			},
		},
		{
			name: "Failure - non-positive amount",
			request: &domain.CreateLoanRequest{
				UserID:       "user-4",
				Amount:       0,
				CurrencyCode: "IDR",
				Terms:        3,
				ProcessedAt:  "2022-01-20",
			},
			setupMocks:   func(*mocks.MockLoanRepository, *mocks.MockScheduleRepository) {},
			expectedCode: customError.ErrCodeInvalidInput,
		},
		{
			name: "Failure - non-positive terms",
			request: &domain.CreateLoanRequest{
				UserID:       "user-5",
				Amount:       10000,
				CurrencyCode: "IDR",
				Terms:        0,
				ProcessedAt:  "2022-01-20",
			},
			setupMocks:   func(*mocks.MockLoanRepository, *mocks.MockScheduleRepository) {},
			expectedCode: customError.ErrCodeInvalidInput,
		},
		{
			name: "Failure - terms larger than amount",
			request: &domain.CreateLoanRequest{
				UserID:       "user-6",
				Amount:       3,
				CurrencyCode: "IDR",
				Terms:        5,
				ProcessedAt:  "2022-01-20",
			},
			setupMocks:   func(*mocks.MockLoanRepository, *mocks.MockScheduleRepository) {},
			expectedCode: customError.ErrCodeInvalidInput,
		},
		{
			name: "Failure - unparsable date",
			request: &domain.CreateLoanRequest{
				UserID:       "user-7",
				Amount:       10000,
				CurrencyCode: "IDR",
				Terms:        3,
				ProcessedAt:  "20-01-2022",
			},
			setupMocks:   func(*mocks.MockLoanRepository, *mocks.MockScheduleRepository) {},
			expectedCode: customError.ErrCodeInvalidInput,
		},
		{
			name: "Failure - empty currency",
			request: &domain.CreateLoanRequest{
				UserID:       "user-8",
				Amount:       10000,
				CurrencyCode: "",
				Terms:        3,
				ProcessedAt:  "2022-01-20",
			},
			setupMocks:   func(*mocks.MockLoanRepository, *mocks.MockScheduleRepository) {},
			expectedCode: customError.ErrCodeInvalidInput,
		},
		{
			name: "Failure - persistence error surfaces unretried",
			request: &domain.CreateLoanRequest{
				UserID:       "user-9",
				Amount:       10000,
				CurrencyCode: "IDR",
				Terms:        3,
				ProcessedAt:  "2022-01-20",
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository, scheduleRepo *mocks.MockScheduleRepository) {
				loanRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
			},
			expectedCode: customError.ErrCodeDatabaseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanRepo := &mocks.MockLoanRepository{}
			scheduleRepo := &mocks.MockScheduleRepository{}
			receivedRepo := &mocks.MockReceivedRepository{}
			tt.setupMocks(loanRepo, scheduleRepo)

			svc := newService(loanRepo, scheduleRepo, receivedRepo)

			loan, installments, err := svc.CreateLoan(context.Background(), tt.request)

			if tt.expectedCode != "" {
				require.Error(t, err)
				var businessErr *customError.BusinessError
				require.ErrorAs(t, err, &businessErr)
				assert.Equal(t, tt.expectedCode, businessErr.Code)
				assert.Nil(t, loan)
				assert.Nil(t, installments)
			} else {
				require.NoError(t, err)
				tt.validateResult(t, loan, installments)
			}

			loanRepo.AssertExpectations(t)
			scheduleRepo.AssertExpectations(t)
		})
	}
}

func TestCreateLoanInvokesObserver(t *testing.T) {
	loanRepo := &mocks.MockLoanRepository{}
	scheduleRepo := &mocks.MockScheduleRepository{}
	receivedRepo := &mocks.MockReceivedRepository{}

	loanRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	scheduleRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	var observedLast *domain.ScheduledRepayment
	svc := newService(loanRepo, scheduleRepo, receivedRepo).
		WithCreationObserver(func(loan *domain.Loan, last *domain.ScheduledRepayment) {
			observedLast = last
		})

	_, installments, err := svc.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		UserID:       "user-1",
		Amount:       10000,
		CurrencyCode: "IDR",
		Terms:        3,
		ProcessedAt:  "2022-01-20",
	})

	require.NoError(t, err)
	require.NotNil(t, observedLast)
	assert.Equal(t, installments[2].ID, observedLast.ID)
	assert.Equal(t, int64(3334), observedLast.Amount)
}

func TestCreateLoanObserverNotInvokedOnFailure(t *testing.T) {
	loanRepo := &mocks.MockLoanRepository{}
	scheduleRepo := &mocks.MockScheduleRepository{}
	receivedRepo := &mocks.MockReceivedRepository{}

	loanRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	invoked := false
	svc := newService(loanRepo, scheduleRepo, receivedRepo).
		WithCreationObserver(func(*domain.Loan, *domain.ScheduledRepayment) {
			invoked = true
		})

	_, _, err := svc.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		UserID:       "user-1",
		Amount:       10000,
		CurrencyCode: "IDR",
		Terms:        3,
		ProcessedAt:  "2022-01-20",
	})

	require.Error(t, err)
	assert.False(t, invoked)
}
