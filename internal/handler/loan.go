package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/praditya/loan-ledger/internal/domain"
	customError "github.com/praditya/loan-ledger/pkg/errors"
	"github.com/praditya/loan-ledger/pkg/response"
)

// LedgerService is the core surface the HTTP layer talks to.
type LedgerService interface {
	CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, []*domain.ScheduledRepayment, error)
	RepayLoan(ctx context.Context, loanID uuid.UUID, request *domain.RepayLoanRequest) (*domain.ReceivedRepayment, error)
	GetLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	GetSchedule(ctx context.Context, loanID uuid.UUID) ([]*domain.ScheduledRepayment, error)
	ListRepayments(ctx context.Context, loanID uuid.UUID) ([]*domain.ReceivedRepayment, error)
}

type LoanHandler struct {
	service LedgerService
}

func NewLoanHandler(service LedgerService) *LoanHandler {
	return &LoanHandler{service: service}
}

// CreateLoan handles POST /api/v1/loans
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, customError.ErrCodeInvalidInput, "invalid request body")
		return
	}

	loan, installments, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, domain.CreateLoanResponse{
		Loan:     loan,
		Schedule: installments,
	})
}

// GetLoan handles GET /api/v1/loans/{loanId}
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, ok := loanIDFrom(w, r)
	if !ok {
		return
	}

	loan, err := h.service.GetLoan(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.LoanResponse{
		Loan:        loan,
		Principal:   loan.Principal().String(),
		Outstanding: loan.Outstanding().String(),
	})
}

// GetSchedule handles GET /api/v1/loans/{loanId}/schedule
func (h *LoanHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	loanID, ok := loanIDFrom(w, r)
	if !ok {
		return
	}

	installments, err := h.service.GetSchedule(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{
		LoanID:   loanID,
		Schedule: installments,
	})
}

// RepayLoan handles POST /api/v1/loans/{loanId}/repayments
func (h *LoanHandler) RepayLoan(w http.ResponseWriter, r *http.Request) {
	loanID, ok := loanIDFrom(w, r)
	if !ok {
		return
	}

	var request domain.RepayLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, customError.ErrCodeInvalidInput, "invalid request body")
		return
	}

	received, err := h.service.RepayLoan(r.Context(), loanID, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, received)
}

// ListRepayments handles GET /api/v1/loans/{loanId}/repayments
func (h *LoanHandler) ListRepayments(w http.ResponseWriter, r *http.Request) {
	loanID, ok := loanIDFrom(w, r)
	if !ok {
		return
	}

	repayments, err := h.service.ListRepayments(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, repayments)
}

func loanIDFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	loanID, err := uuid.Parse(mux.Vars(r)["loanId"])
	if err != nil {
		response.BadRequest(w, customError.ErrCodeInvalidInput, "loanId must be a valid UUID")
		return uuid.Nil, false
	}
	return loanID, true
}

func writeError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, err.Error())
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeInvalidInput:
		response.BadRequest(w, businessErr.Code, businessErr.Message)
	case customError.ErrCodeLoanNotFound:
		response.NotFound(w, businessErr.Code, businessErr.Message)
	case customError.ErrCodeNoDueInstallment:
		response.UnprocessableEntity(w, businessErr.Code, businessErr.Message)
	case customError.ErrCodeLockError:
		response.Conflict(w, businessErr.Code, businessErr.Message)
	default:
		response.InternalServerError(w, businessErr.Message)
	}
}
