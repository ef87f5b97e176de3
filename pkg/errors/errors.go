package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrNoDueInstallment = errors.New("no due scheduled repayment found")
	ErrLockNotAcquired  = errors.New("loan is locked by another operation")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeLoanNotFound     = "LOAN_NOT_FOUND"
	ErrCodeNoDueInstallment = "NO_DUE_INSTALLMENT"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeLockError        = "LOCK_ERROR"
)

// Wrap common errors with business context

func WrapInvalidInput(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		reason,
		ErrInvalidInput,
	)
}

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapNoDueInstallment(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNoDueInstallment,
		fmt.Sprintf("Loan with ID %s has no scheduled repayment in due status", loanID),
		ErrNoDueInstallment,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapLockError(loanID string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeLockError,
		fmt.Sprintf("could not acquire lock for loan %s", loanID),
		err,
	)
}
