package apperrors

import (
	"errors"
	"fmt"
)

// Error categories. Every specific error below wraps exactly one of these so callers
// can branch on the category with errors.Is.
var (
	// ErrValidation indicates that input data failed validation checks. Nothing was mutated.
	ErrValidation = errors.New("validation error")

	// ErrState indicates the requested transition is not allowed from the current lifecycle state.
	ErrState = errors.New("invalid state")

	// ErrIntegrity indicates the operation would break referential integrity.
	ErrIntegrity = errors.New("integrity violation")

	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrFault indicates an unexpected storage failure. It is opaque and retryable.
	ErrFault = errors.New("storage fault")
)

// Validation errors.
var (
	ErrUnbalanced     = fmt.Errorf("%w: journal entry debits and credits do not balance", ErrValidation)
	ErrInvalidLine    = fmt.Errorf("%w: invalid journal line", ErrValidation)
	ErrDuplicateCode  = fmt.Errorf("%w: account code already exists", ErrValidation)
	ErrInvalidType    = fmt.Errorf("%w: invalid account type", ErrValidation)
	ErrInvalidCode    = fmt.Errorf("%w: account code must contain only digits", ErrValidation)
	ErrUnknownAccount = fmt.Errorf("%w: unknown account", ErrValidation)
)

// ErrInvalidStatus is returned when a journal entry is not in the status the transition requires.
var ErrInvalidStatus = fmt.Errorf("%w: journal entry status does not allow this operation", ErrState)

// ErrHasActivity is returned when deleting an account that is referenced by the general ledger.
var ErrHasActivity = fmt.Errorf("%w: account has ledger activity", ErrIntegrity)

// ErrHasChildren is returned when deleting an account that other accounts name as parent.
var ErrHasChildren = fmt.Errorf("%w: account has child accounts", ErrIntegrity)

// AppError carries a status code alongside a wrapped cause. Storage adapters use it to
// report faults; it always matches ErrFault.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is makes every AppError match ErrFault.
func (e *AppError) Is(target error) bool {
	return target == ErrFault
}
