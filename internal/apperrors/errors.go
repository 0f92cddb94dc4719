package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrCurrencyMismatch indicates arithmetic between two monetary values of
// different commodities without going through a recorded price.
var ErrCurrencyMismatch = errors.New("commodity mismatch")

// ErrInvalidHierarchy indicates an account tree operation that would delete or
// reparent the root account, or introduce a cycle.
var ErrInvalidHierarchy = errors.New("invalid account hierarchy")

// ErrUnbalanced indicates a transaction whose split values do not sum to zero
// and for which no imbalance split could be created.
var ErrUnbalanced = errors.New("transaction does not balance")

// ErrConversionUnavailable indicates that no price exists for a required
// commodity pair.
var ErrConversionUnavailable = errors.New("no conversion price available")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a numeric code and a message alongside the wrapped cause.
// Repositories use it to attach context to storage failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches ErrValidation via errors.Is.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
