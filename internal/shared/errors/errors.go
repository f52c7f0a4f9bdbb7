// Package errors provides application-level error types and utilities.
// It defines the error kinds surfaced by the core: validation, not found,
// conflict, domain, precondition failed, cancelled and internal errors.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "validation_error"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeConflict           ErrorType = "conflict"
	ErrorTypeDomain             ErrorType = "domain_error"
	ErrorTypePreconditionFailed ErrorType = "precondition_failed"
	ErrorTypeCancelled          ErrorType = "cancelled"
	ErrorTypeInternal           ErrorType = "internal_error"
)

// StatusClientClosedRequest is the non-standard status used for cancelled requests.
const StatusClientClosedRequest = 499

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
	Fields  []string  `json:"fields,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(errType ErrorType, code int, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details...)
}

// NewValidationErrorWithFields creates a validation error carrying field-level issues.
func NewValidationErrorWithFields(message string, fields []string) *AppError {
	err := newAppError(ErrorTypeValidation, http.StatusBadRequest, message)
	err.Fields = fields
	if len(fields) > 0 {
		err.Details = strings.Join(fields, "; ")
	}
	return err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details...)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details...)
}

// NewDomainError creates an error for operations forbidden by domain invariants,
// such as writing to an archived subscription.
func NewDomainError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeDomain, http.StatusUnprocessableEntity, message, details...)
}

// NewPreconditionFailedError creates an error for operations blocked by the
// state of a referenced entity.
func NewPreconditionFailedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypePreconditionFailed, http.StatusPreconditionFailed, message, details...)
}

// NewCancelledError creates an error for caller-cancelled or deadline-tripped operations.
func NewCancelledError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeCancelled, StatusClientClosedRequest, message, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details...)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeConflict
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNotFound
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeValidation
}

// IsDomainError checks if the error is a domain invariant error
func IsDomainError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeDomain
}

// IsCancelledError checks if the error is a cancellation error
func IsCancelledError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeCancelled
}

// FromContextError maps context cancellation and deadline errors to the
// Cancelled kind. Returns nil when err is not a context error.
func FromContextError(err error) *AppError {
	if errors.Is(err, context.Canceled) {
		return NewCancelledError("operation cancelled by caller")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewCancelledError("operation deadline exceeded")
	}
	return nil
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	// SQLite unique violation
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	return false
}
