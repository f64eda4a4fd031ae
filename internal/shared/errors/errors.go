package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for different domains
type ErrorType string

const (
	ErrorTypeDomain         ErrorType = "DOMAIN_ERROR"
	ErrorTypeValidation     ErrorType = "VALIDATION_ERROR"
	ErrorTypeInfrastructure ErrorType = "INFRASTRUCTURE_ERROR"
	ErrorTypeAuthentication ErrorType = "AUTHENTICATION_ERROR"
	ErrorTypeNotFound       ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeConflict       ErrorType = "CONFLICT_ERROR"
	ErrorTypeInternal       ErrorType = "INTERNAL_ERROR"
)

// Common application errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")
	ErrConflict       = errors.New("resource conflict")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
)

// Sync-specific errors
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrSyncAlreadyActive = errors.New("sync already active for account")
	ErrRetriesExhausted  = errors.New("remote search retries exhausted")
	ErrInvalidFilterRule = errors.New("invalid meeting filter rule")
	ErrQueueUnavailable  = errors.New("action queue unavailable")
)

// AppError represents a custom application error with context
type AppError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	HTTPCode  int                    `json:"-"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Component string                 `json:"component,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string, httpCode int) *AppError {
	return &AppError{
		Type:     errorType,
		Message:  message,
		HTTPCode: httpCode,
		Details:  make(map[string]interface{}),
	}
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithComponent adds the component name
func (e *AppError) WithComponent(component string) *AppError {
	e.Component = component
	return e
}

// WithDetail adds a detail field
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Common error constructors

// NewDomainError creates a domain-specific error
func NewDomainError(message string) *AppError {
	return NewAppError(ErrorTypeDomain, message, http.StatusBadRequest)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message, http.StatusBadRequest)
}

// NewInfrastructureError creates an infrastructure error
func NewInfrastructureError(message string) *AppError {
	return NewAppError(ErrorTypeInfrastructure, message, http.StatusInternalServerError)
}

// NewAuthenticationError creates an authentication error
func NewAuthenticationError(message string) *AppError {
	return NewAppError(ErrorTypeAuthentication, message, http.StatusUnauthorized)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return NewAppError(ErrorTypeConflict, message, http.StatusConflict)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, message, http.StatusInternalServerError)
}

// Helper functions for common error scenarios

// WrapError wraps an error with context
func WrapError(err error, message string) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeNotFound
	}
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrAccountNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeValidation
	}
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidFilterRule)
}

// IsAuthentication checks if an error is an authentication error
func IsAuthentication(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeAuthentication
	}
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenExpired)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeConflict
	}
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrSyncAlreadyActive)
}
