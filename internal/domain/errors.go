package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common domain error codes
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConfiguration      = "CONFIGURATION_ERROR"
	ErrCodeBatchLimitExceeded = "BATCH_LIMIT_EXCEEDED"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(message, details string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidInput,
		Message: message,
		Details: details,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, key string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Details: key,
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message, details string) *DomainError {
	return &DomainError{
		Code:    ErrCodeConfiguration,
		Message: message,
		Details: details,
	}
}

// NewBatchLimitExceededError creates a new batch limit exceeded error
func NewBatchLimitExceededError(size, limit int) *DomainError {
	return &DomainError{
		Code:    ErrCodeBatchLimitExceeded,
		Message: "batch size exceeds configured maximum",
		Details: fmt.Sprintf("requested: %d, limit: %d", size, limit),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// GetDomainError extracts a domain error from an error chain
func GetDomainError(err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}

// HasCode reports whether err carries the given domain error code
func HasCode(err error, code string) bool {
	de := GetDomainError(err)
	return de != nil && de.Code == code
}
