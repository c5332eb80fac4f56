// Package errors provides domain-specific error types for frontdoor-ipgroup-updater.
//
// Every pipeline stage reports failures as an *Error carrying an ErrorCode, so
// the orchestrator can decide between terminal and recoverable outcomes
// without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeConfig indicates a configuration loading error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeAuth indicates the identity provider refused to issue a token.
	ErrCodeAuth ErrorCode = "AUTH_ERROR"

	// ErrCodeSource indicates the vendor prefix list could not be retrieved or located.
	ErrCodeSource ErrorCode = "SOURCE_ERROR"

	// ErrCodeValidation indicates a configuration validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeThreshold indicates the classified prefix list is smaller than the configured minimum.
	ErrCodeThreshold ErrorCode = "THRESHOLD_ERROR"

	// ErrCodeResource indicates a failed read or write of the target IP group.
	ErrCodeResource ErrorCode = "RESOURCE_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Details holds structured context (provider error codes, HTTP status...).
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail attaches a key/value pair to the error and returns it.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Detail returns a previously attached detail or an empty string.
func (e *Error) Detail(key string) string {
	return e.Details[key]
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or an empty code.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err's chain contains an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	return stderrors.Is(err, &Error{Code: code})
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewAuthError creates a new authentication error.
func NewAuthError(message string, cause error) *Error {
	return Wrap(ErrCodeAuth, message, cause)
}

// NewSourceError creates a new source list error.
func NewSourceError(message string, cause error) *Error {
	return Wrap(ErrCodeSource, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewThresholdError creates a new below-threshold error.
func NewThresholdError(message string) *Error {
	return New(ErrCodeThreshold, message)
}

// NewResourceError creates a new IP group read/write error.
func NewResourceError(message string, cause error) *Error {
	return Wrap(ErrCodeResource, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
