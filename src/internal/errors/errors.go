// Package errors provides domain-specific error types for blocklist-sync.
//
// Every fatal condition of a run is reported as an *Error carrying an
// ErrorCode, so callers can tell fetch failures from I/O failures with
// errors.Is without matching on message text.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeConnection indicates that a source could not be reached or its body could not be read.
	ErrCodeConnection ErrorCode = "CONNECTION_ERROR"

	// ErrCodeTimeout indicates that a source did not answer within its timeout.
	ErrCodeTimeout ErrorCode = "TIMEOUT_ERROR"

	// ErrCodeHTTPStatus indicates that a source answered with a non-success HTTP status.
	ErrCodeHTTPStatus ErrorCode = "HTTP_STATUS_ERROR"

	// ErrCodeCanceled indicates that a fetch was abandoned because the run was cancelled.
	ErrCodeCanceled ErrorCode = "CANCELED"

	// ErrCodeIO indicates a filesystem error while reading or replacing the destination.
	ErrCodeIO ErrorCode = "IO_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks. Matching is done by code only.
var (
	ErrConnection = New(ErrCodeConnection, "connection error")
	ErrTimeout    = New(ErrCodeTimeout, "timeout")
	ErrHTTPStatus = New(ErrCodeHTTPStatus, "unexpected HTTP status")
	ErrCanceled   = New(ErrCodeCanceled, "canceled")
	ErrIO         = New(ErrCodeIO, "I/O error")
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
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

// HTTPStatusError is the cause of an ErrCodeHTTPStatus error.
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("HTTP status %s", e.Status)
	}
	return fmt.Sprintf("HTTP status %d", e.StatusCode)
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

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewConnectionError creates a new connection error for a source.
func NewConnectionError(message string, cause error) *Error {
	return Wrap(ErrCodeConnection, message, cause)
}

// NewTimeoutError creates a new timeout error for a source.
func NewTimeoutError(message string, cause error) *Error {
	return Wrap(ErrCodeTimeout, message, cause)
}

// NewHTTPStatusError creates an error for a non-success HTTP answer.
func NewHTTPStatusError(message string, statusCode int, status string) *Error {
	return Wrap(ErrCodeHTTPStatus, message, &HTTPStatusError{StatusCode: statusCode, Status: status})
}

// NewCanceledError creates an error for a fetch abandoned on cancellation.
func NewCanceledError(message string, cause error) *Error {
	return Wrap(ErrCodeCanceled, message, cause)
}

// NewIOError creates a new filesystem error.
func NewIOError(message string, cause error) *Error {
	return Wrap(ErrCodeIO, message, cause)
}

// IsFetchError reports whether err is a connection, timeout or HTTP status error.
func IsFetchError(err error) bool {
	return stderrors.Is(err, ErrConnection) ||
		stderrors.Is(err, ErrTimeout) ||
		stderrors.Is(err, ErrHTTPStatus)
}

// CodeOf returns the code of the outermost *Error in err's chain, or
// ErrCodeInternal if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
