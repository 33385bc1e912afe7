// Package errors provides structured error types for the wordcloud application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, HTTP API and the render loop
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure taxonomy of the cloud core:
//   - STORAGE_CORRUPT: durable data failed structural validation (recovered, never fatal)
//   - STORAGE_UNAVAILABLE: a durable write failed (surfaced as a warning)
//   - INVALID_COMMAND: a command could not be applied (e.g. an empty label)
//   - INVALID_*: input, config and format validation failures
//
// A word that does not fit on the canvas is not an error: layouts report it in
// their Unplaced list.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCommand, "label cannot be empty")
//	if errors.Is(err, errors.ErrCodeInvalidCommand) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorageUnavailable, origErr, "save %s", key)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Storage errors
	ErrCodeStorageCorrupt     Code = "STORAGE_CORRUPT"
	ErrCodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"

	// Command and input validation errors
	ErrCodeInvalidCommand Code = "INVALID_COMMAND"
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsWarning reports whether err is a degraded-but-running condition rather than
// a failed operation. Storage write failures leave the in-memory state
// authoritative, so callers may log and continue.
func IsWarning(err error) bool {
	return Is(err, ErrCodeStorageUnavailable) || Is(err, ErrCodeStorageCorrupt)
}

// HTTPStatus maps an error to the HTTP status code used by the API.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidCommand, ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
