// Package errors provides structured error types for planforge.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// Codes are only used at the boundaries (flags, request bodies, spec
// files). The layout and drawing core degrades softly instead of failing,
// and validation findings are warnings, not errors.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Resource not found
//   - CANCELED: The request was superseded or canceled
//   - INTERNAL_ERROR: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCountry, "unknown country code: %s", code)
//	if errors.Is(err, errors.ErrCodeInvalidCountry) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidSpec, origErr, "read %s", path)
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidBuildingType Code = "INVALID_BUILDING_TYPE"
	ErrCodeInvalidCountry      Code = "INVALID_COUNTRY"
	ErrCodeInvalidFormat       Code = "INVALID_FORMAT"
	ErrCodeInvalidScale        Code = "INVALID_SCALE"
	ErrCodeInvalidRoom         Code = "INVALID_ROOM"
	ErrCodeInvalidSpec         Code = "INVALID_SPEC"

	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeCanceled Code = "CANCELED"
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// UserMessage returns the message shown to a person: the message and its
// cause, without the code prefix. Errors without a code are returned as is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return e.Message
}

// statuses maps codes to HTTP statuses. Codes missing here are internal.
var statuses = map[Code]int{
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeInvalidBuildingType: http.StatusBadRequest,
	ErrCodeInvalidCountry:      http.StatusBadRequest,
	ErrCodeInvalidFormat:       http.StatusBadRequest,
	ErrCodeInvalidScale:        http.StatusBadRequest,
	ErrCodeInvalidRoom:         http.StatusBadRequest,
	ErrCodeInvalidSpec:         http.StatusBadRequest,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeCanceled:            http.StatusConflict,
}

// HTTPStatus maps an error to a response status.
func HTTPStatus(err error) int {
	if status, ok := statuses[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ExitCode maps an error to a process exit status: 0 for nil, 2 for bad
// input (as for a usage error), 130 for cancellation and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled) || Is(err, ErrCodeCanceled):
		return 130
	case HTTPStatus(err) == http.StatusBadRequest:
		return 2
	}
	return 1
}
