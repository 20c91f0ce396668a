// Package errors provides structured error types for galaxy.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Reporting the iteration at which a generation run aborted
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input and configuration failures, detected before a run starts
//   - INDEX_OUT_OF_RANGE, NUMERIC_DEGENERACY: failures inside a running chain
//   - NOT_FOUND: Missing run records
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfiguration, "seed count must be positive, got %d", n)
//	if errors.Is(err, errors.ErrCodeConfiguration) {
//	    // Handle validation error
//	}
//
//	// Attach the iteration index to a failure inside the loop
//	return errors.AtIteration(i, errors.New(errors.ErrCodeNumericDegeneracy, "zero length input"))
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidState  Code = "INVALID_STATE"

	// Generation errors, fatal to the run they occur in
	ErrCodeIndex             Code = "INDEX_OUT_OF_RANGE"
	ErrCodeNumericDegeneracy Code = "NUMERIC_DEGENERACY"

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

// IterationError records the iteration at which a generation run aborted.
// Points emitted before Iteration remain valid.
type IterationError struct {
	Iteration int
	Err       error
}

// AtIteration wraps err with the iteration index. It returns nil for a nil err.
func AtIteration(i int, err error) error {
	if err == nil {
		return nil
	}
	return &IterationError{Iteration: i, Err: err}
}

// Error implements the error interface.
func (e *IterationError) Error() string {
	return fmt.Sprintf("iteration %d: %v", e.Iteration, e.Err)
}

// Unwrap returns the wrapped error.
func (e *IterationError) Unwrap() error { return e.Err }

// IterationOf returns the iteration index recorded in err's chain.
func IterationOf(err error) (int, bool) {
	var e *IterationError
	if errors.As(err, &e) {
		return e.Iteration, true
	}
	return 0, false
}
