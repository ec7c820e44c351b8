// Package errors provides structured error types for photowall.
//
// This package defines error codes and types that enable:
//   - Consistent exit behaviour in the CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Taxonomy
//
// Two failures are fatal for a run:
//   - [SourceEmptyError]: the source directory produced no candidates
//   - [CompositionError]: an image backend operation failed
//
// A candidate that is not an image is not an error at all; composers skip it.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "width must be >= 0, got %d", w)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle validation error
//	}
//
//	// Wrap a backend failure
//	err := errors.Composition("resize", cause)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeSourceEmpty   Code = "SOURCE_EMPTY"
	ErrCodeNoImages      Code = "NO_IMAGES"
	ErrCodeComposition   Code = "COMPOSITION_FAILED"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// coder is implemented by every error type of this package.
type coder interface {
	error
	ErrorCode() Code
}

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

// ErrorCode returns e.Code.
func (e *Error) ErrorCode() Code { return e.Code }

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

// SourceEmptyError is returned when a source directory has no entries.
type SourceEmptyError struct {
	Dir string
}

// Error implements the error interface.
func (e *SourceEmptyError) Error() string {
	return fmt.Sprintf("no file available in %s", e.Dir)
}

// ErrorCode returns ErrCodeSourceEmpty.
func (e *SourceEmptyError) ErrorCode() Code { return ErrCodeSourceEmpty }

// CompositionError is returned when an image operation fails. Op describes
// the attempted operation; for external tools it is the full command line.
type CompositionError struct {
	Op    string
	Cause error
}

// Composition wraps cause as a CompositionError for op.
// A cause that already is a CompositionError is returned unchanged.
func Composition(op string, cause error) error {
	var ce *CompositionError
	if errors.As(cause, &ce) {
		return cause
	}
	return &CompositionError{Op: op, Cause: cause}
}

// Error implements the error interface.
func (e *CompositionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("composition failed: %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("composition failed: %s", e.Op)
}

// Unwrap returns the underlying cause.
func (e *CompositionError) Unwrap() error { return e.Cause }

// ErrorCode returns ErrCodeComposition.
func (e *CompositionError) ErrorCode() Code { return ErrCodeComposition }

// Is reports whether err has the given error code.
// It unwraps the error chain looking for any error of this package with a
// matching code.
func Is(err error, code Code) bool {
	for err != nil {
		if c, ok := err.(coder); ok && c.ErrorCode() == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var c coder
	if errors.As(err, &c) {
		return c.ErrorCode()
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
