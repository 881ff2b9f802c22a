// Package errors provides structured error types for sketchnote.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so callers can branch on the failure class without string matching:
//   - INVALID_*: rejected input (SVG markup, image bytes, bounds, formats)
//   - UNKNOWN_KEY, TYPE_MISMATCH, INDEX_OUT_OF_RANGE: settings and palette sync
//   - NOT_FOUND, IO_ERROR: storage backends
//   - RENDER_FAILED, INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSVG, "no <svg> root element")
//	if errors.Is(err, errors.ErrCodeInvalidSVG) {
//	    // reject the import
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
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
	ErrCodeInvalidSVG    Code = "INVALID_SVG"
	ErrCodeInvalidImage  Code = "INVALID_IMAGE"
	ErrCodeInvalidBounds Code = "INVALID_BOUNDS"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Settings errors
	ErrCodeUnknownKey      Code = "UNKNOWN_KEY"
	ErrCodeTypeMismatch    Code = "TYPE_MISMATCH"
	ErrCodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"

	// Storage errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeIO       Code = "IO_ERROR"

	// Rendering and internal errors
	ErrCodeRender      Code = "RENDER_FAILED"
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

// OutOfRange reports an index that falls outside a fixed-size sequence,
// such as a color palette shorter than the tuple it is packed into.
func OutOfRange(what string, index, length int) *Error {
	return New(ErrCodeIndexOutOfRange, "%s: index %d out of range for length %d", what, index, length)
}

// TypeMismatch reports a value whose type does not match what was expected
// for key.
func TypeMismatch(key string, want string, got any) *Error {
	return New(ErrCodeTypeMismatch, "%s: expected %s, got %T", key, want, got)
}
