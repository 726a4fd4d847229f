// Package apperr provides the structured error type shared by the SagaScape packages.
//
// Every domain failure carries a machine-readable Code so callers can branch on
// the kind of failure without matching message text:
//
//	if apperr.Is(err, apperr.CodeInvalidArgument) {
//	    // malformed 2-D point
//	}
package apperr

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// CodeInvalidArgument is returned synchronously for malformed 2-D points.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeValidationFailure is returned by caller-invoked shape assertions.
	CodeValidationFailure Code = "VALIDATION_FAILURE"
	CodeInvalidConfig     Code = "INVALID_CONFIG"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

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

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code, or "" for foreign errors.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
