// Package domainerrors provides coded errors for the service layer.
//
// Stores return sentinel errors (pkg/platform/sentinel) describing facts about
// the data; services translate those into coded errors that the HTTP layer can
// map to a status without inspecting message text.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for boundary translation.
type Code string

const (
	// CodeValidation marks malformed or out-of-policy input.
	CodeValidation Code = "validation_error"
	// CodeNotFound marks a reference to an entity that does not exist.
	CodeNotFound Code = "not_found"
	// CodeInternal marks an unexpected failure not attributable to the caller.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. The zero value is not meaningful; construct
// through New or Wrap.
type Error struct {
	code Code
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Code returns the classification of the error.
func (e *Error) Code() Code { return e.code }

// Message returns the caller-facing detail without any wrapped cause.
func (e *Error) Message() string { return e.msg }

// New creates a coded error with a caller-facing message.
func New(code Code, msg string) error {
	return &Error{code: code, msg: msg}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/As chains.
func Wrap(err error, code Code, msg string) error {
	return &Error{code: code, msg: msg, err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain layer.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}
