// Package apperr classifies the failures raised by the domain services so the
// HTTP boundary can translate them without knowing where they came from.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the failure class of an error.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindValidation   Kind = "validation"
)

// Sentinels usable with errors.Is against any *Error of the same kind.
var (
	ErrNotFound     = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrConflict     = &Error{Kind: KindConflict, Msg: "conflict"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Msg: "unauthorized"}
	ErrForbidden    = &Error{Kind: KindForbidden, Msg: "forbidden"}
	ErrValidation   = &Error{Kind: KindValidation, Msg: "validation failed"}
)

// Error is a classified failure.
type Error struct {
	Kind Kind
	// Op is the operation that failed, e.g. "invoice.Create".
	Op  string
	Msg string
	Err error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// NotFound reports a missing entity.
func NotFound(entity string) error {
	return &Error{Kind: KindNotFound, Msg: entity + " not found"}
}

// Conflict reports a duplicate unique field.
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Unauthorized reports missing or invalid credentials.
func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Forbidden reports an authenticated actor failing the ownership gate.
func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

// Validation reports malformed or out-of-range input.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// WithOp annotates a classified error with the operation that raised it.
// Unclassified errors and errors already carrying an operation are returned
// unchanged.
func WithOp(op string, err error) error {
	var e *Error
	if !errors.As(err, &e) || e.Op != "" {
		return err
	}

	if direct, ok := err.(*Error); ok {
		return &Error{Kind: direct.Kind, Op: op, Msg: direct.Msg, Err: direct.Err}
	}

	return &Error{Kind: e.Kind, Op: op, Msg: err.Error()}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}

	return "", false
}
