package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the stable machine-readable error code returned to clients.
type Kind string

const (
	KindValidation    Kind = "validation_error"
	KindNotFound      Kind = "not_found"
	KindAuthorization Kind = "authorization_error"
	KindConflict      Kind = "conflict"
	KindDownstream    Kind = "downstream_error"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Authorization(format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Downstream marks a side-effect failure (invoicing, cleaning,
// notifications). These are logged by the caller and never returned to
// HTTP clients.
func Downstream(message string, err error) *Error {
	return &Error{Kind: KindDownstream, Message: message, Err: err}
}

// Wrap keeps the kind of the outer error while recording a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsValidation(err error) bool    { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool      { return KindOf(err) == KindNotFound }
func IsAuthorization(err error) bool { return KindOf(err) == KindAuthorization }
func IsConflict(err error) bool      { return KindOf(err) == KindConflict }
func IsDownstream(err error) bool    { return KindOf(err) == KindDownstream }
