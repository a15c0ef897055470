package errorz

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrLocked         = errors.New("locked")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotImplemented = errors.New("not implemented")
	ErrStorage        = errors.New("storage failure")
)

// Error carries a client-facing message next to one of the sentinel kinds above.
// The optional Err is the underlying cause and is never shown to clients.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

func Locked(format string, args ...any) error {
	return &Error{Kind: ErrLocked, Msg: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return &Error{Kind: ErrUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Msg: fmt.Sprintf(format, args...)}
}

func NotImplemented(format string, args ...any) error {
	return &Error{Kind: ErrNotImplemented, Msg: fmt.Sprintf(format, args...)}
}

// Storage wraps a driver error. The client-facing message stays generic.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &Error{Kind: ErrStorage, Msg: op + " failed", Err: err}
}

// Message returns the client-facing text of err. Untyped errors are reported
// as internal so driver details never reach a response body.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrLocked, ErrUnauthorized, ErrForbidden, ErrNotImplemented} {
		if errors.Is(err, kind) {
			return err.Error()
		}
	}
	return "internal error"
}
