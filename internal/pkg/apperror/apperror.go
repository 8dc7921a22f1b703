package apperror

import (
	"errors"
	"fmt"
)

// Error kinds. Domain errors wrap exactly one of these so the transport layer
// can classify them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidRange    = errors.New("invalid range")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Error is a domain error tagged with a kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New returns a domain error of the given kind.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with a formatted message.
func Newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind wrapped by err, or nil for unclassified errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrConflict, ErrForbidden, ErrInvalidRange, ErrUnauthenticated} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
