package tracker

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidInput covers malformed or missing fields, bad dates and bad limits.
	KindInvalidInput
	// KindNotFound covers unknown users and an empty user list.
	KindNotFound
	// KindConflict is a duplicate username.
	KindConflict
	// KindStorage is any failure of the underlying store.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage error"
	default:
		return "unknown"
	}
}

// Error is returned by every Service operation. Msg is safe to show to clients;
// Err keeps the underlying cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "Internal server error"
}

func invalidInput(msg string, cause error) error {
	return &Error{Kind: KindInvalidInput, Msg: msg, Err: cause}
}

func notFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func conflict(msg string, cause error) error {
	return &Error{Kind: KindConflict, Msg: msg, Err: cause}
}

func storage(msg string, cause error) error {
	return &Error{Kind: KindStorage, Msg: msg, Err: cause}
}
