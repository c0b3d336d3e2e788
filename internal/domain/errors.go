package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the API layer can pick a status code
type Kind int

const (
	KindValidation  Kind = iota + 1 // Malformed, missing or out-of-range input
	KindNotFound                    // Referenced entity is absent
	KindForbidden                   // Authenticated but not permitted
	KindConflict                    // Duplicate email or review
	KindPersistence                 // Store-level failure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// Error is the single error type surfaced by the domain and the facade.
// Sentinels below match any Error of the same kind through errors.Is.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrForbidden   = &Error{Kind: KindForbidden}
	ErrConflict    = &Error{Kind: KindConflict}
	ErrPersistence = &Error{Kind: KindPersistence}
)

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Persistence wraps a store failure with the operation that hit it
func Persistence(op string, err error) error {
	return &Error{Kind: KindPersistence, Msg: op, Err: err}
}

// KindOf returns the kind of err, or 0 when err is not a domain error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
