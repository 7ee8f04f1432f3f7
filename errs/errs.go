// Package errs declares the error kinds used throughout the semigroups
// module (see spec §7: InvalidArgument, InvalidState, ResourceExhausted,
// Cancelled). Public entry points return an error that unwraps to one of
// the sentinels below, so callers can use errors.Is against them, while its
// message (which does not repeat the sentinel's text) names the
// precondition that was breached.
package errs

import (
	"errors"
	"fmt"
)

// Sentinels usable with errors.Is. Each public-facing error wraps one of
// these.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidState      = errors.New("invalid state")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrCancelled         = errors.New("cancelled")
)

// InvalidArgument wraps ErrInvalidArgument with a message naming the
// violated precondition, e.g. empty generator set, degree mismatch, a
// generator or element index out of range, or a word containing a letter
// outside the generator range.
func InvalidArgument(format string, args ...any) error {
	return wrap(ErrInvalidArgument, format, args...)
}

// InvalidState wraps ErrInvalidState: adding generators to an FP marked
// immutable, prefilling a TC table after enumeration began, or
// querying an accessor that requires completion when no strategy has
// finished and cancellation prevented running.
func InvalidState(format string, args ...any) error {
	return wrap(ErrInvalidState, format, args...)
}

// ResourceExhausted wraps ErrResourceExhausted: table growth failed. (A
// scratch pool asked for more workers than it was sized for shares slots
// instead of reporting this error.)
func ResourceExhausted(format string, args ...any) error {
	return wrap(ErrResourceExhausted, format, args...)
}

// Cancelled wraps ErrCancelled: a strategy observed its cancellation signal
// and stopped leaving an inspectable partial result. Cancellation is never
// raised as a panic; it is always returned through this error or encoded in
// a "done" flag the caller can poll.
func Cancelled(format string, args ...any) error {
	return wrap(ErrCancelled, format, args...)
}

func wrap(sentinel error, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &taggedError{sentinel: sentinel, msg: msg}
}

type taggedError struct {
	sentinel error
	msg      string
}

func (e *taggedError) Error() string { return e.msg }
func (e *taggedError) Unwrap() error { return e.sentinel }
