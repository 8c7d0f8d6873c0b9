// Package errs is the domain error taxonomy shared across pathcore's
// packages, mirroring the teacher's domain.Error: a wrapped cause plus a
// classification code, but built on github.com/cockroachdb/errors so a
// wrapped cause keeps its stack trace the way the rest of the
// pebble-backed storage stack already does.
package errs

import "github.com/cockroachdb/errors"

// Error pairs a human-readable message with a classification code and,
// optionally, the underlying cause.
type Error struct {
	orig error
	msg  string
	code error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.orig != nil {
		return e.msg + ": " + e.orig.Error()
	}
	return e.msg
}

// Unwrap exposes the original cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.orig }

// Code returns the classification sentinel this error was wrapped with.
func (e *Error) Code() error { return e.code }

// WrapErrorf builds an *Error with a formatted message, classified under
// code, wrapping orig (which may be nil).
func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{code: code, orig: orig, msg: errors.Newf(format, a...).Error()}
}

// Sentinel classification codes.
var (
	ErrNoPath                = errors.New("no path exists between start and target")
	ErrInvalidNode           = errors.New("node id out of range")
	ErrOptimalityCheckFailed = errors.New("solution cost does not match expected optimal cost")
	ErrScenarioNotFound      = errors.New("scenario file entry not found")
	ErrUnknownAlgorithm      = errors.New("unknown search algorithm name")
)
