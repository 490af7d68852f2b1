// Package fqerr defines the error taxonomy shared by every fqkit core
// package: a small set of Kinds (not types) distinguished at the point
// the CLI reports them, each optionally carrying a path and a byte
// offset into that path.
package fqerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a fqkit error for CLI reporting and exit-code selection.
type Kind int

const (
	// Io marks a failure reading or writing an underlying byte stream.
	Io Kind = iota
	// Format marks bad FASTQ framing: malformed header, unknown sequence
	// byte, a sequence/quality length mismatch, or a truncated record.
	Format
	// Unsupported marks an input that is well-formed but not supported
	// by the requested operation (e.g. variable-length reads for stat).
	Unsupported
	// Config marks a contradictory or invalid combination of flags.
	Config
	// Resource marks failure to acquire memory or a worker.
	Resource
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "IoError"
	case Format:
		return "FormatError"
	case Unsupported:
		return "UnsupportedFormat"
	case Config:
		return "ConfigError"
	case Resource:
		return "ResourceError"
	default:
		return "Error"
	}
}

// Error is the concrete error value returned from every fqkit core
// operation that can fail. Offset is nil when the failure is not tied to
// a specific byte position.
type Error struct {
	Kind   Kind
	Path   string
	Offset *int64
	cause  error
}

// New builds an Error of the given kind wrapping cause, without a path.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: errors.WithStack(cause)}
}

// Wrapf builds an Error of the given kind from a formatted message.
func Wrapf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

// WithPath attaches a path to e, returning e for chaining.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithOffset attaches a byte offset to e, returning e for chaining.
func (e *Error) WithOffset(offset int64) *Error {
	e.Offset = &offset
	return e
}

func (e *Error) Error() string {
	msg := e.cause.Error()
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	if e.Offset == nil {
		return fmt.Sprintf("%s: %s [at %s]", e.Kind, msg, e.Path)
	}
	return fmt.Sprintf("%s: %s [at %s:%d]", e.Kind, msg, e.Path, *e.Offset)
}

func (e *Error) Unwrap() error { return e.cause }

// Cause returns the innermost wrapped error, the same value
// github.com/pkg/errors.Cause would report.
func (e *Error) Cause() error { return errors.Cause(e.cause) }

// Canceled is the non-error sentinel returned when a pipeline run is
// stopped by cooperative cancellation rather than failing.
var Canceled = errors.New("canceled")

// IsCanceled reports whether err is (or wraps) Canceled.
func IsCanceled(err error) bool {
	return errors.Is(err, Canceled)
}

// Of reports the Kind of err if it is an *Error, and ok=false otherwise.
func Of(err error) (kind Kind, ok bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
