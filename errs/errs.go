// Package errs implements the closed set of error kinds from the
// locus-resolution core's error-handling design: InvalidTranscript,
// InvalidCDS, NotInLocus, NoJSONConfig, UnrecognizedRescaler,
// InvalidRequirements, IOError, and EvidenceUnavailable. It mirrors the
// Kind+Is shape of github.com/grailbio/base/errors (the teacher's error
// package), reimplemented locally so callers can match on a specific kind
// without depending on that package's internal Kind enumeration.
package errs

import "errors"

// Kind classifies an Error into one of the core's recognized error kinds.
type Kind string

const (
	InvalidTranscript    Kind = "InvalidTranscript"
	InvalidCDS           Kind = "InvalidCDS"
	NotInLocus           Kind = "NotInLocus"
	NoJSONConfig         Kind = "NoJsonConfig"
	UnrecognizedRescaler Kind = "UnrecognizedRescaler"
	InvalidRequirements  Kind = "InvalidRequirements"
	IOError              Kind = "IOError"
	EvidenceUnavailable  Kind = "EvidenceUnavailable"
)

// Error is a kinded, optionally-wrapped error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Msg + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an Error of the given kind with no wrapped cause.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap returns an Error of the given kind wrapping err.
func Wrap(kind Kind, err error, msg string) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err is (or wraps) an Error of the given kind.
func Is(kind Kind, err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
