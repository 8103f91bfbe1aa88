// Package errors provides sentinel errors and error types for fen-extract.
// It defines the FEN error taxonomy and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidPosition indicates a position setup that breaks a structural invariant.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidSquare indicates text that is not an algebraic square.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSuiteFailure indicates a position suite with failing cases.
	ErrSuiteFailure = errors.New("position suite failed")
)

// Per-kind sentinels. A *FENError matches the one for its Kind.
var (
	ErrMalformedRank         = errors.New("malformed rank")
	ErrInvalidTurnToken      = errors.New("invalid turn token")
	ErrInvalidCastlingToken  = errors.New("invalid castling token")
	ErrInvalidEnPassantToken = errors.New("invalid en passant token")
	ErrInvalidNumber         = errors.New("invalid number")
	ErrStructuralMismatch    = errors.New("structural mismatch")
)

// ErrorKind classifies why a FEN string was rejected.
type ErrorKind int

const (
	StructuralMismatch ErrorKind = iota
	MalformedRank
	InvalidTurnToken
	InvalidCastlingToken
	InvalidEnPassantToken
	InvalidNumber
)

var kindNames = [...]string{
	StructuralMismatch:    "structural-mismatch",
	MalformedRank:         "malformed-rank",
	InvalidTurnToken:      "invalid-turn",
	InvalidCastlingToken:  "invalid-castling",
	InvalidEnPassantToken: "invalid-en-passant",
	InvalidNumber:         "invalid-number",
}

var kindSentinels = [...]error{
	StructuralMismatch:    ErrStructuralMismatch,
	MalformedRank:         ErrMalformedRank,
	InvalidTurnToken:      ErrInvalidTurnToken,
	InvalidCastlingToken:  ErrInvalidCastlingToken,
	InvalidEnPassantToken: ErrInvalidEnPassantToken,
	InvalidNumber:         ErrInvalidNumber,
}

// String returns the short hyphenated name of the kind.
func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinel returns the sentinel error matched by errors of this kind.
func (k ErrorKind) Sentinel() error {
	if k >= 0 && int(k) < len(kindSentinels) {
		return kindSentinels[k]
	}
	return ErrInvalidFEN
}

// ParseErrorKind maps a kind name back to its ErrorKind.
func ParseErrorKind(name string) (ErrorKind, error) {
	for k, n := range kindNames {
		if n == name {
			return ErrorKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown error kind %q: %w", name, ErrInvalidConfig)
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	parsed, err := ParseErrorKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// FENError describes which field of a FEN string was rejected and why.
type FENError struct {
	Kind   ErrorKind // Classification of the failure
	Field  string    // Field name, e.g. "rank 6" or "castling"
	Token  string    // The offending text
	Detail string    // Extra explanation (optional)
}

// Error returns a message naming the field, the token and the reason.
func (e *FENError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrInvalidFEN.Error())
	sb.WriteString(": ")
	sb.WriteString(e.Kind.Sentinel().Error())
	if e.Field != "" {
		fmt.Fprintf(&sb, " in %s", e.Field)
	}
	if e.Token != "" {
		fmt.Fprintf(&sb, " %q", e.Token)
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	return sb.String()
}

// Unwrap exposes both ErrInvalidFEN and the kind sentinel to errors.Is().
func (e *FENError) Unwrap() []error {
	return []error{ErrInvalidFEN, e.Kind.Sentinel()}
}

// KindOf reports the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var fe *FENError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}

// LineError wraps errors with input location context.
type LineError struct {
	Err  error  // The underlying error
	File string // Source file name (if known)
	Line int    // 1-based line number (if known)
}

// Error returns a formatted error message including all available context.
func (e *LineError) Error() string {
	var loc string
	switch {
	case e.File != "" && e.Line > 0:
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	case e.File != "":
		loc = e.File
	case e.Line > 0:
		loc = fmt.Sprintf("line %d", e.Line)
	}

	if e.Err == nil {
		if loc == "" {
			return "line error"
		}
		return loc
	}
	if loc == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
