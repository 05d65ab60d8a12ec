package numeral

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidSymbol   = errors.New("invalid symbol")
	ErrNumeralTooLarge = errors.New("numeral too large")
	ErrUnderflow       = errors.New("no numeral for zero or less")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidSymbol   ErrorKind = "invalid_symbol"
	KindNumeralTooLarge ErrorKind = "numeral_too_large"
	KindUnderflow       ErrorKind = "underflow"
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidSymbol:   ErrInvalidSymbol,
	KindNumeralTooLarge: ErrNumeralTooLarge,
	KindUnderflow:       ErrUnderflow,
}

// OpError reports a calculation that cannot produce a numeral.
type OpError struct {
	Op      string
	Kind    ErrorKind
	Numeral string // Optional: the offending input
	Pos     int    // Byte offset of the bad character for KindInvalidSymbol
	Err     error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	switch {
	case e.Kind == KindInvalidSymbol && e.Pos < len(e.Numeral):
		r, _ := utf8.DecodeRuneInString(e.Numeral[e.Pos:])
		base += fmt.Sprintf(" %q at %d in %q", r, e.Pos, e.Numeral)
	case e.Numeral != "":
		base += fmt.Sprintf(" (numeral=%s)", e.Numeral)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the sentinel error for the kind, so errors.Is(err, ErrUnderflow)
// holds for any underflow.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	return kindSentinels[e.Kind] == target
}

// IsKind helps callers classify errors without inspecting messages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of a calculation error, or "" for other errors.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}
