package calc

import (
	"errors"
	"fmt"
)

// Error types reported by this package
const (
	ErrTypeUnknownUnit      = "UnknownUnit"
	ErrTypeNonFinite        = "NonFiniteDuration"
	ErrTypeOutOfRange       = "DurationOutOfRange"
	ErrTypeNegativeDuration = "NegativeDuration"
	ErrTypeParse            = "ParseDuration"
)

// Error is the error type for unit and duration failures
type Error struct {
	Type    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// NewUnknownUnitError creates a new error for unit text that names no unit
func NewUnknownUnitError(text string) error {
	return &Error{
		Type:    ErrTypeUnknownUnit,
		Message: fmt.Sprintf("unknown unit %q", text),
	}
}

// NewNonFiniteError creates a new error for NaN or infinite durations,
// typically the result of a zero download speed
func NewNonFiniteError(seconds float64) error {
	return &Error{
		Type:    ErrTypeNonFinite,
		Message: fmt.Sprintf("cannot format %v seconds", seconds),
	}
}

// NewOutOfRangeError creates a new error for durations that do not fit in
// an int64 count of seconds
func NewOutOfRangeError(seconds float64) error {
	return &Error{
		Type:    ErrTypeOutOfRange,
		Message: fmt.Sprintf("%g seconds does not fit in a duration", seconds),
	}
}

// NewTotalOutOfRangeError creates a new error for parsed durations whose
// total seconds overflow an int64
func NewTotalOutOfRangeError(text string) error {
	return &Error{
		Type:    ErrTypeOutOfRange,
		Message: fmt.Sprintf("%q does not fit in a duration", text),
	}
}

// NewNegativeDurationError creates a new error for negative totals passed to
// the day/hour/minute decomposition
func NewNegativeDurationError(total int64) error {
	return &Error{
		Type:    ErrTypeNegativeDuration,
		Message: fmt.Sprintf("cannot decompose negative duration %ds", total),
	}
}

// NewParseError creates a new error for a duration token that could not be
// read
func NewParseError(text, token string, err error) error {
	return &Error{
		Type:    ErrTypeParse,
		Message: fmt.Sprintf("invalid token %q in %q", token, text),
		Err:     err,
	}
}

// IsType reports whether err is, or wraps, a calc error of type typ.
func IsType(err error, typ string) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == typ
}
