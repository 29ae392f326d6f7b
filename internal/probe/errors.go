package probe

import (
	"errors"
	"fmt"
)

// ErrorKind classifies probe failures
type ErrorKind string

const (
	KindMalformedURL ErrorKind = "MalformedURL"
	KindIO           ErrorKind = "IOFailure"
	KindNotConnected ErrorKind = "NotConnected"
)

// ProbeError is the error type returned by Connection
type ProbeError struct {
	Kind    ErrorKind
	URL     string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *ProbeError) Unwrap() error {
	return e.Err
}

// NewMalformedURLError creates a new error for URLs that cannot be requested
func NewMalformedURLError(rawURL string, err error) error {
	return &ProbeError{
		Kind:    KindMalformedURL,
		URL:     rawURL,
		Message: fmt.Sprintf("invalid URL %q", rawURL),
		Err:     err,
	}
}

// NewIOError creates a new error for failures while talking to the server
func NewIOError(rawURL string, err error) error {
	return &ProbeError{
		Kind:    KindIO,
		URL:     rawURL,
		Message: fmt.Sprintf("request to %s failed", rawURL),
		Err:     err,
	}
}

// NewNotConnectedError creates a new error for reads before Connect succeeded
func NewNotConnectedError(rawURL string) error {
	return &ProbeError{
		Kind:    KindNotConnected,
		URL:     rawURL,
		Message: "connection has not been set up yet",
	}
}

func isKind(err error, kind ErrorKind) bool {
	var pe *ProbeError
	return errors.As(err, &pe) && pe.Kind == kind
}

// IsMalformedURL reports whether err was caused by an unusable URL
func IsMalformedURL(err error) bool { return isKind(err, KindMalformedURL) }

// IsIO reports whether err was caused by a network or protocol failure
func IsIO(err error) bool { return isKind(err, KindIO) }

// IsNotConnected reports whether err was caused by reading an unconnected
// Connection
func IsNotConnected(err error) bool { return isKind(err, KindNotConnected) }
