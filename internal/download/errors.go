package download

import (
	"errors"
	"fmt"
)

// DownloadError is the base error type for download-related errors
type DownloadError struct {
	Type    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// NewSampleFailedError creates a new error for sample downloads that failed
// before the window elapsed
func NewSampleFailedError(url string, err error) error {
	return &DownloadError{
		Type:    "SampleFailed",
		Message: fmt.Sprintf("sampling %s failed", url),
		Err:     err,
	}
}

// NewSizeUnknownError creates a new error for servers that do not report the
// resource size
func NewSizeUnknownError(url string) error {
	return &DownloadError{
		Type:    "SizeUnknown",
		Message: fmt.Sprintf("server did not report a size for %s", url),
	}
}

// NewNoProgressError creates a new error for samples that received no data
func NewNoProgressError(url string) error {
	return &DownloadError{
		Type:    "NoProgress",
		Message: fmt.Sprintf("no data received from %s during the sample window", url),
	}
}

// IsErrorType reports whether err is, or wraps, a DownloadError of type typ
func IsErrorType(err error, typ string) bool {
	var de *DownloadError
	return errors.As(err, &de) && de.Type == typ
}
