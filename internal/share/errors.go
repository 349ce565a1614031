package share

import (
	"errors"
	"fmt"
)

// ErrCodeInvalidFormat identifies payload-level validation failures.
const ErrCodeInvalidFormat = "INVALID_FORMAT"

// FormatError reports a payload that failed schema validation. It aborts the
// whole import before any effect; it never occurs mid-merge.
type FormatError struct {
	Code    string // always ErrCodeInvalidFormat
	Message string // names the offending field where the schema can tell
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsFormatError returns true if the error is a payload validation failure.
// Uses errors.As to handle wrapped errors.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

func newFormatError(format string, args ...any) *FormatError {
	return &FormatError{
		Code:    ErrCodeInvalidFormat,
		Message: fmt.Sprintf(format, args...),
	}
}
