package labels

import (
	"errors"
	"fmt"
)

// ErrCodeIndexOutOfRange identifies stale-index precondition violations.
const ErrCodeIndexOutOfRange = "INDEX_OUT_OF_RANGE"

// RangeError reports a Remove or Reorder invoked with an index that does not
// exist in the record's label sequence. The caller (the UI layer, in the
// original system) is responsible for index validity at invocation time, so
// this is propagated rather than swallowed.
type RangeError struct {
	Code   string // always ErrCodeIndexOutOfRange
	Op     string // "remove" | "reorder"
	Index  int    // the offending index
	Length int    // label sequence length at invocation time
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s index %d out of range [0,%d)", e.Code, e.Op, e.Index, e.Length)
}

// IsRangeError returns true if the error is a stale-index error.
// Uses errors.As to handle wrapped errors.
func IsRangeError(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}

func newRangeError(op string, index, length int) *RangeError {
	return &RangeError{
		Code:   ErrCodeIndexOutOfRange,
		Op:     op,
		Index:  index,
		Length: length,
	}
}
