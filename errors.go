package llamavec

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an item is not found.
var ErrNotFound = errors.New("not found")

// ErrArityMismatch indicates batch input slices of unequal length.
type ErrArityMismatch struct {
	// Field names the input that disagreed with ids, e.g. "vectors".
	Field    string
	Expected int
	Actual   int
}

func (e *ErrArityMismatch) Error() string {
	return fmt.Sprintf("arity mismatch: %s: expected %d, got %d", e.Field, e.Expected, e.Actual)
}
