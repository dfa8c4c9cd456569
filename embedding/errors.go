package embedding

import "fmt"

// ErrDimensionMismatch indicates that two vectors (or a vector and a
// configured dimension) disagree in length.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidComponent indicates a vector component that cannot be rounded
// or serialized, such as NaN or an infinity.
type ErrInvalidComponent struct {
	Index int
	Value float64
}

func (e *ErrInvalidComponent) Error() string {
	return fmt.Sprintf("invalid vector component at index %d: %v", e.Index, e.Value)
}
