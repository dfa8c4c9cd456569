// Package metadata provides the key-value attributes attached to stored
// vectors and the filter predicates evaluated against them.
package metadata

import (
	"fmt"
	"strconv"
)

// Metadata holds arbitrary attributes for one stored vector.
type Metadata map[string]any

// Clone returns a shallow copy of the metadata.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ValueKey returns a canonical posting term for a metadata value.
//
// Numeric values of different Go types that compare equal map to the same
// term, mirroring ValueEqual. The leading tag keeps values of different
// kinds from colliding (the string "1" never matches the number 1).
func ValueKey(v any) string {
	if f, ok := asFloat64(v); ok {
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	}
	switch t := v.(type) {
	case string:
		return "s:" + t
	case bool:
		return "b:" + strconv.FormatBool(t)
	case nil:
		return "z:"
	default:
		return fmt.Sprintf("x:%T:%v", t, t)
	}
}

// ValueEqual compares two metadata values, unifying numeric types so that
// int(1) and float64(1) compare equal regardless of how the metadata was
// decoded.
func ValueEqual(a, b any) bool {
	if af, ok := asFloat64(a); ok {
		bf, ok := asFloat64(b)
		return ok && af == bf
	}
	if _, ok := asFloat64(b); ok {
		return false
	}

	switch at := a.(type) {
	case string:
		bt, ok := b.(string)
		return ok && at == bt
	case bool:
		bt, ok := b.(bool)
		return ok && at == bt
	case nil:
		return b == nil
	default:
		return ValueKey(a) == ValueKey(b)
	}
}

func asFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
