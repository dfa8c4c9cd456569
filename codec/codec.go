// Package codec centralizes snapshot state encoding.
//
// Codec selection is a breaking-change boundary: persisted blobs record
// the codec name in their header, and a blob written by one codec may not
// decode with another.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// Snapshot blobs are self-describing: they store the codec name in their
// header and are decoded by selecting the codec by name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Default is the codec used when none is configured.
//
// This affects newly written blobs only; existing blobs always decode with
// the codec named in their header.
var Default Codec = GoJSON{}
