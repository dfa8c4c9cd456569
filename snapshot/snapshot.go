// Package snapshot implements the persisted vector store format.
//
// A snapshot is a self-describing binary envelope around a codec-encoded
// state document:
//
//	magic (uint32) | format version (uint32) |
//	codec name | compression name |
//	payload length (uint64) | CRC32 of payload (uint32) | payload
//
// Strings are length-prefixed (uint16). Multi-byte integers are
// big-endian. The payload is the codec-encoded State, optionally
// compressed; codec and compression are resolved by name on decode, so a
// blob written with any supported combination can always be opened.
//
// The index is never part of a snapshot. It is rebuilt deterministically
// from the embeddings on load.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/llamavec/llamavec/codec"
	"github.com/llamavec/llamavec/metadata"
)

const (
	// Magic identifies vector store snapshot blobs (ASCII "LVEC").
	Magic uint32 = 0x4C564543

	// FormatVersion is the current envelope version.
	FormatVersion uint32 = 1

	// StateVersion is the version recorded inside the state document.
	StateVersion = 1
)

var (
	// ErrInvalidMagic indicates a blob that is not a snapshot.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrInvalidVersion indicates an unsupported envelope version.
	ErrInvalidVersion = errors.New("unsupported snapshot version")

	// ErrInvalidFormat indicates a structurally broken snapshot: a
	// truncated envelope, an unknown codec or compression, or a state
	// document missing required fields.
	ErrInvalidFormat = errors.New("invalid snapshot format")
)

// ChecksumMismatchError is returned when payload verification fails,
// typically after a crash mid-write or storage corruption.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// Compression selects the payload compression applied to snapshots.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// State is the persisted representation of a vector store.
//
// IndexType is the informational strategy label; it never changes search
// behavior on load.
type State struct {
	Version    int                          `json:"version"`
	Dimension  int                          `json:"dimension"`
	IndexType  string                       `json:"index_type"`
	Embeddings map[string][]float32         `json:"embeddings"`
	Metadata   map[string]metadata.Metadata `json:"metadata"`
}

// Encode serializes the state into a self-describing snapshot blob.
// A nil codec falls back to codec.Default; empty compression means none.
func Encode(st *State, c codec.Codec, comp Compression) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	if comp == "" {
		comp = CompressionNone
	}

	payload, err := c.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot state: %w", err)
	}

	stored, err := compress(payload, comp)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writeUint32(&buf, Magic)
	writeUint32(&buf, FormatVersion)
	if err := writeString(&buf, c.Name()); err != nil {
		return nil, err
	}
	if err := writeString(&buf, string(comp)); err != nil {
		return nil, err
	}
	writeUint64(&buf, uint64(len(stored)))
	writeUint32(&buf, crc32.ChecksumIEEE(stored))
	buf.Write(stored)

	return buf.Bytes(), nil
}

// Decode parses a snapshot blob, verifying the envelope and the checksum
// and validating that the state document carries every required field.
func Decode(blob []byte) (*State, error) {
	r := bytes.NewReader(blob)

	magic, err := readUint32(r)
	if err != nil || magic != Magic {
		return nil, ErrInvalidMagic
	}
	version, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidFormat)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	codecName, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidFormat)
	}
	compName, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidFormat)
	}
	payloadLen, err := readUint64(r)
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidFormat)
	}
	sum, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidFormat)
	}

	if uint64(r.Len()) != payloadLen {
		return nil, fmt.Errorf("%w: payload length %d, expected %d", ErrInvalidFormat, r.Len(), payloadLen)
	}
	stored := blob[len(blob)-r.Len():]

	if actual := crc32.ChecksumIEEE(stored); actual != sum {
		return nil, &ChecksumMismatchError{Expected: sum, Actual: actual}
	}

	payload, err := decompress(stored, Compression(compName))
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrInvalidFormat, codecName)
	}

	return decodeState(payload, c)
}

func decodeState(payload []byte, c codec.Codec) (*State, error) {
	// Pointer fields distinguish absent from zero-valued.
	var probe struct {
		Version    *int                         `json:"version"`
		Dimension  *int                         `json:"dimension"`
		IndexType  *string                      `json:"index_type"`
		Embeddings map[string][]float32         `json:"embeddings"`
		Metadata   map[string]metadata.Metadata `json:"metadata"`
	}
	if err := c.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode snapshot state: %w", err)
	}

	switch {
	case probe.Dimension == nil:
		return nil, fmt.Errorf("%w: missing dimension", ErrInvalidFormat)
	case probe.IndexType == nil:
		return nil, fmt.Errorf("%w: missing index_type", ErrInvalidFormat)
	case probe.Embeddings == nil:
		return nil, fmt.Errorf("%w: missing embeddings", ErrInvalidFormat)
	case probe.Metadata == nil:
		return nil, fmt.Errorf("%w: missing metadata", ErrInvalidFormat)
	}

	stateVersion := StateVersion
	if probe.Version != nil {
		stateVersion = *probe.Version
	}
	if stateVersion > StateVersion {
		return nil, fmt.Errorf("%w: state version %d", ErrInvalidVersion, stateVersion)
	}

	return &State{
		Version:    stateVersion,
		Dimension:  *probe.Dimension,
		IndexType:  *probe.IndexType,
		Embeddings: probe.Embeddings,
		Metadata:   probe.Metadata,
	}, nil
}

func compress(payload []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		var buf bytes.Buffer
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		if _, err := zw.Write(payload); err != nil {
			zw.Close()
			return nil, fmt.Errorf("zstd compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("zstd compress: %w", err)
		}
		return buf.Bytes(), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			zw.Close()
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %q", ErrInvalidFormat, comp)
	}
}

func decompress(stored []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return stored, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(bytes.NewReader(stored))
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		payload, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd payload: %w", ErrInvalidFormat, err)
		}
		return payload, nil
	case CompressionLZ4:
		payload, err := io.ReadAll(lz4.NewReader(bytes.NewReader(stored)))
		if err != nil {
			return nil, fmt.Errorf("%w: lz4 payload: %w", ErrInvalidFormat, err)
		}
		return payload, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %q", ErrInvalidFormat, comp)
	}
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: header string too long", ErrInvalidFormat)
	}
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(len(s)))
	buf.Write(b[:])
	buf.WriteString(s)
	return nil
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func readString(r *bytes.Reader) (string, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint16(b[:])
	s := make([]byte, n)
	if _, err := io.ReadFull(r, s); err != nil {
		return "", err
	}
	return string(s), nil
}
