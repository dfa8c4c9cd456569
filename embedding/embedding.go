// Package embedding provides stateless vector math primitives: L2
// normalization, similarity and distance measures, and stable content
// hashing for deduplication pipelines.
//
// All functions operate on float32 vectors and accumulate in float64 to
// keep the results stable for high-dimensional inputs.
package embedding

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"slices"

	gojson "github.com/goccy/go-json"
)

// DefaultHashPrecision is the number of decimal digits vector components
// are rounded to before hashing.
const DefaultHashPrecision = 6

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	return math.Sqrt(Dot(v, v))
}

// Normalize returns an L2-normalized copy of v.
//
// A zero-magnitude vector is returned unchanged: zero vectors are a valid,
// inert value, not a failure.
func Normalize(v []float32) []float32 {
	norm := Norm(v)
	if norm == 0 {
		return v
	}
	out := slices.Clone(v)
	inv := 1 / norm
	for i := range out {
		out[i] = float32(float64(out[i]) * inv)
	}
	return out
}

// CosineSimilarity calculates the cosine similarity between two vectors.
//
// The result is clamped to [-1, 1] to absorb floating-point overshoot.
// If either vector has zero magnitude the similarity is 0.0 by convention.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	normA := Norm(a)
	normB := Norm(b)
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return ClampScore(Dot(a, b) / (normA * normB)), nil
}

// EuclideanDistance calculates the L2 distance between two vectors.
func EuclideanDistance(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}

	return float32(math.Sqrt(sum)), nil
}

// ClampScore clamps a similarity score to [-1, 1].
func ClampScore(s float64) float32 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return float32(s)
}

// Hash returns a stable SHA-256 hex digest of v, useful for
// content-addressed deduplication.
//
// Components are rounded to precision decimal digits before hashing, so
// numerically-close vectors collapse to the same hash. The rounded vector
// is serialized deterministically as a JSON array.
func Hash(v []float32, precision int) (string, error) {
	rounded := make([]float64, len(v))
	factor := math.Pow(10, float64(precision))

	for i, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", &ErrInvalidComponent{Index: i, Value: f}
		}
		r := math.Round(f*factor) / factor
		if r == 0 {
			r = 0 // collapse negative zero
		}
		rounded[i] = r
	}

	data, err := gojson.Marshal(rounded)
	if err != nil {
		return "", fmt.Errorf("hash vector: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
