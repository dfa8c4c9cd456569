// Package util provides helpers for generating test and benchmark data.
package util

import (
	"math/rand"
	"strconv"
)

// RNG encapsulates a seeded random number generator so generated vectors
// are reproducible across runs.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateRandomVectors generates random vectors using the given RNG.
func (r *RNG) GenerateRandomVectors(num int, dimensions int) [][]float32 {
	vectors := make([][]float32, num)
	for i := range vectors {
		vectors[i] = make([]float32, dimensions)
		for j := range vectors[i] {
			vectors[i][j] = r.rand.Float32()
		}
	}

	return vectors
}

// GenerateIDs generates sequential string ids with the given prefix.
func GenerateIDs(prefix string, num int) []string {
	ids := make([]string, num)
	for i := range ids {
		ids[i] = prefix + strconv.Itoa(i)
	}
	return ids
}
