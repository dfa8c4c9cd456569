// Package index defines the nearest-neighbor index capability interface
// shared by index implementations.
//
// The vector store depends only on NearestNeighborIndex; concrete search
// strategies (today the exact brute-force index in index/flat) plug in
// behind it and are selected explicitly, never inferred from an
// informational label.
package index

import (
	"errors"
	"fmt"
)

// ErrInvalidK is returned when k is not positive.
var ErrInvalidK = errors.New("k must be positive")

// ErrIDNotFound indicates a lookup by id that found nothing.
type ErrIDNotFound struct {
	ID string
}

func (e *ErrIDNotFound) Error() string {
	return fmt.Sprintf("id not found in index: %q", e.ID)
}

// ErrInvalidDimension indicates an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// SearchResult is a single nearest-neighbor hit.
type SearchResult struct {
	ID    string
	Score float32
}

// FilterFunc restricts a search to ids for which it returns true.
// A nil FilterFunc admits every id.
type FilterFunc func(id string) bool

// NearestNeighborIndex holds the current vector set for one dimension and
// answers k-nearest-neighbor queries by cosine similarity.
//
// Implementations are not required to be safe for concurrent use; callers
// serialize access externally.
type NearestNeighborIndex interface {
	// Name returns the name of the search strategy, e.g. "flat".
	Name() string

	// Dimension returns the fixed vector dimensionality of the index.
	Dimension() int

	// Len returns the number of stored vectors.
	Len() int

	// Add inserts or overwrites the vector stored under id.
	Add(id string, vector []float32) error

	// Delete removes id if present and reports whether it was present.
	Delete(id string) bool

	// Search returns up to k results ordered by score descending,
	// ties broken by id ascending.
	Search(query []float32, k int) ([]SearchResult, error)

	// SearchFilter is Search restricted to ids admitted by allow.
	SearchFilter(query []float32, k int, allow FilterFunc) ([]SearchResult, error)

	// NearestNeighbors returns up to k neighbors of the vector stored
	// under id, excluding id itself.
	NearestNeighbors(id string, k int) ([]SearchResult, error)
}
