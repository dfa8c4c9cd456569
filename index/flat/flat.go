// Package flat provides an exact brute-force nearest-neighbor index.
//
// Every query is scored against every stored vector, which guarantees
// 100% recall and keeps the index trivially correct. It is the extension
// point for future sub-linear strategies behind the same interface.
package flat

import (
	"slices"

	"github.com/llamavec/llamavec/embedding"
	"github.com/llamavec/llamavec/index"
	"github.com/llamavec/llamavec/internal/queue"
)

// Compile-time check to ensure Flat satisfies the index interface.
var _ index.NearestNeighborIndex = (*Flat)(nil)

// Options contains configuration options for the flat index.
type Options struct {
	// Dimension is the fixed vector dimensionality for this index.
	// It must be > 0 and is enforced for all adds and searches.
	Dimension int
}

// Flat is a brute-force cosine-similarity index over an id-to-vector map.
type Flat struct {
	dimension int
	vectors   map[string][]float32
}

// New creates a new flat index. Dimension is required.
func New(optFns ...func(o *Options)) (*Flat, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Dimension <= 0 {
		return nil, &index.ErrInvalidDimension{Dimension: opts.Dimension}
	}

	return &Flat{
		dimension: opts.Dimension,
		vectors:   make(map[string][]float32),
	}, nil
}

// Name returns the name of the search strategy.
func (*Flat) Name() string { return "flat" }

// Dimension returns the fixed vector dimensionality of the index.
func (f *Flat) Dimension() int { return f.dimension }

// Len returns the number of stored vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// IDs returns the stored ids in unspecified order.
func (f *Flat) IDs() []string {
	ids := make([]string, 0, len(f.vectors))
	for id := range f.vectors {
		ids = append(ids, id)
	}
	return ids
}

// Vector returns the vector stored under id.
func (f *Flat) Vector(id string) ([]float32, bool) {
	v, ok := f.vectors[id]
	return v, ok
}

// Add inserts or overwrites the vector stored under id.
func (f *Flat) Add(id string, vector []float32) error {
	if len(vector) != f.dimension {
		return &embedding.ErrDimensionMismatch{Expected: f.dimension, Actual: len(vector)}
	}
	f.vectors[id] = slices.Clone(vector)
	return nil
}

// Delete removes id if present and reports whether it was present.
func (f *Flat) Delete(id string) bool {
	if _, ok := f.vectors[id]; !ok {
		return false
	}
	delete(f.vectors, id)
	return true
}

// Search returns up to k results ordered by score descending, ties broken
// by id ascending.
func (f *Flat) Search(query []float32, k int) ([]index.SearchResult, error) {
	return f.SearchFilter(query, k, nil)
}

// SearchFilter is Search restricted to ids admitted by allow.
//
// A zero-magnitude query is unanswerable and yields no results, while a
// zero-magnitude stored vector still participates and scores 0.0 against
// any query. The asymmetry is deliberate and kept for compatibility.
func (f *Flat) SearchFilter(query []float32, k int, allow index.FilterFunc) ([]index.SearchResult, error) {
	if len(query) != f.dimension {
		return nil, &embedding.ErrDimensionMismatch{Expected: f.dimension, Actual: len(query)}
	}
	if k <= 0 {
		return nil, index.ErrInvalidK
	}
	if len(f.vectors) == 0 {
		return []index.SearchResult{}, nil
	}

	queryNorm := embedding.Norm(query)
	if queryNorm == 0 {
		return []index.SearchResult{}, nil
	}

	top := queue.NewTopK(k)
	for id, vec := range f.vectors {
		if allow != nil && !allow(id) {
			continue
		}
		var score float32
		if norm := embedding.Norm(vec); norm != 0 {
			score = embedding.ClampScore(embedding.Dot(query, vec) / (queryNorm * norm))
		}
		top.Consider(queue.Item{ID: id, Score: score})
	}

	items := top.Results()
	results := make([]index.SearchResult, len(items))
	for i, it := range items {
		results[i] = index.SearchResult{ID: it.ID, Score: it.Score}
	}
	return results, nil
}

// NearestNeighbors returns up to k neighbors of the vector stored under
// id, excluding id itself. An id whose stored vector is all-zero yields an
// empty neighbor list, matching the zero-query rule of SearchFilter.
func (f *Flat) NearestNeighbors(id string, k int) ([]index.SearchResult, error) {
	vec, ok := f.vectors[id]
	if !ok {
		return nil, &index.ErrIDNotFound{ID: id}
	}
	if k <= 0 {
		return nil, index.ErrInvalidK
	}

	results, err := f.Search(vec, k+1)
	if err != nil {
		return nil, err
	}

	neighbors := make([]index.SearchResult, 0, k)
	for _, r := range results {
		if r.ID == id {
			continue
		}
		neighbors = append(neighbors, r)
		if len(neighbors) == k {
			break
		}
	}
	return neighbors, nil
}
