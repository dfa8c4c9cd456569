package llamavec

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/llamavec/llamavec/blobstore"
	"github.com/llamavec/llamavec/codec"
	"github.com/llamavec/llamavec/embedding"
	"github.com/llamavec/llamavec/index"
	"github.com/llamavec/llamavec/index/flat"
	"github.com/llamavec/llamavec/metadata"
	metaindex "github.com/llamavec/llamavec/metadata/index"
	"github.com/llamavec/llamavec/snapshot"
)

// DefaultSearchK is the number of neighbors returned when a caller does
// not ask for a specific k.
const DefaultSearchK = 10

// record pairs the stored vector with its metadata under one id, so the
// two can never fall out of sync.
type record struct {
	vector []float32
	meta   metadata.Metadata
}

// Result is a single search hit. Metadata is nil when the search was run
// with WithoutMetadata.
type Result struct {
	ID       string            `json:"id"`
	Score    float32           `json:"score"`
	Metadata metadata.Metadata `json:"metadata,omitempty"`
}

// Store is an in-memory vector store: the sole mutation entry point
// binding embeddings and metadata, mediating every change through the
// nearest-neighbor index, and handling persistence.
//
// A Store performs no internal locking; concurrent callers must serialize
// access externally.
type Store struct {
	dimension int
	indexType string

	records map[string]*record
	index   index.NearestNeighborIndex
	filters *metaindex.InvertedIndex

	codec       codec.Codec
	compression snapshot.Compression
	logger      *Logger
	metrics     MetricsCollector
}

// New creates a store for vectors of the given dimension.
//
// The index strategy label (see WithIndexType) is informational only;
// search is always exact brute force.
func New(dimension int, optFns ...Option) (*Store, error) {
	o := applyOptions(optFns)

	idx, err := flat.New(func(fo *flat.Options) {
		fo.Dimension = dimension
	})
	if err != nil {
		return nil, err
	}

	return &Store{
		dimension:   dimension,
		indexType:   o.indexType,
		records:     make(map[string]*record),
		index:       idx,
		filters:     metaindex.New(),
		codec:       o.codec,
		compression: o.compression,
		logger:      o.logger,
		metrics:     o.metrics,
	}, nil
}

// Dimension returns the fixed vector dimensionality of the store.
func (s *Store) Dimension() int { return s.dimension }

// IndexType returns the informational index strategy label.
func (s *Store) IndexType() string { return s.indexType }

// Len returns the number of stored records.
func (s *Store) Len() int { return len(s.records) }

// Get returns a copy of the vector and the metadata stored under id.
func (s *Store) Get(id string) ([]float32, metadata.Metadata, bool) {
	rec, ok := s.records[id]
	if !ok {
		return nil, nil, false
	}
	return slices.Clone(rec.vector), rec.meta, true
}

// Add stores a vector and its optional metadata under id, overwriting any
// existing record atomically. A nil metadata is stored as an empty map so
// every stored id always has a metadata entry.
func (s *Store) Add(id string, vector []float32, meta metadata.Metadata) error {
	start := time.Now()
	err := s.add(id, vector, meta)
	s.metrics.RecordAdd(time.Since(start), err)
	s.logger.LogAdd(id, len(vector), err)
	return err
}

func (s *Store) add(id string, vector []float32, meta metadata.Metadata) error {
	if len(vector) != s.dimension {
		return &embedding.ErrDimensionMismatch{Expected: s.dimension, Actual: len(vector)}
	}

	// The index validates first; on failure no store state changes.
	if err := s.index.Add(id, vector); err != nil {
		return err
	}

	if meta == nil {
		meta = metadata.Metadata{}
	}
	if old, ok := s.records[id]; ok {
		s.filters.Update(id, old.meta, meta)
	} else {
		s.filters.Add(id, meta)
	}
	s.records[id] = &record{vector: slices.Clone(vector), meta: meta}
	return nil
}

// AddBatch stores several records at once. Every vector is validated
// against the store dimension before any state is mutated, so a
// mid-batch dimension error never leaves a partial batch behind.
//
// An empty metadatas slice means "no metadata provided"; only a non-empty
// slice whose length differs from ids is an arity violation.
func (s *Store) AddBatch(ids []string, vectors [][]float32, metadatas []metadata.Metadata) error {
	start := time.Now()
	err := s.addBatch(ids, vectors, metadatas)
	s.metrics.RecordBatchAdd(len(ids), time.Since(start), err)
	s.logger.LogBatchAdd(len(ids), err)
	return err
}

func (s *Store) addBatch(ids []string, vectors [][]float32, metadatas []metadata.Metadata) error {
	if len(ids) != len(vectors) {
		return &ErrArityMismatch{Field: "vectors", Expected: len(ids), Actual: len(vectors)}
	}
	if len(metadatas) > 0 && len(metadatas) != len(ids) {
		return &ErrArityMismatch{Field: "metadatas", Expected: len(ids), Actual: len(metadatas)}
	}

	for _, v := range vectors {
		if len(v) != s.dimension {
			return &embedding.ErrDimensionMismatch{Expected: s.dimension, Actual: len(v)}
		}
	}

	for i, id := range ids {
		var meta metadata.Metadata
		if len(metadatas) == len(ids) {
			meta = metadatas[i]
		}
		if err := s.add(id, vectors[i], meta); err != nil {
			return err
		}
	}
	return nil
}

type searchOptions struct {
	includeMetadata bool
	filters         *metadata.FilterSet
}

// SearchOption customizes a single search.
type SearchOption func(*searchOptions)

// WithoutMetadata omits metadata from search results.
func WithoutMetadata() SearchOption {
	return func(o *searchOptions) {
		o.includeMetadata = false
	}
}

// WithFilter restricts results to records whose metadata matches the
// filter set. Equality and membership filters are served by the inverted
// index; sets containing predicate filters are evaluated per candidate.
func WithFilter(fs *metadata.FilterSet) SearchOption {
	return func(o *searchOptions) {
		o.filters = fs
	}
}

// WithFilters is shorthand for WithFilter(metadata.NewFilterSet(filters...)).
func WithFilters(filters ...metadata.Filter) SearchOption {
	return WithFilter(metadata.NewFilterSet(filters...))
}

// Search returns the k stored vectors most similar to query, ordered by
// cosine similarity descending with ties broken by id ascending. k <= 0
// requests DefaultSearchK results.
func (s *Store) Search(query []float32, k int, optFns ...SearchOption) ([]Result, error) {
	start := time.Now()
	results, err := s.search(query, k, optFns)
	s.metrics.RecordSearch(k, time.Since(start), err)
	s.logger.LogSearch(k, len(results), err)
	return results, err
}

func (s *Store) search(query []float32, k int, optFns []SearchOption) ([]Result, error) {
	if len(query) != s.dimension {
		return nil, &embedding.ErrDimensionMismatch{Expected: s.dimension, Actual: len(query)}
	}
	if k <= 0 {
		k = DefaultSearchK
	}

	so := searchOptions{includeMetadata: true}
	for _, fn := range optFns {
		fn(&so)
	}

	var allow index.FilterFunc
	if so.filters != nil && len(so.filters.Filters) > 0 {
		if fn, ok := s.filters.Compile(so.filters); ok {
			allow = fn
		} else {
			fs := so.filters
			allow = func(id string) bool {
				rec, ok := s.records[id]
				return ok && fs.Matches(rec.meta)
			}
		}
	}

	hits, err := s.index.SearchFilter(query, k, allow)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{ID: h.ID, Score: h.Score}
		if so.includeMetadata {
			if rec, ok := s.records[h.ID]; ok {
				results[i].Metadata = rec.meta
			} else {
				results[i].Metadata = metadata.Metadata{}
			}
		}
	}
	return results, nil
}

// NearestNeighbors returns up to k neighbors of the record stored under
// id, excluding id itself. It fails with ErrNotFound if id is absent.
func (s *Store) NearestNeighbors(id string, k int) ([]index.SearchResult, error) {
	if k <= 0 {
		k = DefaultSearchK
	}
	results, err := s.index.NearestNeighbors(id, k)
	if err != nil {
		var nf *index.ErrIDNotFound
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	return results, nil
}

// Delete removes the record stored under id from the store, the metadata
// index, and the vector index, reporting whether it was present.
//
// Record membership is authoritative: a miss in the vector index is
// logged, not surfaced, since the record itself is already gone.
func (s *Store) Delete(id string) bool {
	start := time.Now()
	rec, ok := s.records[id]
	if !ok {
		s.metrics.RecordDelete(time.Since(start), false)
		s.logger.LogDelete(id, false)
		return false
	}

	delete(s.records, id)
	s.filters.Remove(id, rec.meta)
	if !s.index.Delete(id) {
		s.logger.Warn("index delete miss", "id", id)
	}

	s.metrics.RecordDelete(time.Since(start), true)
	s.logger.LogDelete(id, true)
	return true
}

// Save writes the store to a local file as one snapshot blob, creating
// any missing parent directories.
func (s *Store) Save(path string) error {
	return s.SaveTo(context.Background(), blobstore.NewLocalStore(""), path)
}

// SaveTo writes the store to the given blobstore under name.
func (s *Store) SaveTo(ctx context.Context, bs blobstore.BlobStore, name string) error {
	start := time.Now()
	err := s.saveTo(ctx, bs, name)
	s.metrics.RecordSave(time.Since(start), err)
	s.logger.LogSave(name, err)
	return err
}

func (s *Store) saveTo(ctx context.Context, bs blobstore.BlobStore, name string) error {
	blob, err := snapshot.Encode(s.snapshotState(), s.codec, s.compression)
	if err != nil {
		return fmt.Errorf("save vector store %q: %w", name, err)
	}
	if err := bs.Put(ctx, name, blob); err != nil {
		return fmt.Errorf("save vector store %q: %w", name, err)
	}
	return nil
}

func (s *Store) snapshotState() *snapshot.State {
	embeddings := make(map[string][]float32, len(s.records))
	meta := make(map[string]metadata.Metadata, len(s.records))
	for id, rec := range s.records {
		embeddings[id] = rec.vector
		meta[id] = rec.meta
	}
	return &snapshot.State{
		Version:    snapshot.StateVersion,
		Dimension:  s.dimension,
		IndexType:  s.indexType,
		Embeddings: embeddings,
		Metadata:   meta,
	}
}

// Load reads a store previously written with Save.
func Load(path string, optFns ...Option) (*Store, error) {
	return LoadFrom(context.Background(), blobstore.NewLocalStore(""), path, optFns...)
}

// LoadFrom reads a store snapshot from the given blobstore.
//
// The snapshot's dimension and strategy label win over any options; the
// vector index is rebuilt from the embeddings and never trusted from the
// blob.
func LoadFrom(ctx context.Context, bs blobstore.BlobStore, name string, optFns ...Option) (*Store, error) {
	o := applyOptions(optFns)
	start := time.Now()
	s, err := loadFrom(ctx, bs, name, optFns)
	o.metrics.RecordLoad(time.Since(start), err)
	count := 0
	if s != nil {
		count = s.Len()
	}
	o.logger.LogLoad(name, count, err)
	return s, err
}

func loadFrom(ctx context.Context, bs blobstore.BlobStore, name string, optFns []Option) (*Store, error) {
	blob, err := bs.Get(ctx, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("vector store %q not found: %w", name, err)
		}
		return nil, fmt.Errorf("load vector store %q: %w", name, err)
	}

	st, err := snapshot.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("load vector store %q: %w", name, err)
	}

	s, err := New(st.Dimension, append(slices.Clone(optFns), WithIndexType(st.IndexType))...)
	if err != nil {
		return nil, fmt.Errorf("load vector store %q: %w", name, err)
	}

	for id, vector := range st.Embeddings {
		// Metadata for an id missing from the blob is normalized to an
		// empty map, restoring the store invariant.
		if err := s.add(id, vector, st.Metadata[id]); err != nil {
			return nil, fmt.Errorf("load vector store %q: rebuild index: %w", name, err)
		}
	}
	return s, nil
}
