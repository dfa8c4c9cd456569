// Package index provides an inverted index that accelerates metadata
// filtering for equality and membership queries.
//
// Postings are Roaring bitmaps over dense internal rows; external string
// ids are interned on first add. Filters containing predicates fall back
// to scanning and evaluating metadata.FilterSet per record.
package index

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/llamavec/llamavec/metadata"
)

// InvertedIndex maps metadata key/value pairs to the set of ids carrying
// them. It is not safe for concurrent use; callers serialize access
// externally, as with the vector index.
type InvertedIndex struct {
	rows map[string]uint32 // id -> dense row
	ids  []string          // row -> id, "" for freed rows
	free []uint32

	// key -> value term -> rows
	fields map[string]map[string]*roaring.Bitmap
}

// New creates an empty inverted index.
func New() *InvertedIndex {
	return &InvertedIndex{
		rows:   make(map[string]uint32),
		fields: make(map[string]map[string]*roaring.Bitmap),
	}
}

// Len returns the number of indexed ids.
func (ix *InvertedIndex) Len() int {
	return len(ix.rows)
}

// Add indexes the metadata of id, interning the id if unseen.
func (ix *InvertedIndex) Add(id string, doc metadata.Metadata) {
	row := ix.intern(id)
	for k, v := range doc {
		vm, ok := ix.fields[k]
		if !ok {
			vm = make(map[string]*roaring.Bitmap)
			ix.fields[k] = vm
		}
		term := metadata.ValueKey(v)
		bm, ok := vm[term]
		if !ok {
			bm = roaring.New()
			vm[term] = bm
		}
		bm.Add(row)
	}
}

// Remove drops the postings of id and releases its row.
func (ix *InvertedIndex) Remove(id string, doc metadata.Metadata) {
	row, ok := ix.rows[id]
	if !ok {
		return
	}
	ix.removePostings(row, doc)
	delete(ix.rows, id)
	ix.ids[row] = ""
	ix.free = append(ix.free, row)
}

// Update replaces the postings of id, keeping its row stable.
func (ix *InvertedIndex) Update(id string, oldDoc, newDoc metadata.Metadata) {
	if row, ok := ix.rows[id]; ok {
		ix.removePostings(row, oldDoc)
	}
	ix.Add(id, newDoc)
}

// Compile attempts to compile a FilterSet into a fast membership test. If
// the set contains a filter the index cannot serve, ok is false and the
// caller must evaluate the set per record instead.
func (ix *InvertedIndex) Compile(fs *metadata.FilterSet) (fn func(id string) bool, ok bool) {
	if fs == nil || len(fs.Filters) == 0 {
		return nil, false
	}

	var acc *roaring.Bitmap
	for _, f := range fs.Filters {
		values, indexable := f.EqualValues()
		if !indexable {
			return nil, false
		}

		union := roaring.New()
		if vm, ok := ix.fields[f.Key]; ok {
			for _, v := range values {
				if bm, ok := vm[metadata.ValueKey(v)]; ok {
					union.Or(bm)
				}
			}
		}

		if acc == nil {
			acc = union
		} else {
			acc.And(union)
		}
		if acc.IsEmpty() {
			return func(string) bool { return false }, true
		}
	}

	return func(id string) bool {
		row, ok := ix.rows[id]
		return ok && acc.Contains(row)
	}, true
}

func (ix *InvertedIndex) intern(id string) uint32 {
	if row, ok := ix.rows[id]; ok {
		return row
	}
	var row uint32
	if n := len(ix.free); n > 0 {
		row = ix.free[n-1]
		ix.free = ix.free[:n-1]
		ix.ids[row] = id
	} else {
		row = uint32(len(ix.ids))
		ix.ids = append(ix.ids, id)
	}
	ix.rows[id] = row
	return row
}

func (ix *InvertedIndex) removePostings(row uint32, doc metadata.Metadata) {
	for k, v := range doc {
		vm, ok := ix.fields[k]
		if !ok {
			continue
		}
		term := metadata.ValueKey(v)
		bm, ok := vm[term]
		if !ok {
			continue
		}
		bm.Remove(row)
		if bm.IsEmpty() {
			delete(vm, term)
		}
		if len(vm) == 0 {
			delete(ix.fields, k)
		}
	}
}
