// Package llamavec provides an in-memory vector similarity engine: it
// stores fixed-dimension float32 embeddings with associated metadata and
// answers nearest-neighbor queries by cosine similarity.
//
// # Quick start
//
//	store, err := llamavec.New(3)
//	if err != nil {
//	    panic(err)
//	}
//
//	_ = store.Add("doc-1", []float32{1, 0, 0}, metadata.Metadata{"category": "basis"})
//
//	results, err := store.Search([]float32{0.9, 0.1, 0.1}, 2)
//	for _, r := range results {
//	    fmt.Println(r.ID, r.Score, r.Metadata)
//	}
//
// Search results can be narrowed with metadata filters:
//
//	results, err = store.Search(query, 10,
//	    llamavec.WithFilter(metadata.NewFilterSet(
//	        metadata.Eq("category", "basis"),
//	    )))
//
// Stores persist to a single self-describing blob, locally or on any
// blobstore backend:
//
//	_ = store.Save("data/store.lvec")
//	restored, _ := llamavec.Load("data/store.lvec")
//
// The store performs no internal locking; concurrent callers must
// serialize access externally. Search is exact brute force: every query
// is scored against every stored vector.
package llamavec
