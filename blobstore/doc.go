// Package blobstore abstracts where persisted vector store blobs live.
//
// The local filesystem backend is the default; MemoryStore backs tests,
// and the minio and s3 subpackages provide object-storage backends behind
// the same interface.
package blobstore
