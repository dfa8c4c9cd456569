// Package s3 implements blobstore.BlobStore backed by AWS S3 using the
// AWS SDK v2.
package s3
