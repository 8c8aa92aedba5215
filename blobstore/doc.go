// Package blobstore stores serialized splats by name.
//
// Store has a local filesystem implementation here and object storage implementations
// in the s3 and minio subpackages. The spz package loads from and saves to any Store.
//
//	store := blobstore.NewLocalStore("/var/lib/splats")
//	err := spz.SaveToStore(ctx, store, "scenes/room.spz", s)
//
// Missing objects are reported with an error matching ErrNotFound.
package blobstore
