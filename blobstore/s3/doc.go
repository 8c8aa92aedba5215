// Package s3 implements blobstore.Store on Amazon S3.
//
//	store, err := s3.NewFromConfig(ctx, "my-bucket", "splats/")
//	if err != nil { ... }
//	s, err := spz.LoadFromStore(ctx, store, "room.spz")
//
// Any client satisfying Client can be used, which is how the unit tests mock S3.
package s3
