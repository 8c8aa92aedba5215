package minio

import (
	"context"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/spz/blobstore"
)

// TestStore_Integration needs a MinIO server on localhost:9000 and skips otherwise.
func TestStore_Integration(t *testing.T) {
	const bucket = "test-spz"

	store, err := Dial("localhost:9000", "minioadmin", "minioadmin", false, bucket, "it/")
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("splat payload")
	require.NoError(t, store.Put(ctx, "room.spz", data))

	ok, err := store.Exists(ctx, "room.spz")
	require.NoError(t, err)
	require.True(t, ok)

	got, err := store.Get(ctx, "room.spz")
	require.NoError(t, err)
	require.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "room.spz"))

	ok, err = store.Exists(ctx, "room.spz")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = store.Get(ctx, "room.spz")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestIsNotFound(t *testing.T) {
	require.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	require.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	require.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
}
