package minio

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/hupe1980/sptensor/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "b", "tensors/")
	assert.Equal(t, "tensors/a.coo", s.key("a.coo"))
	assert.Equal(t, "a.coo", NewStore(nil, "b", "").key("a.coo"))
}

func TestNotFoundTranslation(t *testing.T) {
	err := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	assert.ErrorIs(t, translate(err), blobstore.ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	store, err := Dial("localhost:9000", "minioadmin", "minioadmin", "test-sptensor", WithPrefix("test-prefix/"))
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := store.client.BucketExists(ctx, store.bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, store.bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("2\n2 2\n0 0 1\n1 1 1\n")
	require.NoError(t, store.Put(ctx, "eye.coo", data))

	r, err := store.Open(ctx, "eye.coo")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "eye.coo")

	require.NoError(t, store.Delete(ctx, "eye.coo"))

	_, err = store.Open(ctx, "eye.coo")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
