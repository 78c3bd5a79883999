// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("tensors/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	t, err := tensorio.Load(ctx, store, "a.coo")
//
// # Features
//
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints with path-style addressing for S3-compatible services
package s3
