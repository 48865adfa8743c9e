// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to publish report products (workbooks and their
// sidecar metadata) to AWS S3 or a self-hosted MinIO instance.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - EnsureBucket: Creates the target bucket if needed.
//   - RemovePrefix: Clears a previous upload of the same product.
//   - UploadFile: Uploads one local artifact.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
package storage
