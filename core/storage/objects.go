package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/minio/minio-go/v7"
)

// EnsureBucket creates bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, client Client, bucket, region string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// RemovePrefix deletes every object stored under prefix.
func RemovePrefix(ctx context.Context, client Client, bucket, prefix string) error {
	var existing []minio.ObjectInfo
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		existing = append(existing, obj)
	}
	if len(existing) == 0 {
		return nil
	}

	toDelete := make(chan minio.ObjectInfo, len(existing))
	for _, obj := range existing {
		toDelete <- obj
	}
	close(toDelete)

	var errs []error
	for rErr := range client.RemoveObjects(ctx, bucket, toDelete, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err))
	}
	return errors.Join(errs...)
}

// UploadFile uploads the local file at src to key.
func UploadFile(ctx context.Context, client Client, bucket, key, src, contentType string) (minio.UploadInfo, error) {
	f, err := os.Open(src)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return minio.UploadInfo{}, err
	}

	info, err := client.PutObject(ctx, bucket, key, f, stat.Size(), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload %s: %w", path.Base(key), err)
	}
	return info, nil
}
