package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"enumeration-report/core/storage"
	"enumeration-report/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "products").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(ctx, m, "products", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "products").Return(false, nil)
		m.On("MakeBucket", ctx, "products", minio.MakeBucketOptions{Region: "us-west-2"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(ctx, m, "products", "us-west-2"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "products").Return(false, errors.New("denied"))

		assert.ErrorContains(t, storage.EnsureBucket(ctx, m, "products", ""), "denied")
	})
}

func TestRemovePrefix(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("ListObjects", ctx, "products", mock.Anything).Return(nil)

		assert.NoError(t, storage.RemovePrefix(ctx, m, "products", "reports/p1/"))
		m.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RemovesListed", func(t *testing.T) {
		listed := make(chan minio.ObjectInfo, 2)
		listed <- minio.ObjectInfo{Key: "reports/p1/p1.xlsx"}
		listed <- minio.ObjectInfo{Key: "reports/p1/p1.met.json"}
		close(listed)

		var removed []string
		m := new(mocks.Client)
		m.On("ListObjects", ctx, "products", minio.ListObjectsOptions{Prefix: "reports/p1/", Recursive: true}).
			Return((<-chan minio.ObjectInfo)(listed))
		m.On("RemoveObjects", ctx, "products", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
					removed = append(removed, obj.Key)
				}
			}).
			Return(nil)

		require.NoError(t, storage.RemovePrefix(ctx, m, "products", "reports/p1/"))
		assert.Equal(t, []string{"reports/p1/p1.xlsx", "reports/p1/p1.met.json"}, removed)
	})
}

func TestUploadFile(t *testing.T) {
	ctx := context.Background()
	src := filepath.Join(t.TempDir(), "p1.met.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"track_number":"42"}`), 0o644))

	m := new(mocks.Client)
	m.On("PutObject", ctx, "products", "reports/p1/p1.met.json", mock.Anything, int64(21),
		minio.PutObjectOptions{ContentType: "application/json"}).
		Return(minio.UploadInfo{Key: "reports/p1/p1.met.json", Size: 21}, nil)

	info, err := storage.UploadFile(ctx, m, "products", "reports/p1/p1.met.json", src, "application/json")
	require.NoError(t, err)
	assert.Equal(t, int64(21), info.Size)
	m.AssertExpectations(t)
}
