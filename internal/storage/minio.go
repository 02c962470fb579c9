package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioUploader targets any S3-compatible endpoint. The bucket is expected
// to allow anonymous reads of uploaded objects.
type MinioUploader struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

func NewMinioUploader(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioUploader, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioUploader{client: client, bucket: bucket, endpoint: endpoint, useSSL: useSSL}, nil
}

// EnsureBucket creates the bucket on first start.
func (u *MinioUploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", u.bucket, err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", u.bucket, err)
	}
	return nil
}

func (u *MinioUploader) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, u.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", path, err)
	}
	return u.publicURL(path), nil
}

func (u *MinioUploader) publicURL(path string) string {
	scheme := "http"
	if u.useSSL {
		scheme = "https"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.endpoint,
		Path:   "/" + u.bucket + "/" + path,
	}).String()
}
