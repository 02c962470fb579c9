package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	firebasestorage "firebase.google.com/go/v4/storage"
	"github.com/google/uuid"
)

// downloadTokenKey is the metadata key Firebase Storage reads download
// tokens from.
const downloadTokenKey = "firebaseStorageDownloadTokens"

// FirebaseUploader writes to the project's Cloud Storage bucket and returns
// the same token URLs the Firebase client SDK's getDownloadURL produces.
type FirebaseUploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseUploader(client *firebasestorage.Client, bucketName string) (*FirebaseUploader, error) {
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucketName, err)
	}
	return &FirebaseUploader{bucket: bucket, bucketName: bucketName}, nil
}

func (u *FirebaseUploader) Upload(ctx context.Context, path string, r io.Reader, _ int64, contentType string) (string, error) {
	token := uuid.NewString()

	w := u.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{downloadTokenKey: token}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", path, err)
	}
	return firebaseDownloadURL(u.bucketName, path, token), nil
}

func firebaseDownloadURL(bucket, path, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(path), url.QueryEscape(token))
}
