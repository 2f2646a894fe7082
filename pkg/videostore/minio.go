package videostore

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

const presignExpiry = 24 * time.Hour

// MinIO stores vlogs in an object bucket and serves them via presigned
// GET URLs.
type MinIO struct {
	client *minio.Client
	bucket string
}

func NewMinIO(client *minio.Client, bucket string) *MinIO {
	return &MinIO{client: client, bucket: bucket}
}

func (m *MinIO) Save(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	name := objectName(filename)

	_, err := m.client.PutObject(ctx, m.bucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func (m *MinIO) URL(ctx context.Context, name string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, name, presignExpiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
