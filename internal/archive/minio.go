package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Minio struct {
	mc     *minio.Client
	bucket string
}

var _ RawArchive = &Minio{}

// NewMinio creates a RawArchive backed by an S3-compatible object store.
func NewMinio(endpoint, accessKey, secretKey string, useTLS bool, bucket string) (*Minio, error) {
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &Minio{mc: mc, bucket: bucket}, nil
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (a *Minio) EnsureBucket(ctx context.Context) error {
	exists, err := a.mc.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := a.mc.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket: %w", err)
		}
	}
	return nil
}

func (a *Minio) Store(ctx context.Context, key string, body []byte) error {
	_, err := a.mc.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}
