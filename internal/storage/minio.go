package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/harukit/civic-report-api/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore keeps blobs in MinIO, one bucket per area.
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore connects to MinIO and ensures the area buckets exist.
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()
	for _, area := range []Area{AreaPending, AreaApproved} {
		bucket := bucketFor(area)
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
	}

	return &MinioStore{client: client}, nil
}

func bucketFor(area Area) string {
	return "civic-" + string(area)
}

// Save writes the object into the given area.
func (s *MinioStore) Save(ctx context.Context, area Area, name string, r io.Reader, size int64) error {
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, bucketFor(area), name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload blob %s/%s: %w", area, name, err)
	}
	return nil
}

// Move copies the object to the destination bucket, then removes the source.
func (s *MinioStore) Move(ctx context.Context, from, to Area, name string) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: bucketFor(to), Object: name},
		minio.CopySrcOptions{Bucket: bucketFor(from), Object: name},
	)
	if err != nil {
		return fmt.Errorf("failed to move blob %s from %s to %s: %w", name, from, to, err)
	}

	if err := s.client.RemoveObject(ctx, bucketFor(from), name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove source blob %s/%s after copy: %w", from, name, err)
	}
	return nil
}

// Delete removes the object from the area.
func (s *MinioStore) Delete(ctx context.Context, area Area, name string) error {
	// RemoveObject succeeds on absent objects, so stat first to surface
	// the not-found case to the caller.
	exists, err := s.Exists(ctx, area, name)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBlobNotFound
	}

	if err := s.client.RemoveObject(ctx, bucketFor(area), name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete blob %s/%s: %w", area, name, err)
	}
	return nil
}

// Exists reports whether the object is present in the area.
func (s *MinioStore) Exists(ctx context.Context, area Area, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, bucketFor(area), name, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat blob %s/%s: %w", area, name, err)
	}
	return true, nil
}
