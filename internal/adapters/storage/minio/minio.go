package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Figuu/cemse-sub010/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// WritePart stores one transient fragment under its session-scoped key
func (a *Adapter) WritePart(ctx context.Context, key string, r io.Reader, size int64) error {
	_, err := a.client.PutObject(ctx, a.config.BucketName, key, r, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to write part: %w", err)
	}
	return nil
}

// ReadPart opens one stored fragment for reading
func (a *Adapter) ReadPart(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := a.client.GetObject(ctx, a.config.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read part: %w", err)
	}
	return object, nil
}

// WriteArtifact stores the reassembled file. The put is atomic on the minio
// side: the object becomes visible only once the full stream was accepted.
func (a *Adapter) WriteArtifact(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := a.client.PutObject(ctx, a.config.BucketName, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	a.logger.Info("artifact stored",
		slog.String("key", key),
		slog.Int64("size", size))

	return nil
}

// RemoveObject deletes an object from storage
func (a *Adapter) RemoveObject(ctx context.Context, key string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// RemovePrefix deletes every object below the given prefix
func (a *Adapter) RemovePrefix(ctx context.Context, prefix string) error {
	objects := a.client.ListObjects(ctx, a.config.BucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objects {
		if object.Err != nil {
			return fmt.Errorf("failed to list objects under %s: %w", prefix, object.Err)
		}
		if err := a.client.RemoveObject(ctx, a.config.BucketName, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to delete object %s: %w", object.Key, err)
		}
	}

	a.logger.Info("prefix removed",
		slog.String("prefix", prefix),
		slog.String("bucket", a.config.BucketName))

	return nil
}

// PresignedDownloadURL generates a presigned URL for downloading a file
func (a *Adapter) PresignedDownloadURL(ctx context.Context, key string) (string, *time.Time, error) {
	presignedURL, err := a.client.PresignedGetObject(ctx, a.config.BucketName, key, a.config.DownloadSignedURLDuration, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.DownloadSignedURLDuration)

	return presignedURL.String(), &expiresAt, nil
}
