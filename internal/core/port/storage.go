package port

import (
	"context"
	"io"
	"time"
)

// BlobStore is an interface to define durable blob storage interactions.
// Part fragments and assembled artifacts both live behind it.
type BlobStore interface {
	WritePart(ctx context.Context, key string, r io.Reader, size int64) error
	ReadPart(ctx context.Context, key string) (io.ReadCloser, error)
	WriteArtifact(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	RemoveObject(ctx context.Context, key string) error
	// RemovePrefix deletes every object under the given key prefix. Used to
	// drop all transient parts of a session, stale extras included.
	RemovePrefix(ctx context.Context, prefix string) error
	PresignedDownloadURL(ctx context.Context, key string) (string, *time.Time, error)
}
