package domain

import (
	"time"

	"github.com/google/uuid"
)

// Artifact is the final, immutable, reassembled file as stored and referenced
// by the rest of the platform. It is created once by Finalize and never
// modified afterwards.
type Artifact struct {
	ID          uuid.UUID
	OwnerID     string
	Category    string
	FileName    string
	ContentType string
	ByteLength  int64
	StorageKey  string
	CreatedAt   time.Time
}
