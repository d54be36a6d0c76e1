package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArtifactAssembledEvent is published after a finalize commits an artifact,
// so downstream consumers (thumbnailing, indexing) can react to new files.
type ArtifactAssembledEvent struct {
	ArtifactID  uuid.UUID `json:"artifact_id"`
	OwnerID     string    `json:"owner_id"`
	Category    string    `json:"category"`
	FileName    string    `json:"file_name"`
	ByteLength  int64     `json:"byte_length"`
	StorageKey  string    `json:"storage_key"`
	AssembledAt time.Time `json:"assembled_at"`
}
