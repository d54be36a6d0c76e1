package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadSessionStatus represents the status of an upload session
type UploadSessionStatus string

const (
	UploadSessionStatusOpen      UploadSessionStatus = "open"
	UploadSessionStatusCompleted UploadSessionStatus = "completed"
	UploadSessionStatusAborted   UploadSessionStatus = "aborted"
)

// UploadSession is the bookkeeping context tying together all parts of one
// logical file upload. It is created at session start and removed once the
// artifact is committed or the session expires.
type UploadSession struct {
	ID                 uuid.UUID
	OwnerID            string
	Category           string
	OriginalName       string
	DeclaredSize       int64
	DeclaredTotalParts int
	Status             UploadSessionStatus
	ExpiresAt          time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Part is one contiguous fragment of a file, submitted independently.
// Exactly one part may exist per (SessionID, Index); a resend replaces it.
type Part struct {
	SessionID      uuid.UUID
	Index          int
	ByteLength     int64
	ChecksumSHA256 string
	StorageKey     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PartReceipt is returned to the caller after a part has been durably stored.
type PartReceipt struct {
	SessionID      uuid.UUID
	Index          int
	ByteLength     int64
	ChecksumSHA256 string
}

// UploadStatus reports whether a session holds a contiguous set of parts
// 0..TotalParts-1 and, if not, exactly which indices are still missing.
type UploadStatus struct {
	Complete bool
	Missing  []int
}
