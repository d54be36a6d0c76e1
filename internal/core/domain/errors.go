package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory is an error thrown when the upload category is unknown
var ErrInvalidCategory = errors.New("invalid category")

// ErrSizeLimitExceeded is an error thrown when the declared size exceeds the category ceiling
var ErrSizeLimitExceeded = errors.New("size limit exceeded")

// ErrInvalidFileType is an error thrown when the file type is not allowed for the category
var ErrInvalidFileType = errors.New("invalid file type")

// ErrSessionNotFound is an error thrown when session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrIndexOutOfRange is an error thrown when a part index falls outside [0, totalParts)
var ErrIndexOutOfRange = errors.New("part index out of range")

// ErrEmptyPart is an error thrown when a part carries no bytes
var ErrEmptyPart = errors.New("empty part")

// ErrIncompleteUpload is an error thrown when parts are missing at finalize
var ErrIncompleteUpload = errors.New("incomplete upload")

// ErrSizeMismatch is an error thrown when the reassembled length differs from the declared size
var ErrSizeMismatch = errors.New("size mismatch")

// ErrChecksumMismatch is an error thrown when a stored part no longer matches its recorded digest
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ErrMetadataMismatch is an error thrown when finalize metadata disagrees with the session ledger
var ErrMetadataMismatch = errors.New("metadata mismatch")

// ErrArtifactNotFound is an error thrown when an artifact is not found
var ErrArtifactNotFound = errors.New("artifact not found")

// IncompleteUploadError carries the exact indices a client must resend. It
// unwraps to ErrIncompleteUpload so callers can match with errors.Is.
type IncompleteUploadError struct {
	Missing []int
}

func (e *IncompleteUploadError) Error() string {
	return fmt.Sprintf("incomplete upload: missing parts %v", e.Missing)
}

func (e *IncompleteUploadError) Unwrap() error {
	return ErrIncompleteUpload
}
