package port

import (
	"context"
	"io"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/google/uuid"
)

// FinalizeInput carries the caller-resupplied metadata for a finalize call.
// The finalizer re-validates it against the session ledger instead of
// trusting the ledger alone.
type FinalizeInput struct {
	SessionID    uuid.UUID
	OwnerID      string
	Category     string
	OriginalName string
	DeclaredSize int64
	TotalParts   int
}

// UploadService is an interface to define the chunked upload pipeline
type UploadService interface {
	StartSession(ctx context.Context, ownerID, category, originalName string, declaredSize int64, declaredTotalParts int) (*domain.UploadSession, error)
	ReceivePart(ctx context.Context, sessionID uuid.UUID, index, totalParts int, body io.Reader, byteLength int64) (*domain.PartReceipt, error)
	VerifyComplete(ctx context.Context, sessionID uuid.UUID, totalParts int) (*domain.UploadStatus, error)
	Finalize(ctx context.Context, in FinalizeInput) (*domain.Artifact, string, error)
	GetArtifact(ctx context.Context, artifactID uuid.UUID) (*domain.Artifact, string, error)
}
