package port

import (
	"context"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/google/uuid"
)

// ArtifactRepository is an interface to interact with committed artifacts
type ArtifactRepository interface {
	Create(ctx context.Context, artifact domain.Artifact) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Artifact, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Artifact, error)
}
