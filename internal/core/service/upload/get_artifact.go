package upload

import (
	"context"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/google/uuid"
)

// GetArtifact returns a committed artifact with a presigned download URL.
func (u *uploadService) GetArtifact(ctx context.Context, artifactID uuid.UUID) (*domain.Artifact, string, error) {

	artifact, err := u.uow.ArtifactRepo().FindByID(ctx, artifactID)
	if err != nil {
		return nil, "", err
	}

	url, _, err := u.blobStore.PresignedDownloadURL(ctx, artifact.StorageKey)
	if err != nil {
		return nil, "", err
	}

	return artifact, url, nil
}
