package upload_test

import (
	"context"
	"testing"
	"time"

	"github.com/Figuu/cemse-sub010/internal/adapters/eventbroker"
	"github.com/Figuu/cemse-sub010/internal/adapters/repository"
	"github.com/Figuu/cemse-sub010/internal/adapters/storage"
	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/service/upload"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadService_GetArtifact_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	artifactID := uuid.New()
	artifact := &domain.Artifact{
		ID:          artifactID,
		OwnerID:     "user-1",
		Category:    "document",
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		ByteLength:  1024,
		StorageKey:  "document/user-1/1724900000-a1b2c3d4.pdf",
	}
	expiry := time.Now().Add(15 * time.Minute)

	mockUow.GetArtifactRepoMock().On("FindByID", ctx, artifactID).Return(artifact, nil)
	mockStore.On("PresignedDownloadURL", ctx, artifact.StorageKey).
		Return("https://blob.test/"+artifact.StorageKey, &expiry, nil)

	// Act
	got, url, err := service.GetArtifact(ctx, artifactID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, artifact, got)
	assert.Equal(t, "https://blob.test/"+artifact.StorageKey, url)
	mockUow.GetArtifactRepoMock().AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestUploadService_GetArtifact_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	artifactID := uuid.New()
	mockUow.GetArtifactRepoMock().On("FindByID", ctx, artifactID).
		Return((*domain.Artifact)(nil), domain.ErrArtifactNotFound)

	// Act
	got, url, err := service.GetArtifact(ctx, artifactID)

	// Assert
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	require.Nil(t, got)
	assert.Empty(t, url)
	mockStore.AssertNotCalled(t, "PresignedDownloadURL", mock.Anything, mock.Anything)
}
