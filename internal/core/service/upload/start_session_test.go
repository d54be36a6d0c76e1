package upload_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Figuu/cemse-sub010/internal/adapters/eventbroker"
	"github.com/Figuu/cemse-sub010/internal/adapters/repository"
	"github.com/Figuu/cemse-sub010/internal/adapters/storage"
	"github.com/Figuu/cemse-sub010/internal/config"
	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/service/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var defaultCfg = config.UploadConfig{
	MaxPartSize:  10 << 20,
	SessionTTL:   30 * time.Minute,
	CleanupEvery: 15 * time.Minute,
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestUploadService_StartSession_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	var created domain.UploadSession
	mockUow.GetSessionRepoMock().On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(domain.UploadSession)
		}).
		Return(nil)

	// Act
	session, err := service.StartSession(ctx, "user-1", "document", "report.pdf", 1024, 3)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "user-1", session.OwnerID)
	assert.Equal(t, "document", session.Category)
	assert.Equal(t, "report.pdf", session.OriginalName)
	assert.Equal(t, int64(1024), session.DeclaredSize)
	assert.Equal(t, 3, session.DeclaredTotalParts)
	assert.Equal(t, domain.UploadSessionStatusOpen, session.Status)
	assert.WithinDuration(t, time.Now().Add(defaultCfg.SessionTTL), session.ExpiresAt, time.Minute)
	assert.Equal(t, session.ID, created.ID)
	mockUow.GetSessionRepoMock().AssertExpectations(t)
}

func TestUploadService_StartSession_SanitizesFileName(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	mockUow.GetSessionRepoMock().On("Create", ctx, mock.Anything).Return(nil)

	// Act
	session, err := service.StartSession(ctx, "user-1", "document", "../évil rapport (final)!.pdf", 1024, 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "vilrapportfinal.pdf", session.OriginalName)
}

func TestUploadService_StartSession_InvalidCategory(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	// Act
	session, err := service.StartSession(ctx, "user-1", "malware", "report.pdf", 1024, 3)

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	require.Nil(t, session)
	mockUow.GetSessionRepoMock().AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadService_StartSession_SizeLimitExceeded(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	// Act: document category tops out at 50MB
	session, err := service.StartSession(ctx, "user-1", "document", "report.pdf", 51<<20, 6)

	// Assert
	assert.ErrorIs(t, err, domain.ErrSizeLimitExceeded)
	require.Nil(t, session)
}

func TestUploadService_StartSession_NonPositiveSize(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	// Act
	session, err := service.StartSession(ctx, "user-1", "document", "report.pdf", 0, 1)

	// Assert
	assert.ErrorIs(t, err, domain.ErrSizeLimitExceeded)
	require.Nil(t, session)
}

func TestUploadService_StartSession_NonPositiveTotalParts(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	// Act
	session, err := service.StartSession(ctx, "user-1", "document", "report.pdf", 1024, 0)

	// Assert
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	require.Nil(t, session)
}

func TestUploadService_StartSession_InvalidFileType(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	// Act: document category only accepts PDFs
	session, err := service.StartSession(ctx, "user-1", "document", "selfie.png", 1024, 1)

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidFileType)
	require.Nil(t, session)
}
