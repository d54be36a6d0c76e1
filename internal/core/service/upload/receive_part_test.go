package upload_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"testing"

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

func openSession(sessionID uuid.UUID, totalParts int) *domain.UploadSession {
	return &domain.UploadSession{
		ID:                 sessionID,
		OwnerID:            "user-1",
		Category:           "document",
		OriginalName:       "report.pdf",
		DeclaredSize:       1024,
		DeclaredTotalParts: totalParts,
		Status:             domain.UploadSessionStatusOpen,
	}
}

func TestUploadService_ReceivePart_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	sessionID := uuid.New()
	payload := []byte("hello part zero")
	wantSum := sha256.Sum256(payload)

	mockUow.GetSessionRepoMock().On("FindByIDAndOpen", ctx, sessionID).Return(openSession(sessionID, 3), nil)
	mockStore.On("WritePart", ctx, mock.Anything, mock.Anything, int64(len(payload))).
		Run(func(args mock.Arguments) {
			_, err := io.Copy(io.Discard, args.Get(2).(io.Reader))
			require.NoError(t, err)
		}).
		Return(nil)

	var recorded domain.Part
	mockUow.GetPartRepoMock().On("Upsert", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(domain.Part)
		}).
		Return(nil)
	mockUow.GetSessionRepoMock().On("UpdateExpiresAt", ctx, sessionID, mock.Anything).Return(nil)

	// Act
	receipt, err := service.ReceivePart(ctx, sessionID, 0, 3, bytes.NewReader(payload), int64(len(payload)))

	// Assert
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, sessionID, receipt.SessionID)
	assert.Equal(t, 0, receipt.Index)
	assert.Equal(t, int64(len(payload)), receipt.ByteLength)
	assert.Equal(t, hex.EncodeToString(wantSum[:]), receipt.ChecksumSHA256)
	assert.Equal(t, receipt.ChecksumSHA256, recorded.ChecksumSHA256)
	assert.NotEmpty(t, recorded.StorageKey)
	mockUow.GetSessionRepoMock().AssertExpectations(t)
	mockUow.GetPartRepoMock().AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestUploadService_ReceivePart_ResendReplaces(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	sessionID := uuid.New()
	payload := []byte("same bytes every retry")

	mockUow.GetSessionRepoMock().On("FindByIDAndOpen", ctx, sessionID).Return(openSession(sessionID, 2), nil)
	mockStore.On("WritePart", ctx, mock.Anything, mock.Anything, int64(len(payload))).
		Run(func(args mock.Arguments) {
			_, _ = io.Copy(io.Discard, args.Get(2).(io.Reader))
		}).
		Return(nil)

	var keys []string
	mockUow.GetPartRepoMock().On("Upsert", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			keys = append(keys, args.Get(1).(domain.Part).StorageKey)
		}).
		Return(nil)
	mockUow.GetSessionRepoMock().On("UpdateExpiresAt", ctx, sessionID, mock.Anything).Return(nil)

	// Act: the same part twice, as a client retry would
	first, err1 := service.ReceivePart(ctx, sessionID, 1, 2, bytes.NewReader(payload), int64(len(payload)))
	second, err2 := service.ReceivePart(ctx, sessionID, 1, 2, bytes.NewReader(payload), int64(len(payload)))

	// Assert: both land on the same storage key with the same checksum
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first.ChecksumSHA256, second.ChecksumSHA256)
	require.Len(t, keys, 2)
	assert.Equal(t, keys[0], keys[1])
}

func TestUploadService_ReceivePart_SessionNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	sessionID := uuid.New()
	mockUow.GetSessionRepoMock().On("FindByIDAndOpen", ctx, sessionID).
		Return((*domain.UploadSession)(nil), domain.ErrSessionNotFound)

	// Act
	receipt, err := service.ReceivePart(ctx, sessionID, 0, 3, bytes.NewReader([]byte("x")), 1)

	// Assert
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	require.Nil(t, receipt)
	mockStore.AssertNotCalled(t, "WritePart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_ReceivePart_IndexOutOfRange(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	sessionID := uuid.New()
	mockUow.GetSessionRepoMock().On("FindByIDAndOpen", ctx, sessionID).Return(openSession(sessionID, 3), nil)

	for _, index := range []int{-1, 3, 10} {
		// Act
		receipt, err := service.ReceivePart(ctx, sessionID, index, 3, bytes.NewReader([]byte("x")), 1)

		// Assert
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
		require.Nil(t, receipt)
	}
	mockStore.AssertNotCalled(t, "WritePart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_ReceivePart_EmptyPart(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	sessionID := uuid.New()
	mockUow.GetSessionRepoMock().On("FindByIDAndOpen", ctx, sessionID).Return(openSession(sessionID, 3), nil)

	// Act
	receipt, err := service.ReceivePart(ctx, sessionID, 0, 3, bytes.NewReader(nil), 0)

	// Assert
	assert.ErrorIs(t, err, domain.ErrEmptyPart)
	require.Nil(t, receipt)
}

func TestUploadService_ReceivePart_PartTooLarge(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockBlobStore()
	mockEvents := eventbroker.NewMockEventPublisher()
	service := upload.NewUploadService(mockUow, mockStore, mockEvents, domain.DefaultCategories(), defaultCfg, discardLogger)

	sessionID := uuid.New()
	mockUow.GetSessionRepoMock().On("FindByIDAndOpen", ctx, sessionID).Return(openSession(sessionID, 3), nil)

	// Act
	receipt, err := service.ReceivePart(ctx, sessionID, 0, 3, bytes.NewReader([]byte("x")), defaultCfg.MaxPartSize+1)

	// Assert
	assert.ErrorIs(t, err, domain.ErrSizeLimitExceeded)
	require.Nil(t, receipt)
	mockStore.AssertNotCalled(t, "WritePart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
