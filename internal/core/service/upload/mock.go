package upload

import (
	"context"
	"io"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	mock.Mock
}

// NewMockUploadService creates a new MockUploadService
func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) StartSession(ctx context.Context, ownerID, category, originalName string, declaredSize int64, declaredTotalParts int) (*domain.UploadSession, error) {
	args := m.Called(ctx, ownerID, category, originalName, declaredSize, declaredTotalParts)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadService) ReceivePart(ctx context.Context, sessionID uuid.UUID, index, totalParts int, body io.Reader, byteLength int64) (*domain.PartReceipt, error) {
	args := m.Called(ctx, sessionID, index, totalParts, body, byteLength)
	return args.Get(0).(*domain.PartReceipt), args.Error(1)
}

func (m *MockUploadService) VerifyComplete(ctx context.Context, sessionID uuid.UUID, totalParts int) (*domain.UploadStatus, error) {
	args := m.Called(ctx, sessionID, totalParts)
	return args.Get(0).(*domain.UploadStatus), args.Error(1)
}

func (m *MockUploadService) Finalize(ctx context.Context, in port.FinalizeInput) (*domain.Artifact, string, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(*domain.Artifact), args.String(1), args.Error(2)
}

func (m *MockUploadService) GetArtifact(ctx context.Context, artifactID uuid.UUID) (*domain.Artifact, string, error) {
	args := m.Called(ctx, artifactID)
	return args.Get(0).(*domain.Artifact), args.String(1), args.Error(2)
}
