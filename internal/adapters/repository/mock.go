package repository

import (
	"context"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUploadSessionRepository struct {
	mock.Mock
}

func NewMockUploadSessionRepository() *MockUploadSessionRepository {
	return &MockUploadSessionRepository{}
}

func (m *MockUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepository) FindByIDAndOpen(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepository) UpdateExpiresAt(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	args := m.Called(ctx, id, expiresAt)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPartRepository struct {
	mock.Mock
}

func NewMockPartRepository() *MockPartRepository {
	return &MockPartRepository{}
}

func (m *MockPartRepository) Upsert(ctx context.Context, part domain.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}

func (m *MockPartRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Part, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.Part), args.Error(1)
}

func (m *MockPartRepository) ListIndices(ctx context.Context, sessionID uuid.UUID) ([]int, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockPartRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockArtifactRepository struct {
	mock.Mock
}

func NewMockArtifactRepository() *MockArtifactRepository {
	return &MockArtifactRepository{}
}

func (m *MockArtifactRepository) Create(ctx context.Context, artifact domain.Artifact) error {
	args := m.Called(ctx, artifact)
	return args.Error(0)
}

func (m *MockArtifactRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Artifact, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

func (m *MockArtifactRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Artifact, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Artifact), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	sessionRepo  *MockUploadSessionRepository
	partRepo     *MockPartRepository
	artifactRepo *MockArtifactRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		sessionRepo:  &MockUploadSessionRepository{},
		partRepo:     &MockPartRepository{},
		artifactRepo: &MockArtifactRepository{},
	}
}

func (m *MockUnitOfWork) SessionRepo() port.UploadSessionRepository {
	return m.sessionRepo
}

func (m *MockUnitOfWork) PartRepo() port.PartRepository {
	return m.partRepo
}

func (m *MockUnitOfWork) ArtifactRepo() port.ArtifactRepository {
	return m.artifactRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetSessionRepoMock() *MockUploadSessionRepository {
	return m.sessionRepo
}

func (m *MockUnitOfWork) GetPartRepoMock() *MockPartRepository {
	return m.partRepo
}

func (m *MockUnitOfWork) GetArtifactRepoMock() *MockArtifactRepository {
	return m.artifactRepo
}
