package port

import (
	"context"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/google/uuid"
)

// UploadSessionRepository is an interface to interact with upload session ledgers
type UploadSessionRepository interface {
	Create(ctx context.Context, session domain.UploadSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	FindByIDAndOpen(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	UpdateExpiresAt(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error
	FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
