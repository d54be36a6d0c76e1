package cleanup

import (
	"log/slog"

	"github.com/Figuu/cemse-sub010/internal/core/port"
)

type cleanupService struct {
	uow       port.UnitOfWork
	blobStore port.BlobStore
	logger    *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(uow port.UnitOfWork, blobStore port.BlobStore, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		uow:       uow,
		blobStore: blobStore,
		logger:    logger,
	}
}
