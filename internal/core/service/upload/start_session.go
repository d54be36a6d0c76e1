package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/google/uuid"
)

// StartSession validates the declared metadata against the category table and
// opens an empty part ledger for the upload. No bytes are transferred yet.
func (u *uploadService) StartSession(ctx context.Context, ownerID, category, originalName string, declaredSize int64, declaredTotalParts int) (*domain.UploadSession, error) {

	rule, ok := u.categories[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCategory, category)
	}

	if declaredSize <= 0 {
		return nil, fmt.Errorf("%w: declared size must be positive", domain.ErrSizeLimitExceeded)
	}
	if declaredSize > rule.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %s limit of %d", domain.ErrSizeLimitExceeded, declaredSize, category, rule.MaxBytes)
	}
	if declaredTotalParts <= 0 {
		return nil, fmt.Errorf("%w: declared total parts must be positive", domain.ErrIndexOutOfRange)
	}

	contentType := contentTypeFor(originalName)
	if !rule.Allows(contentType) {
		return nil, fmt.Errorf("%w: %s not allowed for category %s", domain.ErrInvalidFileType, contentType, category)
	}

	session := domain.UploadSession{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Category:           category,
		OriginalName:       sanitizeFileName(originalName),
		DeclaredSize:       declaredSize,
		DeclaredTotalParts: declaredTotalParts,
		Status:             domain.UploadSessionStatusOpen,
		ExpiresAt:          time.Now().Add(u.uploadCfg.SessionTTL),
	}

	if err := u.uow.SessionRepo().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("could not create upload session: %w", err)
	}

	return &session, nil
}
