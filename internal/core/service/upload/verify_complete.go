package upload

import (
	"context"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/google/uuid"
)

// VerifyComplete reports whether indices 0..totalParts-1 are all present for
// the session. It is a pure read and may be called repeatedly; indices beyond
// totalParts are ignored here and swept up by Finalize.
func (u *uploadService) VerifyComplete(ctx context.Context, sessionID uuid.UUID, totalParts int) (*domain.UploadStatus, error) {

	if _, err := u.uow.SessionRepo().FindByIDAndOpen(ctx, sessionID); err != nil {
		return nil, err
	}

	missing, err := u.missingIndices(ctx, sessionID, totalParts)
	if err != nil {
		return nil, err
	}

	return &domain.UploadStatus{
		Complete: len(missing) == 0,
		Missing:  missing,
	}, nil
}

func (u *uploadService) missingIndices(ctx context.Context, sessionID uuid.UUID, totalParts int) ([]int, error) {
	indices, err := u.uow.PartRepo().ListIndices(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	present := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		present[i] = struct{}{}
	}

	missing := make([]int, 0)
	for i := 0; i < totalParts; i++ {
		if _, ok := present[i]; !ok {
			missing = append(missing, i)
		}
	}
	return missing, nil
}
