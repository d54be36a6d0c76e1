package port

import (
	"context"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
	"github.com/google/uuid"
)

// PartRepository is an interface to interact with the per-session part ledger
type PartRepository interface {
	// Upsert records a received part, replacing any previous entry for the
	// same (session, index) pair.
	Upsert(ctx context.Context, part domain.Part) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Part, error)
	ListIndices(ctx context.Context, sessionID uuid.UUID) ([]int, error)
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}
