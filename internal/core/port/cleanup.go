package port

import (
	"context"
	"time"
)

// CleanupService is an interface to define the expired session sweep
type CleanupService interface {
	CleanupExpiredSessions(ctx context.Context, now time.Time) error
}
