package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/Figuu/cemse-sub010/internal/core/port"
	"github.com/google/uuid"
)

// CleanupExpiredSessions drops every session past its TTL together with its
// transient parts. An abandoned upload therefore cannot hold storage forever.
func (c *cleanupService) CleanupExpiredSessions(ctx context.Context, now time.Time) error {

	sessions, err := c.uow.SessionRepo().FindAllExpired(ctx, now)
	if err != nil {
		return err
	}

	for _, session := range sessions {

		if err := c.blobStore.RemovePrefix(ctx, sessionPartPrefix(session.ID)); err != nil {
			c.logger.Error("failed to remove parts of expired session", "session_id", session.ID, "error", err)
			continue
		}

		txErr := c.uow.Execute(ctx, func(uow port.UnitOfWork) error {
			if err := uow.PartRepo().DeleteBySession(ctx, session.ID); err != nil {
				return err
			}
			return uow.SessionRepo().Delete(ctx, session.ID)
		})
		if txErr != nil {
			c.logger.Error("failed to delete expired session", "session_id", session.ID, "error", txErr)
			continue
		}

		c.logger.Info("expired session removed", "session_id", session.ID, "owner_id", session.OwnerID)
	}

	c.logger.Info("expired session sweep completed", "count", len(sessions))
	return nil
}

func sessionPartPrefix(sessionID uuid.UUID) string {
	return fmt.Sprintf("sessions/%s/", sessionID)
}
