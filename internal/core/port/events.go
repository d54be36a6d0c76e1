package port

import (
	"context"

	"github.com/Figuu/cemse-sub010/internal/core/domain"
)

// EventPublisher is an interface to define an event publisher (nats, kafka, ...)
type EventPublisher interface {
	PublishArtifactAssembled(ctx context.Context, event domain.ArtifactAssembledEvent) error
	Close() error
}
