package services

import (
	"context"

	"kontak/internal/events"

	"go.uber.org/zap"
)

// notifier publishes lifecycle events once a write has committed. A nil
// publisher disables events.
type notifier struct {
	publisher events.Publisher
	logger    *zap.Logger
}

func (n notifier) publish(ctx context.Context, routingKey string, payload any) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, routingKey, payload); err != nil {
		n.logger.Warn("failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
