package events

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// AuditLog returns a consumer handler that writes every received event to
// logger. It fails on bodies that are not JSON objects.
func AuditLog(logger *zap.Logger) func(routingKey string, body []byte) error {
	return func(routingKey string, body []byte) error {
		var fields map[string]any
		if err := json.Unmarshal(body, &fields); err != nil {
			return fmt.Errorf("decode %s event: %w", routingKey, err)
		}
		logger.Info("event received", zap.String("routingKey", routingKey), zap.Any("event", fields))
		return nil
	}
}
