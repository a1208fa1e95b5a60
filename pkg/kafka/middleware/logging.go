package kafka_middleware

import (
	"context"
	"time"

	"leadform/pkg/kafka"
	"leadform/pkg/logger"
)

// LoggingProducerMiddleware logs message publishing operations
func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		log.Debug("Publishing message",
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.EventID(),
			"request_id", msg.RequestID(),
		)

		err := next(ctx, msg)

		duration := time.Since(start)

		if err != nil {
			log.Error("Failed to publish message",
				"topic", msg.Topic,
				"event_id", msg.EventID(),
				"request_id", msg.RequestID(),
				"duration", duration,
				"error", err,
			)
		} else {
			log.Info("Published message",
				"topic", msg.Topic,
				"event_type", msg.EventType(),
				"event_id", msg.EventID(),
				"request_id", msg.RequestID(),
				"duration", duration,
			)
		}

		return err
	}
}
