package kafka_middleware

import (
	"context"
	"time"

	"leadform/pkg/kafka"
	"leadform/pkg/metrics"
)

// MetricsProducerMiddleware records publish counts and latency
func MetricsProducerMiddleware(m *metrics.Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		m.ObservePublish(msg.Topic, err, time.Since(start).Seconds())
		return err
	}
}
