package kafka_middleware

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"

	"leadform/pkg/kafka"
	"leadform/pkg/logger"
	"leadform/pkg/metrics"
)

type stubWriter struct {
	mu  sync.Mutex
	err error
	got []kafkago.Message
}

func (w *stubWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.got = append(w.got, msgs...)
	return w.err
}

func (w *stubWriter) Close() error { return nil }

func TestProducerMiddlewareChain(t *testing.T) {
	tests := []struct {
		name     string
		writeErr error
	}{
		{name: "successful publish"},
		{name: "failed publish", writeErr: errors.New("broker unavailable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &stubWriter{err: tt.writeErr}
			producer := kafka.NewProducerWithWriter(writer, "leads.created")
			producer.Use(LoggingProducerMiddleware(logger.Discard()))
			producer.Use(MetricsProducerMiddleware(metrics.New(prometheus.NewRegistry())))

			msg := kafka.NewMessage().
				WithKey("dana@example.com").
				WithValue(map[string]string{"email": "dana@example.com"}).
				WithEventType("lead.created").
				Build()

			err := producer.Publish(context.Background(), msg)
			if !errors.Is(err, tt.writeErr) {
				t.Errorf("expected error %v, got %v", tt.writeErr, err)
			}
			if len(writer.got) != 1 {
				t.Fatalf("expected 1 write, got %d", len(writer.got))
			}
		})
	}
}

func TestMetricsProducerMiddleware_NilMetrics(t *testing.T) {
	producer := kafka.NewProducerWithWriter(&stubWriter{}, "leads.created")
	producer.Use(MetricsProducerMiddleware(nil))

	msg := kafka.NewMessage().WithKey("k").WithValue("v").Build()
	if err := producer.Publish(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
