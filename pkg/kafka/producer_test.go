package kafka

import (
	"context"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"

	kafka_config "leadform/pkg/kafka/config"
	"leadform/pkg/logger"
)

type recordingWriter struct {
	messages []kafkago.Message
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewProducer_RejectsIncompleteConfig(t *testing.T) {
	if _, err := NewProducer(nil, logger.Discard()); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := NewProducer(&kafka_config.Config{LeadTopic: "t"}, logger.Discard()); err == nil {
		t.Error("expected error without brokers")
	}
	if _, err := NewProducer(&kafka_config.Config{Brokers: []string{"localhost:9092"}}, logger.Discard()); err == nil {
		t.Error("expected error without topic")
	}
}

func TestPublish(t *testing.T) {
	writer := &recordingWriter{}
	producer := NewProducerWithWriter(writer, "leads.created")

	var seenTopic string
	producer.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seenTopic = msg.Topic
		return next(ctx, msg)
	})

	msg := NewMessage().
		WithKey("dana@example.com").
		WithValue(map[string]string{"name": "Dana"}).
		WithEventType("lead.created").
		WithRequestID("req-1").
		Build()

	if err := producer.Publish(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenTopic != "leads.created" {
		t.Errorf("expected middleware to see topic, got %q", seenTopic)
	}
	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.messages))
	}

	headers := map[string]string{}
	for _, h := range writer.messages[0].Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers[HeaderRequestID] != "req-1" {
		t.Errorf("expected request id header, got %q", headers[HeaderRequestID])
	}
	if headers[HeaderEventID] == "" {
		t.Error("expected generated event id")
	}
}

func TestPublish_InvalidMessages(t *testing.T) {
	producer := NewProducerWithWriter(&recordingWriter{}, "leads.created")

	tests := []struct {
		name string
		msg  Message
		want error
	}{
		{name: "empty key", msg: NewMessage().WithValue("v").Build(), want: ErrEmptyKey},
		{name: "empty value", msg: NewMessage().WithKey("k").Build(), want: ErrEmptyValue},
		{name: "unencodable value", msg: NewMessage().WithKey("k").WithValue(make(chan int)).Build(), want: ErrInvalidMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := producer.Publish(context.Background(), tt.msg); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPublish_AfterClose(t *testing.T) {
	writer := &recordingWriter{}
	producer := NewProducerWithWriter(writer, "leads.created")

	if err := producer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !writer.closed {
		t.Error("expected writer to be closed")
	}

	msg := NewMessage().WithKey("k").WithValue("v").Build()
	if err := producer.Publish(context.Background(), msg); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}
}
