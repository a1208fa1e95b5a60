package kafka_config

import (
	"strings"
	"testing"
)

func TestLoad_DisabledWithoutBrokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "")

	cfg := Load()
	if cfg.Enabled() {
		t.Error("expected kafka to be disabled")
	}
	if cfg.LeadTopic != DefaultLeadTopic {
		t.Errorf("expected default topic, got %q", cfg.LeadTopic)
	}
}

func TestLoad_Brokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "kafka-1:9092, kafka-2:9092,")
	t.Setenv(EnvKafkaLeadTopic, "crm.leads")

	cfg := Load()
	if !cfg.Enabled() {
		t.Fatal("expected kafka to be enabled")
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.Brokers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Brokers:              []string{"localhost:9092"},
		LeadTopic:            "",
		ProducerMaxAttempts:  0,
		ProducerBatchTimeout: DefaultProducerBatchTimeout,
		ProducerRequireAcks:  2,
		ProducerCompression:  "brotli",
		PublishTimeout:       DefaultPublishTimeout,
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{EnvKafkaLeadTopic, EnvKafkaProducerMaxAttempts, EnvKafkaProducerRequireAcks, EnvKafkaProducerCompression} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got %q", want, err.Error())
		}
	}
}
