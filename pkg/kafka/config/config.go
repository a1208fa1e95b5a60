package kafka_config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"leadform/pkg/sanitizer"
)

var (
	compressionCodecs = []string{"none", "gzip", "snappy", "lz4", "zstd"}
	ackLevels         = []int{-1, 0, 1}
)

// Config is the producer side of the Kafka setup. An empty broker list turns
// lead event publishing off.
type Config struct {
	Brokers   []string
	LeadTopic string

	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerRequireAcks  int    // -1 all replicas, 0 none, 1 leader
	ProducerCompression  string // one of compressionCodecs

	// PublishTimeout bounds the publish made after a lead is stored.
	PublishTimeout time.Duration
}

// Load never fails; bad numbers fall back to defaults and Validate reports
// the rest.
func Load() *Config {
	brokers := strings.Split(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers), ",")

	return &Config{
		Brokers:   sanitizer.NormalizeStringSlice(brokers, strings.TrimSpace),
		LeadTopic: strings.TrimSpace(getEnvStr(EnvKafkaLeadTopic, DefaultLeadTopic)),

		ProducerMaxAttempts:  getEnvInt(EnvKafkaProducerMaxAttempts, DefaultProducerMaxAttempts),
		ProducerBatchTimeout: getEnvDuration(EnvKafkaProducerBatchTimeout, DefaultProducerBatchTimeout),
		ProducerRequireAcks:  getEnvInt(EnvKafkaProducerRequireAcks, DefaultProducerRequireAcks),
		ProducerCompression:  strings.ToLower(getEnvStr(EnvKafkaProducerCompression, DefaultProducerCompression)),
		PublishTimeout:       getEnvDuration(EnvKafkaPublishTimeout, DefaultPublishTimeout),
	}
}

func (cfg *Config) Enabled() bool {
	return len(cfg.Brokers) > 0
}

func (cfg *Config) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(cfg.Brokers) == 0 {
		addf("at least one broker is required")
	}
	if cfg.LeadTopic == "" {
		addf("%s cannot be empty", EnvKafkaLeadTopic)
	}
	if cfg.ProducerMaxAttempts <= 0 {
		addf("%s must be positive, got: %d", EnvKafkaProducerMaxAttempts, cfg.ProducerMaxAttempts)
	}
	if cfg.ProducerBatchTimeout <= 0 {
		addf("%s must be positive, got: %s", EnvKafkaProducerBatchTimeout, cfg.ProducerBatchTimeout)
	}
	if cfg.PublishTimeout <= 0 {
		addf("%s must be positive, got: %s", EnvKafkaPublishTimeout, cfg.PublishTimeout)
	}
	if !slices.Contains(compressionCodecs, cfg.ProducerCompression) {
		addf("%s must be one of %v, got: %s", EnvKafkaProducerCompression, compressionCodecs, cfg.ProducerCompression)
	}
	if !slices.Contains(ackLevels, cfg.ProducerRequireAcks) {
		addf("%s must be -1, 0 or 1, got: %d", EnvKafkaProducerRequireAcks, cfg.ProducerRequireAcks)
	}

	if len(problems) > 0 {
		return fmt.Errorf("kafka: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
