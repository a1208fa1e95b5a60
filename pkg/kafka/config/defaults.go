package kafka_config

import "time"

const (
	// Empty broker list disables event publishing
	DefaultKafkaBrokers = ""

	DefaultLeadTopic = "leads.created"

	// Producer defaults
	DefaultProducerMaxAttempts  = 1
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // Require all replicas
	DefaultProducerCompression  = "snappy"
	DefaultPublishTimeout       = 3 * time.Second
)
