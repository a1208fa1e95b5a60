package kafka

import "errors"

var (
	ErrProducerClosed = errors.New("kafka: producer closed")
	ErrInvalidMessage = errors.New("kafka: invalid message")
	ErrEmptyKey       = errors.New("kafka: message key is empty")
	ErrEmptyValue     = errors.New("kafka: message value is empty")
)
