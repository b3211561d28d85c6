package kafka

import (
	"errors"
	"time"
)

// DefaultBatchTimeout bounds how long a writer waits to fill a batch.
const DefaultBatchTimeout = 10 * time.Millisecond

// Config describes the brokers and credentials of the event producer.
type Config struct {
	Brokers []string

	// ClientID is reported to the brokers; empty keeps the kafka-go default.
	ClientID string

	// SASLMechanism is PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512. Empty disables SASL.
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string

	// BatchTimeout defaults to DefaultBatchTimeout.
	BatchTimeout time.Duration

	TLS bool
}

func (c Config) saslEnabled() bool {
	return c.SASLMechanism != ""
}

func (c Config) batchTimeout() time.Duration {
	if c.BatchTimeout > 0 {
		return c.BatchTimeout
	}
	return DefaultBatchTimeout
}

func (c Config) validate() error {
	if len(c.Brokers) == 0 {
		return errors.New("kafka: at least one broker is required")
	}
	if c.saslEnabled() && c.SASLUsername == "" {
		return errors.New("kafka: SASL username is required")
	}
	return nil
}
