// Package broker defines the interface for message brokers and provides
// in-memory and Redpanda/Kafka implementations.
package broker

import "context"

// Broker abstracts finding-event publishing and consumption. CI runs only
// publish; downstream dashboards and tests consume.
type Broker interface {
	// Publish sends a message to a topic. The key selects the partition
	// for Kafka-compatible brokers and is ignored in-memory.
	Publish(ctx context.Context, topic string, key string, value []byte) error

	// Subscribe returns a channel for consuming messages from a topic.
	// groupID coordinates consumer groups in Kafka and is ignored
	// in-memory.
	Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error)

	// Close shuts down the broker connection gracefully.
	Close() error
}

// Message is a consumed broker message.
type Message struct {
	Topic     string
	Key       string
	Value     []byte
	Offset    int64
	Partition int32
	Timestamp int64
}
