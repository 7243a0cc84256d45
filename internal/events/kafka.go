package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event type header values.
const (
	EventTypeLogUpdated = "daily_log.updated"
	EventTypeLogDeleted = "daily_log.deleted"
)

// Writer exposes the minimal kafka.Writer surface needed by the publisher.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes log lifecycle events to a single topic. Messages are
// keyed by user so one user's events stay ordered within a partition.
type KafkaPublisher struct {
	writer Writer
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
	}
}

// PublishLogUpdated implements Publisher.
func (p *KafkaPublisher) PublishLogUpdated(ctx context.Context, event LogUpdated) error {
	return p.publish(ctx, EventTypeLogUpdated, event.User, event.OccurredAt, event)
}

// PublishLogDeleted implements Publisher.
func (p *KafkaPublisher) PublishLogDeleted(ctx context.Context, event LogDeleted) error {
	return p.publish(ctx, EventTypeLogDeleted, event.User, event.OccurredAt, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType, key string, ts time.Time, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  ts,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
}

// Close releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
