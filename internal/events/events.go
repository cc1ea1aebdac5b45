package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types.
const (
	TypeUserSignedUp   = "user_signed_up"
	TypeUserLoggedIn   = "user_logged_in"
	TypeItinerarySaved = "itinerary_saved"
)

// Event is a domain event published after a successful state change.
type Event struct {
	Type       string         `json:"type"`
	UserID     uint           `json:"user_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// Publisher publishes domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON messages keyed by user id.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates an asynchronous publisher for topic.
// Delivery failures are logged through logger.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("event_publish_failed", "topic", topic, "count", len(messages), "error", err)
			}
		},
	}
	return &KafkaPublisher{writer: w}
}

// Publish enqueues event for delivery.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.UserID), 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write: %w", err)
	}
	return nil
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }

// New returns a Kafka publisher, or a NopPublisher when no brokers are configured.
func New(brokers []string, topic string, logger *slog.Logger) Publisher {
	if len(brokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic, logger)
}
