// Package kafka publishes note events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/heartmarshall/notes-app/internal/config"
	"github.com/heartmarshall/notes-app/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes note events as JSON, keyed by username so that one user's
// events stay ordered within a partition.
type Publisher struct {
	writer messageWriter
}

// Events are written one at a time on the request path, so the writer must
// not wait for a batch to fill and must give up quickly on a dead broker.
const (
	batchTimeout = 5 * time.Millisecond
	maxAttempts  = 2
)

// NewPublisher creates a publisher for cfg.Topic on cfg's brokers.
func NewPublisher(cfg config.KafkaConfig) *Publisher {
	return newPublisher(newWriter(cfg))
}

func newWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.BrokerList()...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           batchTimeout,
		MaxAttempts:            maxAttempts,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
}

func newPublisher(w messageWriter) *Publisher {
	return &Publisher{writer: w}
}

// Publish sends one event.
func (p *Publisher) Publish(ctx context.Context, ev domain.NoteEvent) error {
	msg, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", ev.Type, err)
	}
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}

func encodeEvent(ev domain.NoteEvent) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}
	return kafka.Message{
		Key:   []byte(ev.Username),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(ev.Type)},
		},
	}, nil
}
