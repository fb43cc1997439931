package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

var (
	ErrMarshalRecord = errors.New("error marshalling record")
	ErrWriteMessage  = errors.New("error writing message")
)

type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Lag() int64
	Close() error
}

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers string
	Topic   string
}

type Publisher struct {
	writer Writer
}

func NewPublisher(cfg Config) *Publisher {
	// The topic is not auto-created since that would not be compacted. Call
	// EnsureTopic first.
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers),
			Topic:    cfg.Topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// Publish writes the event keyed by schedule id so the compacted topic keeps
// the latest record per schedule.
func (p *Publisher) Publish(ctx context.Context, event ScheduleEvent) error {
	const fn = "Publisher:Publish"
	out, err := json.Marshal(StructuredRecord{
		Schema:  StructuredSchema,
		Payload: event,
	})
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrMarshalRecord, err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(event.ScheduleID), Value: out})
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
	}
	slog.InfoContext(ctx, "Published schedule event", "schedule_id", event.ScheduleID)
	return nil
}

func (p *Publisher) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing publisher resources...")
	p.writer.Close()
}
