package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer delivers trip events from a topic to a handler. Messages that do
// not decode as a TripEvent are logged and skipped; a handler error stops
// the loop so the offset is not committed past the failure.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, TripEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeTripEvent(msg.Value)
		if err != nil {
			log.Printf("skip message at offset %d: %v", msg.Offset, err)
			continue
		}
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeTripEvent(value []byte) (TripEvent, error) {
	var event TripEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return TripEvent{}, fmt.Errorf("failed to decode trip event: %w", err)
	}
	if event.Type == "" {
		return TripEvent{}, fmt.Errorf("trip event without a type")
	}
	return event, nil
}
