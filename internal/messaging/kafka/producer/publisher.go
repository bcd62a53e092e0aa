package producer

import (
	"context"

	"go-ems/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// publish keys messages by aggregate id so one employee's events stay on
// one partition, in order. The request id travels as a header for tracing.
func (r *Relay) publish(ctx context.Context, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return r.writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	})
}
