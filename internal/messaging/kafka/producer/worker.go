package producer

import (
	"context"
	"time"

	"go-ems/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 50
)

// Relay drains the transactional outbox into kafka. Delivery is
// at-least-once: an event is marked sent only after the write succeeds, so
// a crash between publish and mark replays it.
type Relay struct {
	repo         kafka.OutboxRepository
	writer       *kafkago.Writer
	logger       *zap.Logger
	pollInterval time.Duration
	batchSize    int
}

func NewRelay(repo kafka.OutboxRepository, writer *kafkago.Writer, logger *zap.Logger, pollInterval time.Duration) *Relay {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Relay{
		repo:         repo,
		writer:       writer,
		logger:       logger.Named("kafka.producer.relay"),
		pollInterval: pollInterval,
		batchSize:    defaultBatchSize,
	}
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", r.pollInterval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				r.logger.Error("drain outbox failed", zap.Error(err))
			}
		}
	}
}

func (r *Relay) drainOnce(ctx context.Context) error {
	batch, err := r.repo.Due(ctx, r.batchSize)
	if err != nil {
		return err
	}

	if len(batch) == 0 {
		return nil
	}

	r.logger.Info("relaying due outbox events", zap.Int("count", len(batch)))

	for _, event := range batch {
		if err := event.Validate(); err != nil {
			r.logger.Error("malformed outbox event",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			_ = r.repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := r.publish(ctx, event); err != nil {
			r.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", string(event.EventType)),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			_ = r.repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		r.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", string(event.EventType)),
			zap.String("topic", event.Topic),
		)
	}

	return nil
}
