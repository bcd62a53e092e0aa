package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-ems/internal/events"
)

// OutboxStatus follows the uppercase convention of the domain enums.
type OutboxStatus string

const (
	OutboxPending OutboxStatus = "PENDING"
	OutboxSent    OutboxStatus = "SENT"
	OutboxFailed  OutboxStatus = "FAILED"
)

// Retry policy for the lifecycle topic: linear backoff, one step per prior
// failure, capped so a poisoned event settles at a steady retry cadence
// instead of growing without bound.
const (
	retryBackoffStep  = 15 * time.Second
	retryBackoffSteps = 10
)

// OutboxEvent is one row of the transactional outbox. It is written in the
// same transaction as the employee mutation and relayed to kafka by the
// worker afterwards.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     events.Type
	Topic         string
	Payload       []byte
	Status        OutboxStatus
	RetryCount    int
	NextRetryAt   time.Time
}

// Validate rejects rows that could never be relayed, so they fail fast
// instead of being retried forever.
func (e OutboxEvent) Validate() error {
	if e.ID == "" {
		return errors.New("outbox id is required")
	}
	if e.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(e.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch e.Status {
	case OutboxPending, OutboxSent, OutboxFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", e.Status)
	}
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Enqueue(ctx context.Context, event OutboxEvent) error
	Due(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

// Enqueue inserts the event through the caller's transaction when one is
// bound, so the event and the mutation it describes commit atomically.
func (r *outboxRepository) Enqueue(ctx context.Context, event OutboxEvent) error {
	const query = `
INSERT INTO outbox_events
	(id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.execer().ExecContext(ctx, query,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// Due returns the oldest undelivered events whose retry moment has passed.
// Failed events re-enter the batch once their backoff expires.
func (r *outboxRepository) Due(ctx context.Context, limit int) ([]OutboxEvent, error) {
	const query = `
SELECT
	id::text, request_id, aggregate_type, aggregate_id, event_type,
	topic, payload, status, retry_count, COALESCE(next_retry_at, created_at)
FROM outbox_events
WHERE status IN ($1, $2)
	AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY created_at ASC
LIMIT $3
`

	rows, err := r.db.QueryContext(ctx, query, OutboxPending, OutboxFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batch := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID, &e.EventType,
			&e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.NextRetryAt,
		); err != nil {
			return nil, err
		}
		batch = append(batch, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return batch, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	const query = `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxSent)
	return err
}

// MarkFailed records the failure and schedules the next attempt per the
// backoff policy above.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	const query = `
UPDATE outbox_events
SET status = $2,
	retry_count = retry_count + 1,
	error_message = LEFT($3, 500),
	next_retry_at = NOW() + make_interval(secs => LEAST(retry_count + 1, $4) * $5),
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query,
		id, OutboxFailed, reason, retryBackoffSteps, int(retryBackoffStep.Seconds()),
	)
	return err
}

func (r *outboxRepository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
