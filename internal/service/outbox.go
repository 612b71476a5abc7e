package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/model"
)

// EventSource reads and settles outbox rows.
type EventSource interface {
	Pending(ctx context.Context, limit int) ([]model.UserEvent, error)
	MarkPublished(ctx context.Context, id uint64) error
}

// EventPublisher pushes one message onto a named queue.
type EventPublisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// OutboxRelay drains unpublished user events to the message broker.
// Events are written in the same transaction as the row they describe,
// so a publish that fails here is simply retried on the next tick.
type OutboxRelay struct {
	events    EventSource
	publisher EventPublisher
	interval  time.Duration
	batchSize int
	log       *zap.SugaredLogger
}

func NewOutboxRelay(events EventSource, publisher EventPublisher, interval time.Duration, log *zap.SugaredLogger) *OutboxRelay {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &OutboxRelay{events: events, publisher: publisher, interval: interval, batchSize: 50, log: log}
}

// Run polls the outbox until ctx is cancelled. Meant to be launched as
// a goroutine from main.
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Infow("outbox relay started", "interval", r.interval)
	for {
		select {
		case <-ctx.Done():
			r.log.Infow("outbox relay stopped")
			return
		case <-ticker.C:
			if err := r.Drain(ctx); err != nil {
				r.log.Errorw("outbox relay tick failed", "error", err)
			}
		}
	}
}

// Drain publishes one batch of pending events in insertion order.
// Publishing stops at the first broker failure so ordering holds.
func (r *OutboxRelay) Drain(ctx context.Context) error {
	events, err := r.events.Pending(ctx, r.batchSize)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if err := r.publisher.Publish(ctx, ev.EventType, ev.Payload); err != nil {
			r.log.Warnw("outbox publish failed, will retry", "event_id", ev.ID, "type", ev.EventType, "error", err)
			return err
		}
		if err := r.events.MarkPublished(ctx, ev.ID); err != nil {
			// The event will be published again; the consumer side is
			// idempotent.
			return err
		}
		r.log.Debugw("outbox event published", "event_id", ev.ID, "type", ev.EventType)
	}
	return nil
}
