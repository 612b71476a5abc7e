package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/kayan2004/dracofit-backend/internal/model"
	"github.com/kayan2004/dracofit-backend/internal/repository"
)

// PetCreator is the slice of the pet service the consumer needs.
type PetCreator interface {
	Create(ctx context.Context, userID uint64, name string) (model.Pet, error)
}

// StartUserCreatedConsumer connects to RabbitMQ, declares the durable
// user.created queue and consumes signup events, creating the default
// pet for each new user. Delivery is at-least-once: a pet that already
// exists acks the redelivered message, any other failure nacks with
// requeue so the pet is eventually created. The function runs a
// reconnect loop with exponential backoff until ctx is cancelled.
func StartUserCreatedConsumer(ctx context.Context, pets PetCreator, log *zap.SugaredLogger) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		conn, err := amqp.Dial(BrokerURL())
		if err != nil {
			log.Warnw("pet-consumer: broker dial failed", "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(ctx, conn, pets, log); err != nil {
			log.Warnw("pet-consumer: consume loop ended, reconnecting", "error", err)
		}
		_ = conn.Close()
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, pets PetCreator, log *zap.SugaredLogger) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(UserCreatedQueue, true, false, false, false, nil); err != nil {
		return err
	}
	deliveries, err := ch.Consume(UserCreatedQueue, "pet-creator", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			handleDelivery(ctx, d, pets, log)
		}
	}
}

func handleDelivery(ctx context.Context, d amqp.Delivery, pets PetCreator, log *zap.SugaredLogger) {
	var ev UserCreatedEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil || ev.UserID == 0 {
		log.Errorw("pet-consumer: dropping malformed event", "error", err, "body", string(d.Body))
		_ = d.Nack(false, false) // unparseable, do not requeue
		return
	}

	name := ev.Username + "'s Draco"
	_, err := pets.Create(ctx, ev.UserID, name)
	switch {
	case err == nil:
		log.Infow("pet-consumer: default pet created", "user_id", ev.UserID)
		_ = d.Ack(false)
	case errors.Is(err, repository.ErrPetExists):
		// Redelivery after a prior success; creation is idempotent.
		_ = d.Ack(false)
	default:
		log.Errorw("pet-consumer: pet creation failed, requeueing", "user_id", ev.UserID, "error", err)
		_ = d.Nack(false, true)
	}
}
