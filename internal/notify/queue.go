package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/incident-response/internal/events"
)

// QueuePublisher implements Gateway by enqueueing envelopes onto a Redis
// list consumed by the notification worker.
type QueuePublisher struct {
	client *redis.Client
	key    string
}

// NewQueuePublisher builds a publisher for the given queue key.
func NewQueuePublisher(client *redis.Client, key string) *QueuePublisher {
	return &QueuePublisher{client: client, key: key}
}

func (p *QueuePublisher) NotifyTicketCreated(ctx context.Context, recipients []string, payload events.TicketCreatedPayload) error {
	return p.publish(ctx, events.EventTicketCreated, payload.TicketID, recipients, payload)
}

func (p *QueuePublisher) NotifyTicketEscalated(ctx context.Context, recipients []string, payload events.TicketEscalatedPayload) error {
	return p.publish(ctx, events.EventTicketEscalated, payload.TicketID, recipients, payload)
}

func (p *QueuePublisher) publish(ctx context.Context, eventType events.EventType, ticketID string, recipients []string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	envelope := events.Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		TicketID:   ticketID,
		Recipients: recipients,
		Timestamp:  time.Now(),
		Payload:    raw,
	}
	encoded, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return p.client.LPush(ctx, p.key, encoded).Err()
}
