package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-response/internal/events"
	"github.com/spec-kit/incident-response/internal/notify"
)

// NotificationWorker drains the notification queue and hands each event
// to the mailer. Delivery is best-effort: a failed send is logged and
// the message dropped, matching the fire-and-forget contract.
type NotificationWorker struct {
	client  *redis.Client
	key     string
	timeout time.Duration
	mailer  notify.Mailer
	logger  *zap.Logger
}

// NewNotificationWorker builds the worker.
func NewNotificationWorker(client *redis.Client, key string, timeout time.Duration, mailer notify.Mailer, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{client: client, key: key, timeout: timeout, mailer: mailer, logger: logger}
}

// Run consumes the queue until ctx is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) {
	w.logger.Info("notification worker started", zap.String("queue", w.key))
	for {
		if ctx.Err() != nil {
			w.logger.Info("notification worker stopped")
			return
		}
		result, err := w.client.BRPop(ctx, w.timeout, w.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			w.logger.Warn("notification queue pop failed", zap.Error(err))
			continue
		}
		// BRPop returns [key, value]
		if len(result) != 2 {
			continue
		}
		if err := w.handleMessage(ctx, []byte(result[1])); err != nil {
			w.logger.Warn("notification delivery failed", zap.Error(err))
		}
	}
}

func (w *NotificationWorker) handleMessage(ctx context.Context, raw []byte) error {
	var envelope events.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	switch envelope.Type {
	case events.EventTicketCreated:
		var payload events.TicketCreatedPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", envelope.Type, err)
		}
		return w.mailer.SendNewTicketEmail(ctx, envelope.Recipients, payload)
	case events.EventTicketEscalated:
		var payload events.TicketEscalatedPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", envelope.Type, err)
		}
		return w.mailer.SendTicketEscalatedEmail(ctx, envelope.Recipients, payload)
	default:
		return fmt.Errorf("unknown event type %q", envelope.Type)
	}
}
