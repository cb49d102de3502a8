package notify

import (
	"context"

	"github.com/spec-kit/incident-response/internal/events"
)

// Gateway is the engine's fire-and-forget notification channel. A failed
// notification must never affect a committed ticket transition; callers
// log errors and move on.
type Gateway interface {
	NotifyTicketCreated(ctx context.Context, recipients []string, payload events.TicketCreatedPayload) error
	NotifyTicketEscalated(ctx context.Context, recipients []string, payload events.TicketEscalatedPayload) error
}
