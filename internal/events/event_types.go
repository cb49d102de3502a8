package events

import (
	"encoding/json"
	"time"

	"github.com/spec-kit/incident-response/internal/domain"
)

// EventType enumerates notification event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketEscalated EventType = "ticket_escalated"
)

// Envelope is the queue wire format for notification events. Payload is
// one of the typed payloads below, JSON-encoded.
type Envelope struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	TicketID   string          `json:"ticket_id"`
	Recipients []string        `json:"recipients"`
	Timestamp  time.Time       `json:"timestamp"`
	Payload    json.RawMessage `json:"payload"`
}

// TicketCreatedPayload carries the new-ticket email content.
type TicketCreatedPayload struct {
	TicketID    string       `json:"ticket_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CreatedBy   domain.Actor `json:"created_by"`
	CreatorName string       `json:"creator_name,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// TicketEscalatedPayload carries the escalation email content.
type TicketEscalatedPayload struct {
	TicketID         string    `json:"ticket_id"`
	Subject          string    `json:"subject"`
	EscalatedBy      string    `json:"escalated_by"`
	EscalationReason string    `json:"escalation_reason"`
	EscalatedToID    string    `json:"escalated_to_id,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
