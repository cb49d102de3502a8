package domain

import "time"

// LifecycleEntry is one immutable audit record of a ticket transition.
// Entries are append-only: the engine writes them in the same transaction
// as the ticket mutation they describe, and nothing ever updates or
// deletes them.
type LifecycleEntry struct {
	ID          string
	TicketID    string
	Action      TicketStatus
	PerformedBy Actor
	Notes       string
	CreatedAt   time.Time
}
