package domain

import "time"

// TicketCategory is the incident taxonomy referenced by tickets.
// Tickets carry category ids as-is; referential integrity lives in the store.
type TicketCategory struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// TicketSubCategory refines a category.
type TicketSubCategory struct {
	ID         string
	CategoryID string
	Name       string
	CreatedAt  time.Time
}
