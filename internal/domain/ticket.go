package domain

import "time"

// TicketStatus enumerates lifecycle states for incident tickets.
type TicketStatus string

const (
	TicketStatusCreated    TicketStatus = "CREATED"
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusAnalysing  TicketStatus = "ANALYSING"
	TicketStatusAssigned   TicketStatus = "ASSIGNED"
	TicketStatusReassigned TicketStatus = "REASSIGNED"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
	TicketStatusEscalated  TicketStatus = "ESCALATED"
)

// TicketSeverity enumerates incident impact, set at triage.
type TicketSeverity string

const (
	TicketSeverityLow    TicketSeverity = "LOW"
	TicketSeverityMedium TicketSeverity = "MEDIUM"
	TicketSeverityHigh   TicketSeverity = "HIGH"
)

// VictimInformation captures details about the affected party. The
// lifecycle engine treats it as opaque.
type VictimInformation struct {
	Name    string `json:"name,omitempty"`
	Age     int    `json:"age,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
}

// ContactInformation captures how to reach the reporter.
type ContactInformation struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Ticket is the aggregate for a reported security incident.
type Ticket struct {
	TicketID           string
	Title              string
	Type               string
	Description        string
	Status             TicketStatus
	Severity           *TicketSeverity
	Tier               *ResponderTier
	Location           string
	ReporterName       string
	VictimInformation  *VictimInformation
	ContactInformation *ContactInformation
	Attachments        []string
	InternalNotes      string
	CreatedBy          Actor
	AssignedResponder  *ResponderRef
	CategoryID         string
	SubCategoryID      *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ResponderRef is the assignment reference carried on a ticket.
type ResponderRef struct {
	ID   string        `json:"id"`
	Name string        `json:"name,omitempty"`
	Tier ResponderTier `json:"tier"`
}

// TicketSummary is the list-view projection: no free-text payloads.
type TicketSummary struct {
	TicketID      string
	Title         string
	Status        TicketStatus
	Severity      *TicketSeverity
	Tier          *ResponderTier
	CategoryID    string
	SubCategoryID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
