package dto

import (
	"time"

	"github.com/spec-kit/incident-response/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title              string                     `json:"title"`
	Type               string                     `json:"type"`
	Description        string                     `json:"description"`
	Severity           *domain.TicketSeverity     `json:"severity"`
	Location           string                     `json:"location"`
	ReporterName       string                     `json:"reporter_name"`
	VictimInformation  *domain.VictimInformation  `json:"victim_information"`
	ContactInformation *domain.ContactInformation `json:"contact_information"`
	Attachments        []string                   `json:"attachments"`
	InternalNotes      string                     `json:"internal_notes"`
	CategoryID         string                     `json:"category_id"`
	SubCategoryID      *string                    `json:"sub_category_id"`
}

// AssignTicketRequest payload for triage assignment.
type AssignTicketRequest struct {
	ResponderID string                 `json:"responder_id"`
	Tier        *domain.ResponderTier  `json:"tier"`
	Severity    *domain.TicketSeverity `json:"severity"`
	Notes       string                 `json:"notes"`
}

// ReassignTicketRequest payload. Tier defaults to the responder's own.
type ReassignTicketRequest struct {
	ResponderID string                `json:"responder_id"`
	Tier        *domain.ResponderTier `json:"tier"`
	Notes       string                `json:"notes"`
}

// EscalateTicketRequest payload. Reason is mandatory.
type EscalateTicketRequest struct {
	Reason        string `json:"reason"`
	EscalatedToID string `json:"escalated_to_id"`
	Notes         string `json:"notes"`
}

// TransitionNotesRequest payload for transitions that only carry notes.
type TransitionNotesRequest struct {
	Notes string `json:"notes"`
}

// ResponderRefResponse is the assignment reference on a ticket.
type ResponderRefResponse struct {
	ID   string               `json:"id"`
	Name string               `json:"name,omitempty"`
	Tier domain.ResponderTier `json:"tier"`
}

// TicketResponse is the full ticket view.
type TicketResponse struct {
	TicketID           string                     `json:"ticket_id"`
	Title              string                     `json:"title"`
	Type               string                     `json:"type,omitempty"`
	Description        string                     `json:"description"`
	Status             domain.TicketStatus        `json:"status"`
	Severity           *domain.TicketSeverity     `json:"severity,omitempty"`
	Tier               *domain.ResponderTier      `json:"tier,omitempty"`
	Location           string                     `json:"location,omitempty"`
	ReporterName       string                     `json:"reporter_name,omitempty"`
	VictimInformation  *domain.VictimInformation  `json:"victim_information,omitempty"`
	ContactInformation *domain.ContactInformation `json:"contact_information,omitempty"`
	Attachments        []string                   `json:"attachments,omitempty"`
	InternalNotes      string                     `json:"internal_notes,omitempty"`
	CreatedBy          domain.Actor               `json:"created_by"`
	AssignedResponder  *ResponderRefResponse      `json:"assigned_responder,omitempty"`
	CategoryID         string                     `json:"category_id"`
	SubCategoryID      *string                    `json:"sub_category_id,omitempty"`
	CreatedAt          time.Time                  `json:"created_at"`
	UpdatedAt          time.Time                  `json:"updated_at"`
}

// TicketSummaryResponse is the list-view projection.
type TicketSummaryResponse struct {
	TicketID      string                 `json:"ticket_id"`
	Title         string                 `json:"title"`
	Status        domain.TicketStatus    `json:"status"`
	Severity      *domain.TicketSeverity `json:"severity,omitempty"`
	Tier          *domain.ResponderTier  `json:"tier,omitempty"`
	CategoryID    string                 `json:"category_id"`
	SubCategoryID *string                `json:"sub_category_id,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// LifecycleEntryResponse is one audit-trail row.
type LifecycleEntryResponse struct {
	ID          string              `json:"id"`
	TicketID    string              `json:"ticket_id"`
	Action      domain.TicketStatus `json:"action"`
	PerformedBy domain.Actor        `json:"performed_by"`
	Notes       string              `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}
