package service

import (
	"strings"

	"github.com/spec-kit/incident-response/internal/domain"
)

// TransitionContext carries the caller-supplied data for a status
// transition. Which fields are required depends on the target status.
type TransitionContext struct {
	AssignedResponderID string
	Tier                *domain.ResponderTier
	Severity            *domain.TicketSeverity
	EscalationReason    string
	EscalatedToID       string
	Notes               string
}

// SynthesizeNote builds the lifecycle note for a transition. The format
// is a display contract, not free text, so it is kept as a pure function
// of the action and context.
func SynthesizeNote(action domain.TicketStatus, tc TransitionContext, responderName string) string {
	notes := strings.TrimSpace(tc.Notes)
	switch action {
	case domain.TicketStatusAssigned, domain.TicketStatusReassigned:
		note := "Assigned responder: " + responderName
		if notes != "" {
			note += " | " + notes
		}
		return note
	case domain.TicketStatusAnalysing:
		if notes != "" {
			return "Analysis started: " + notes
		}
		return "Analysis started"
	case domain.TicketStatusInProgress:
		if notes != "" {
			return "Response initiated: " + notes
		}
		return "Response initiated"
	case domain.TicketStatusEscalated:
		note := "Escalated: " + strings.TrimSpace(tc.EscalationReason)
		if tc.EscalatedToID != "" {
			note += " | Escalated to: " + tc.EscalatedToID
		}
		if notes != "" {
			note += " | " + notes
		}
		return note
	case domain.TicketStatusResolved:
		if notes != "" {
			return "Ticket resolved: " + notes
		}
		return "Ticket resolved"
	case domain.TicketStatusClosed:
		if notes != "" {
			return notes
		}
		return "Ticket closed"
	default:
		return notes
	}
}
