package service

import (
	"testing"

	"github.com/spec-kit/incident-response/internal/domain"
)

func TestSynthesizeNote(t *testing.T) {
	tests := []struct {
		name          string
		action        domain.TicketStatus
		tc            TransitionContext
		responderName string
		want          string
	}{
		{
			name:          "assign without notes",
			action:        domain.TicketStatusAssigned,
			responderName: "Kim Reyes",
			want:          "Assigned responder: Kim Reyes",
		},
		{
			name:          "assign with notes",
			action:        domain.TicketStatusAssigned,
			tc:            TransitionContext{Notes: "night shift"},
			responderName: "Kim Reyes",
			want:          "Assigned responder: Kim Reyes | night shift",
		},
		{
			name:          "reassign uses same format",
			action:        domain.TicketStatusReassigned,
			responderName: "Ade Obi",
			want:          "Assigned responder: Ade Obi",
		},
		{
			name:   "analysis without notes",
			action: domain.TicketStatusAnalysing,
			want:   "Analysis started",
		},
		{
			name:   "analysis with notes",
			action: domain.TicketStatusAnalysing,
			tc:     TransitionContext{Notes: "checking headers"},
			want:   "Analysis started: checking headers",
		},
		{
			name:   "response initiated",
			action: domain.TicketStatusInProgress,
			want:   "Response initiated",
		},
		{
			name:   "escalation reason only",
			action: domain.TicketStatusEscalated,
			tc:     TransitionContext{EscalationReason: "needs forensics"},
			want:   "Escalated: needs forensics",
		},
		{
			name:   "escalation with target and notes",
			action: domain.TicketStatusEscalated,
			tc:     TransitionContext{EscalationReason: "needs forensics", EscalatedToID: "RESP002B", Notes: "disk image attached"},
			want:   "Escalated: needs forensics | Escalated to: RESP002B | disk image attached",
		},
		{
			name:   "resolved with notes",
			action: domain.TicketStatusResolved,
			tc:     TransitionContext{Notes: "credentials rotated"},
			want:   "Ticket resolved: credentials rotated",
		},
		{
			name:   "close defaults",
			action: domain.TicketStatusClosed,
			want:   "Ticket closed",
		},
		{
			name:   "close keeps caller notes verbatim",
			action: domain.TicketStatusClosed,
			tc:     TransitionContext{Notes: "confirmed with reporter"},
			want:   "confirmed with reporter",
		},
		{
			name:   "notes are trimmed",
			action: domain.TicketStatusResolved,
			tc:     TransitionContext{Notes: "  done  "},
			want:   "Ticket resolved: done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SynthesizeNote(tt.action, tt.tc, tt.responderName)
			if got != tt.want {
				t.Errorf("SynthesizeNote() = %q, want %q", got, tt.want)
			}
		})
	}
}
