package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/incident-response/internal/config"
	"github.com/spec-kit/incident-response/internal/events"
)

// Mailer renders and delivers notification emails.
type Mailer interface {
	SendNewTicketEmail(ctx context.Context, to []string, payload events.TicketCreatedPayload) error
	SendTicketEscalatedEmail(ctx context.Context, to []string, payload events.TicketEscalatedPayload) error
}

// LogMailer is the development mailer: it logs the rendered email
// instead of speaking SMTP.
type LogMailer struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewLogMailer builds the mailer.
func NewLogMailer(logger *zap.Logger, cfg config.NotificationConfig) *LogMailer {
	return &LogMailer{logger: logger, cfg: cfg}
}

func (m *LogMailer) SendNewTicketEmail(ctx context.Context, to []string, payload events.TicketCreatedPayload) error {
	m.logger.Info("sending new-ticket email",
		zap.String("from", m.cfg.EmailFrom),
		zap.Strings("to", to),
		zap.String("ticket_id", payload.TicketID),
		zap.String("title", payload.Title),
		zap.String("created_by", payload.CreatorName),
	)
	return nil
}

func (m *LogMailer) SendTicketEscalatedEmail(ctx context.Context, to []string, payload events.TicketEscalatedPayload) error {
	m.logger.Info("sending ticket-escalated email",
		zap.String("from", m.cfg.EmailFrom),
		zap.Strings("to", to),
		zap.String("ticket_id", payload.TicketID),
		zap.String("escalated_by", payload.EscalatedBy),
		zap.String("reason", payload.EscalationReason),
	)
	return nil
}
