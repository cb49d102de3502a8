package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/events"
	"github.com/spec-kit/incident-response/internal/notify"
	"github.com/spec-kit/incident-response/internal/repository"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

// transitionSources maps each reachable target status to the set of
// statuses a ticket may transition from. A target absent from the map
// cannot be requested at all; CLOSED appears in no source set, which
// makes it terminal.
var transitionSources = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusAnalysing: {
		domain.TicketStatusCreated,
		domain.TicketStatusPending,
		domain.TicketStatusAnalysing,
		domain.TicketStatusAssigned,
		domain.TicketStatusReassigned,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusEscalated,
	},
	domain.TicketStatusAssigned: {
		domain.TicketStatusAnalysing,
	},
	domain.TicketStatusReassigned: {
		domain.TicketStatusAssigned,
		domain.TicketStatusEscalated,
	},
	domain.TicketStatusInProgress: {
		domain.TicketStatusAssigned,
		domain.TicketStatusReassigned,
		domain.TicketStatusInProgress,
	},
	domain.TicketStatusEscalated: {
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusEscalated,
	},
	domain.TicketStatusResolved: {
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
	},
	domain.TicketStatusClosed: {
		domain.TicketStatusResolved,
	},
}

// activityActions are audited on every request even when the status does
// not change: repeating an analysis, response or escalation is a real
// event in the trail. Other same-status requests are absorbed silently.
var activityActions = map[domain.TicketStatus]bool{
	domain.TicketStatusAnalysing:  true,
	domain.TicketStatusInProgress: true,
	domain.TicketStatusEscalated:  true,
}

// TicketCreateInput carries the intake form for a new ticket.
type TicketCreateInput struct {
	Title              string
	Type               string
	Description        string
	Severity           *domain.TicketSeverity
	Location           string
	ReporterName       string
	VictimInformation  *domain.VictimInformation
	ContactInformation *domain.ContactInformation
	Attachments        []string
	InternalNotes      string
	CategoryID         string
	SubCategoryID      *string
}

// TicketService is the ticket lifecycle engine: creation, gated status
// transitions, and the append-only audit trail, all committed atomically.
type TicketService interface {
	CreateTicket(ctx context.Context, actor domain.Actor, input TicketCreateInput) (*domain.Ticket, error)
	GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error)
	ListTickets(ctx context.Context, filter repository.TicketFilter, page, limit int) ([]domain.TicketSummary, apperrors.PaginationMeta, error)
	Transition(ctx context.Context, actor domain.Actor, ticketID string, target domain.TicketStatus, tc TransitionContext) (*domain.Ticket, error)
	GetLifecycle(ctx context.Context, ticketID string, page, limit int) ([]domain.LifecycleEntry, apperrors.PaginationMeta, error)
	EscalationHistory(ctx context.Context, page, limit int) ([]domain.LifecycleEntry, apperrors.PaginationMeta, error)
}

// TicketDependencies bundles everything the engine needs.
type TicketDependencies struct {
	Tickets    repository.TicketRepository
	Lifecycle  repository.LifecycleRepository
	Users      repository.UserRepository
	Responders repository.ResponderRepository
	Identity   IdentityLookup
	Tx         repository.TxManager
	Notifier   notify.Gateway
	Logger     *zap.Logger
}

type ticketService struct {
	deps TicketDependencies
}

// NewTicketService constructs the lifecycle engine.
func NewTicketService(deps TicketDependencies) TicketService {
	return &ticketService{deps: deps}
}

func (s *ticketService) CreateTicket(ctx context.Context, actor domain.Actor, input TicketCreateInput) (*domain.Ticket, error) {
	account, err := s.deps.Identity.ResolveActor(ctx, actor.Kind, actor.ID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, apperrors.NewForbidden("account is deactivated")
	}
	if input.Title == "" || input.Description == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}
	// Category ids are taken as-is; referential validity is the store's
	// concern, not the engine's.
	if input.CategoryID == "" {
		return nil, apperrors.NewValidationError("category is required", nil)
	}

	ticket := &domain.Ticket{
		TicketID:           GenerateTicketID(),
		Title:              input.Title,
		Type:               input.Type,
		Description:        input.Description,
		Status:             domain.TicketStatusCreated,
		Severity:           input.Severity,
		Location:           input.Location,
		ReporterName:       input.ReporterName,
		VictimInformation:  input.VictimInformation,
		ContactInformation: input.ContactInformation,
		Attachments:        input.Attachments,
		InternalNotes:      input.InternalNotes,
		CreatedBy:          domain.Actor{Kind: account.Kind, ID: account.ID, Role: account.Role},
		CategoryID:         input.CategoryID,
		SubCategoryID:      input.SubCategoryID,
	}

	err = s.deps.Tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.deps.Tickets.Create(ctx, tx, ticket); err != nil {
			return err
		}
		entry := &domain.LifecycleEntry{
			TicketID:    ticket.TicketID,
			Action:      domain.TicketStatusCreated,
			PerformedBy: ticket.CreatedBy,
			Notes:       "Ticket created",
		}
		return s.deps.Lifecycle.Append(ctx, tx, entry)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.notifyCreated(ctx, ticket, account.Name)
	return s.GetTicket(ctx, ticket.TicketID)
}

func (s *ticketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.deps.Tickets.GetByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *ticketService) ListTickets(ctx context.Context, filter repository.TicketFilter, page, limit int) ([]domain.TicketSummary, apperrors.PaginationMeta, error) {
	page, limit = apperrors.NormalizePage(page, limit)
	summaries, total, err := s.deps.Tickets.List(ctx, filter, page, limit)
	if err != nil {
		return nil, apperrors.PaginationMeta{}, apperrors.MapError(err)
	}
	return summaries, apperrors.NewPaginationMeta(total, page, limit), nil
}

func (s *ticketService) GetLifecycle(ctx context.Context, ticketID string, page, limit int) ([]domain.LifecycleEntry, apperrors.PaginationMeta, error) {
	if _, err := s.GetTicket(ctx, ticketID); err != nil {
		return nil, apperrors.PaginationMeta{}, err
	}
	page, limit = apperrors.NormalizePage(page, limit)
	entries, total, err := s.deps.Lifecycle.ListByTicket(ctx, ticketID, page, limit)
	if err != nil {
		return nil, apperrors.PaginationMeta{}, apperrors.MapError(err)
	}
	return entries, apperrors.NewPaginationMeta(total, page, limit), nil
}

func (s *ticketService) EscalationHistory(ctx context.Context, page, limit int) ([]domain.LifecycleEntry, apperrors.PaginationMeta, error) {
	page, limit = apperrors.NormalizePage(page, limit)
	action := domain.TicketStatusEscalated
	entries, total, err := s.deps.Lifecycle.ListAll(ctx, repository.LifecycleFilter{Action: &action}, page, limit)
	if err != nil {
		return nil, apperrors.PaginationMeta{}, apperrors.MapError(err)
	}
	return entries, apperrors.NewPaginationMeta(total, page, limit), nil
}

func (s *ticketService) Transition(ctx context.Context, actor domain.Actor, ticketID string, target domain.TicketStatus, tc TransitionContext) (*domain.Ticket, error) {
	sources, known := transitionSources[target]
	if !known {
		return nil, apperrors.NewValidationError("invalid target status", map[string]any{"status": target})
	}

	account, err := s.deps.Identity.ResolveActor(ctx, actor.Kind, actor.ID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, apperrors.NewForbidden("account is deactivated")
	}
	performedBy := domain.Actor{Kind: account.Kind, ID: account.ID, Role: account.Role}

	var responder *domain.Responder
	switch target {
	case domain.TicketStatusAssigned, domain.TicketStatusReassigned:
		responder, err = s.resolveAssignmentTarget(ctx, target, &tc)
		if err != nil {
			return nil, err
		}
	case domain.TicketStatusEscalated:
		if tc.EscalationReason == "" {
			return nil, apperrors.NewValidationError("escalation reason is required", nil)
		}
	}

	responderName := ""
	if responder != nil {
		responderName = responder.Name
	}
	note := SynthesizeNote(target, tc, responderName)

	var updated bool
	txErr := s.deps.Tx.WithinTx(ctx, func(tx pgx.Tx) error {
		ticket, err := s.deps.Tickets.GetForUpdate(ctx, tx, ticketID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
			}
			return err
		}
		if !statusIn(ticket.Status, sources) {
			return apperrors.NewConflict("invalid status transition", map[string]any{
				"from": ticket.Status,
				"to":   target,
			})
		}
		if ticket.Status == target && !activityActions[target] {
			return nil
		}
		if target == domain.TicketStatusInProgress {
			if ticket.AssignedResponder == nil {
				return apperrors.NewConflict("ticket has no assigned responder", nil)
			}
			if actor.Kind != domain.ActorKindResponder || actor.ID != ticket.AssignedResponder.ID {
				return apperrors.NewForbidden("only the assigned responder may start responding")
			}
		}

		update := repository.TicketUpdate{Status: &target}
		switch target {
		case domain.TicketStatusAssigned, domain.TicketStatusReassigned:
			update.AssignedResponderID = &tc.AssignedResponderID
			update.Tier = tc.Tier
			update.Severity = tc.Severity
		}
		if err := s.deps.Tickets.Update(ctx, tx, ticketID, update); err != nil {
			return err
		}
		entry := &domain.LifecycleEntry{
			TicketID:    ticketID,
			Action:      target,
			PerformedBy: performedBy,
			Notes:       note,
		}
		if err := s.deps.Lifecycle.Append(ctx, tx, entry); err != nil {
			return err
		}
		updated = true
		return nil
	})
	if txErr != nil {
		return nil, apperrors.MapError(txErr)
	}

	ticket, err := s.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if updated && target == domain.TicketStatusEscalated {
		s.notifyEscalated(ctx, ticket, account.Name, tc)
	}
	return ticket, nil
}

// resolveAssignmentTarget validates the responder reference for assign
// and reassign. Assign is the triage step, so severity and tier are
// mandatory there; reassign inherits the responder's own tier when none
// is given.
func (s *ticketService) resolveAssignmentTarget(ctx context.Context, target domain.TicketStatus, tc *TransitionContext) (*domain.Responder, error) {
	if tc.AssignedResponderID == "" {
		return nil, apperrors.NewValidationError("responder id is required", nil)
	}
	responder, err := s.deps.Responders.GetByResponderID(ctx, tc.AssignedResponderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("responder", map[string]any{"id": tc.AssignedResponderID})
		}
		return nil, apperrors.MapError(err)
	}
	if !responder.Active {
		return nil, apperrors.NewValidationError("responder is deactivated", map[string]any{"id": responder.ResponderID})
	}
	if target == domain.TicketStatusAssigned {
		if tc.Severity == nil {
			return nil, apperrors.NewValidationError("severity is required for assignment", nil)
		}
		if tc.Tier == nil {
			return nil, apperrors.NewValidationError("tier is required for assignment", nil)
		}
	}
	if tc.Tier == nil {
		tier := responder.Tier
		tc.Tier = &tier
	}
	if *tc.Tier != responder.Tier {
		return nil, apperrors.NewValidationError("responder tier does not match requested tier", map[string]any{
			"requested": *tc.Tier,
			"responder": responder.Tier,
		})
	}
	return responder, nil
}

func statusIn(status domain.TicketStatus, set []domain.TicketStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// notifyCreated emails the responder-admin pool about a new ticket.
// Failures are logged, never surfaced: the ticket is already committed.
func (s *ticketService) notifyCreated(ctx context.Context, ticket *domain.Ticket, creatorName string) {
	recipients := s.adminRecipients(ctx)
	if len(recipients) == 0 {
		return
	}
	payload := events.TicketCreatedPayload{
		TicketID:    ticket.TicketID,
		Title:       ticket.Title,
		Description: ticket.Description,
		CreatedBy:   ticket.CreatedBy,
		CreatorName: creatorName,
		CreatedAt:   ticket.CreatedAt,
	}
	if err := s.deps.Notifier.NotifyTicketCreated(ctx, recipients, payload); err != nil {
		s.deps.Logger.Warn("ticket created notification failed",
			zap.String("ticket_id", ticket.TicketID), zap.Error(err))
	}
}

func (s *ticketService) notifyEscalated(ctx context.Context, ticket *domain.Ticket, actorName string, tc TransitionContext) {
	recipients := s.adminRecipients(ctx)
	if len(recipients) == 0 {
		return
	}
	payload := events.TicketEscalatedPayload{
		TicketID:         ticket.TicketID,
		Subject:          ticket.Title,
		EscalatedBy:      actorName,
		EscalationReason: tc.EscalationReason,
		EscalatedToID:    tc.EscalatedToID,
		Timestamp:        time.Now().UTC(),
	}
	if err := s.deps.Notifier.NotifyTicketEscalated(ctx, recipients, payload); err != nil {
		s.deps.Logger.Warn("ticket escalated notification failed",
			zap.String("ticket_id", ticket.TicketID), zap.Error(err))
	}
}

func (s *ticketService) adminRecipients(ctx context.Context) []string {
	active := domain.UserStatusActive
	admins, err := s.deps.Users.List(ctx, repository.UserFilter{
		Roles:  []domain.Role{domain.RoleResponderAdmin, domain.RoleAdmin},
		Status: &active,
	})
	if err != nil {
		s.deps.Logger.Warn("loading notification recipients failed", zap.Error(err))
		return nil
	}
	recipients := make([]string, 0, len(admins))
	for _, admin := range admins {
		recipients = append(recipients, admin.Email)
	}
	return recipients
}
