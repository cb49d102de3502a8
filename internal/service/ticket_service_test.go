package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/events"
	"github.com/spec-kit/incident-response/internal/repository"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, _ pgx.Tx, ticket *domain.Ticket) error {
	stored := *ticket
	r.tickets[ticket.TicketID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByTicketID(_ context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetForUpdate(ctx context.Context, _ pgx.Tx, ticketID string) (*domain.Ticket, error) {
	return r.GetByTicketID(ctx, ticketID)
}

func (r *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter, page, limit int) ([]domain.TicketSummary, int64, error) {
	var result []domain.TicketSummary
	for _, ticket := range r.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		result = append(result, domain.TicketSummary{TicketID: ticket.TicketID, Title: ticket.Title, Status: ticket.Status})
	}
	return result, int64(len(result)), nil
}

func (r *fakeTicketRepo) Update(_ context.Context, _ pgx.Tx, ticketID string, update repository.TicketUpdate) error {
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return pgx.ErrNoRows
	}
	if update.Status != nil {
		ticket.Status = *update.Status
	}
	if update.Severity != nil {
		ticket.Severity = update.Severity
	}
	if update.Tier != nil {
		ticket.Tier = update.Tier
	}
	if update.AssignedResponderID != nil {
		ref := domain.ResponderRef{ID: *update.AssignedResponderID}
		if ticket.Tier != nil {
			ref.Tier = *ticket.Tier
		}
		ticket.AssignedResponder = &ref
	}
	return nil
}

type fakeLifecycleRepo struct {
	entries []domain.LifecycleEntry
}

func (r *fakeLifecycleRepo) Append(_ context.Context, _ pgx.Tx, entry *domain.LifecycleEntry) error {
	entry.ID = fmt.Sprintf("entry-%d", len(r.entries)+1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeLifecycleRepo) ListByTicket(_ context.Context, ticketID string, page, limit int) ([]domain.LifecycleEntry, int64, error) {
	var result []domain.LifecycleEntry
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeLifecycleRepo) ListAll(_ context.Context, filter repository.LifecycleFilter, page, limit int) ([]domain.LifecycleEntry, int64, error) {
	var result []domain.LifecycleEntry
	for _, entry := range r.entries {
		if filter.Action != nil && entry.Action != *filter.Action {
			continue
		}
		result = append(result, entry)
	}
	return result, int64(len(result)), nil
}

func (r *fakeLifecycleRepo) byTicket(ticketID string) []domain.LifecycleEntry {
	var result []domain.LifecycleEntry
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result
}

type fakeUserRepo struct {
	users []domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			copied := r.users[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			copied := r.users[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		if len(filter.Roles) > 0 {
			matched := false
			for _, role := range filter.Roles {
				if user.Role == role {
					matched = true
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, user)
	}
	return result, nil
}

type fakeResponderRepo struct {
	responders map[string]*domain.Responder
}

func newFakeResponderRepo() *fakeResponderRepo {
	return &fakeResponderRepo{responders: map[string]*domain.Responder{}}
}

func (r *fakeResponderRepo) Create(_ context.Context, responder *domain.Responder) error {
	stored := *responder
	r.responders[responder.ResponderID] = &stored
	return nil
}

func (r *fakeResponderRepo) Update(_ context.Context, responder *domain.Responder) error {
	if _, ok := r.responders[responder.ResponderID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *responder
	r.responders[responder.ResponderID] = &stored
	return nil
}

func (r *fakeResponderRepo) GetByResponderID(_ context.Context, responderID string) (*domain.Responder, error) {
	responder, ok := r.responders[responderID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *responder
	return &copied, nil
}

func (r *fakeResponderRepo) List(_ context.Context, filter repository.ResponderFilter) ([]domain.Responder, error) {
	var result []domain.Responder
	for _, responder := range r.responders {
		result = append(result, *responder)
	}
	return result, nil
}

type fakeTxManager struct{}

func (fakeTxManager) WithinTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeNotifier struct {
	created   []events.TicketCreatedPayload
	escalated []events.TicketEscalatedPayload
}

func (n *fakeNotifier) NotifyTicketCreated(_ context.Context, recipients []string, payload events.TicketCreatedPayload) error {
	n.created = append(n.created, payload)
	return nil
}

func (n *fakeNotifier) NotifyTicketEscalated(_ context.Context, recipients []string, payload events.TicketEscalatedPayload) error {
	n.escalated = append(n.escalated, payload)
	return nil
}

type engineFixture struct {
	svc        TicketService
	tickets    *fakeTicketRepo
	lifecycle  *fakeLifecycleRepo
	responders *fakeResponderRepo
	notifier   *fakeNotifier
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	users := &fakeUserRepo{users: []domain.User{
		{ID: "admin-1", FirstName: "Dana", Email: "dana@ires.co", Role: domain.RoleResponderAdmin, Status: domain.UserStatusActive},
		{ID: "super-1", FirstName: "Root", Email: "root@ires.co", Role: domain.RoleSuperAdmin, Status: domain.UserStatusActive},
	}}
	agents := &fakeAgentRepo{agents: map[string]*domain.Agent{
		"AGNT001A": {AgentID: "AGNT001A", Active: true},
	}}
	responders := newFakeResponderRepo()
	responders.responders["RESP001A"] = &domain.Responder{ResponderID: "RESP001A", Name: "Kim Reyes", Tier: domain.ResponderTier1, Active: true}
	responders.responders["RESP002B"] = &domain.Responder{ResponderID: "RESP002B", Name: "Ade Obi", Tier: domain.ResponderTier2, Active: true}

	tickets := newFakeTicketRepo()
	lifecycle := &fakeLifecycleRepo{}
	notifier := &fakeNotifier{}

	svc := NewTicketService(TicketDependencies{
		Tickets:    tickets,
		Lifecycle:  lifecycle,
		Users:      users,
		Responders: responders,
		Identity:   NewIdentityLookup(users, agents, responders),
		Tx:         fakeTxManager{},
		Notifier:   notifier,
		Logger:     zap.NewNop(),
	})
	return &engineFixture{svc: svc, tickets: tickets, lifecycle: lifecycle, responders: responders, notifier: notifier}
}

type fakeAgentRepo struct {
	agents map[string]*domain.Agent
}

func (r *fakeAgentRepo) Create(_ context.Context, agent *domain.Agent) error {
	stored := *agent
	r.agents[agent.AgentID] = &stored
	return nil
}

func (r *fakeAgentRepo) GetByAgentID(_ context.Context, agentID string) (*domain.Agent, error) {
	agent, ok := r.agents[agentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *agent
	return &copied, nil
}

func (r *fakeAgentRepo) SetActive(_ context.Context, agentID string, active bool) error {
	agent, ok := r.agents[agentID]
	if !ok {
		return pgx.ErrNoRows
	}
	agent.Active = active
	return nil
}

func (r *fakeAgentRepo) List(_ context.Context, filter repository.AgentFilter) ([]domain.Agent, error) {
	var result []domain.Agent
	for _, agent := range r.agents {
		result = append(result, *agent)
	}
	return result, nil
}

var (
	agentActor = domain.Actor{Kind: domain.ActorKindAgent, ID: "AGNT001A"}
	adminActor = domain.Actor{Kind: domain.ActorKindUser, ID: "admin-1"}
	tier1Actor = domain.Actor{Kind: domain.ActorKindResponder, ID: "RESP001A"}
	tier2Actor = domain.Actor{Kind: domain.ActorKindResponder, ID: "RESP002B"}
)

func mustCreateTicket(t *testing.T, fx *engineFixture) *domain.Ticket {
	t.Helper()
	ticket, err := fx.svc.CreateTicket(context.Background(), agentActor, TicketCreateInput{
		Title:       "Phishing campaign targeting finance",
		Description: "Multiple staff received credential-harvesting emails",
		CategoryID:  "cat-1",
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	return ticket
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if domainErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, domainErr.Code, err)
	}
}

func transition(t *testing.T, fx *engineFixture, actor domain.Actor, ticketID string, target domain.TicketStatus, tc TransitionContext) *domain.Ticket {
	t.Helper()
	ticket, err := fx.svc.Transition(context.Background(), actor, ticketID, target, tc)
	if err != nil {
		t.Fatalf("Transition to %s: %v", target, err)
	}
	return ticket
}

func TestCreateTicketWritesCreationEntry(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)

	if !strings.HasPrefix(ticket.TicketID, "iRS-") {
		t.Errorf("unexpected ticket id %q", ticket.TicketID)
	}
	if ticket.Status != domain.TicketStatusCreated {
		t.Errorf("expected CREATED, got %s", ticket.Status)
	}
	entries := fx.lifecycle.byTicket(ticket.TicketID)
	if len(entries) != 1 {
		t.Fatalf("expected 1 lifecycle entry, got %d", len(entries))
	}
	if entries[0].Action != domain.TicketStatusCreated {
		t.Errorf("expected CREATED entry, got %s", entries[0].Action)
	}
	if entries[0].PerformedBy.Kind != domain.ActorKindAgent || entries[0].PerformedBy.ID != "AGNT001A" {
		t.Errorf("unexpected performer %+v", entries[0].PerformedBy)
	}
	if len(fx.notifier.created) != 1 {
		t.Errorf("expected 1 created notification, got %d", len(fx.notifier.created))
	}
}

func TestCreateTicketMissingCategory(t *testing.T) {
	fx := newEngineFixture(t)
	_, err := fx.svc.CreateTicket(context.Background(), agentActor, TicketCreateInput{
		Title:       "t",
		Description: "d",
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestCreateTicketUnknownActor(t *testing.T) {
	fx := newEngineFixture(t)
	_, err := fx.svc.CreateTicket(context.Background(), domain.Actor{Kind: domain.ActorKindAgent, ID: "AGNT999Z"}, TicketCreateInput{
		Title:       "t",
		Description: "d",
		CategoryID:  "cat-1",
	})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestStartAnalysisFromCreated(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)

	updated := transition(t, fx, adminActor, ticket.TicketID, domain.TicketStatusAnalysing, TransitionContext{})
	if updated.Status != domain.TicketStatusAnalysing {
		t.Fatalf("expected ANALYSING, got %s", updated.Status)
	}
	entries := fx.lifecycle.byTicket(ticket.TicketID)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Notes != "Analysis started" {
		t.Errorf("unexpected note %q", entries[1].Notes)
	}
}

func TestAssignRequiresTriageFields(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	transition(t, fx, adminActor, ticket.TicketID, domain.TicketStatusAnalysing, TransitionContext{})

	_, err := fx.svc.Transition(context.Background(), adminActor, ticket.TicketID, domain.TicketStatusAssigned, TransitionContext{
		AssignedResponderID: "RESP001A",
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestAssignTierMismatch(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	transition(t, fx, adminActor, ticket.TicketID, domain.TicketStatusAnalysing, TransitionContext{})

	severity := domain.TicketSeverityHigh
	tier := domain.ResponderTier2
	_, err := fx.svc.Transition(context.Background(), adminActor, ticket.TicketID, domain.TicketStatusAssigned, TransitionContext{
		AssignedResponderID: "RESP001A",
		Severity:            &severity,
		Tier:                &tier,
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestAssignFromAnalysing(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	transition(t, fx, adminActor, ticket.TicketID, domain.TicketStatusAnalysing, TransitionContext{})

	severity := domain.TicketSeverityHigh
	tier := domain.ResponderTier1
	updated := transition(t, fx, adminActor, ticket.TicketID, domain.TicketStatusAssigned, TransitionContext{
		AssignedResponderID: "RESP001A",
		Severity:            &severity,
		Tier:                &tier,
		Notes:               "handle with care",
	})
	if updated.Status != domain.TicketStatusAssigned {
		t.Fatalf("expected ASSIGNED, got %s", updated.Status)
	}
	if updated.AssignedResponder == nil || updated.AssignedResponder.ID != "RESP001A" {
		t.Fatalf("expected responder RESP001A, got %+v", updated.AssignedResponder)
	}
	entries := fx.lifecycle.byTicket(ticket.TicketID)
	last := entries[len(entries)-1]
	if last.Notes != "Assigned responder: Kim Reyes | handle with care" {
		t.Errorf("unexpected note %q", last.Notes)
	}
}

func TestAssignSkippingAnalysisConflicts(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)

	severity := domain.TicketSeverityLow
	tier := domain.ResponderTier1
	_, err := fx.svc.Transition(context.Background(), adminActor, ticket.TicketID, domain.TicketStatusAssigned, TransitionContext{
		AssignedResponderID: "RESP001A",
		Severity:            &severity,
		Tier:                &tier,
	})
	assertDomainCode(t, err, "CONFLICT")
}

func assignTier1(t *testing.T, fx *engineFixture, ticketID string) {
	t.Helper()
	transition(t, fx, adminActor, ticketID, domain.TicketStatusAnalysing, TransitionContext{})
	severity := domain.TicketSeverityMedium
	tier := domain.ResponderTier1
	transition(t, fx, adminActor, ticketID, domain.TicketStatusAssigned, TransitionContext{
		AssignedResponderID: "RESP001A",
		Severity:            &severity,
		Tier:                &tier,
	})
}

func TestStartRespondingOnlyAssignedResponder(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	assignTier1(t, fx, ticket.TicketID)

	_, err := fx.svc.Transition(context.Background(), tier2Actor, ticket.TicketID, domain.TicketStatusInProgress, TransitionContext{})
	assertDomainCode(t, err, "FORBIDDEN")

	updated := transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusInProgress, TransitionContext{})
	if updated.Status != domain.TicketStatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", updated.Status)
	}
}

func TestRepeatInProgressIsAudited(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	assignTier1(t, fx, ticket.TicketID)
	transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusInProgress, TransitionContext{})

	before := len(fx.lifecycle.byTicket(ticket.TicketID))
	transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusInProgress, TransitionContext{Notes: "resumed after interview"})
	after := len(fx.lifecycle.byTicket(ticket.TicketID))
	if after != before+1 {
		t.Fatalf("expected repeated IN_PROGRESS to append an entry, got %d -> %d", before, after)
	}
}

func TestEscalateRequiresReason(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	assignTier1(t, fx, ticket.TicketID)
	transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusInProgress, TransitionContext{})

	_, err := fx.svc.Transition(context.Background(), tier1Actor, ticket.TicketID, domain.TicketStatusEscalated, TransitionContext{})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestEscalateFromInProgress(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	assignTier1(t, fx, ticket.TicketID)
	transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusInProgress, TransitionContext{})

	updated := transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusEscalated, TransitionContext{
		EscalationReason: "needs tier 2 forensics",
		EscalatedToID:    "RESP002B",
	})
	if updated.Status != domain.TicketStatusEscalated {
		t.Fatalf("expected ESCALATED, got %s", updated.Status)
	}
	if len(fx.notifier.escalated) != 1 {
		t.Fatalf("expected escalation notification, got %d", len(fx.notifier.escalated))
	}
	if fx.notifier.escalated[0].EscalationReason != "needs tier 2 forensics" {
		t.Errorf("unexpected reason %q", fx.notifier.escalated[0].EscalationReason)
	}
	entries := fx.lifecycle.byTicket(ticket.TicketID)
	last := entries[len(entries)-1]
	if !strings.HasPrefix(last.Notes, "Escalated: needs tier 2 forensics") {
		t.Errorf("unexpected note %q", last.Notes)
	}
}

func TestEscalateBeforeResponseConflicts(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	assignTier1(t, fx, ticket.TicketID)

	_, err := fx.svc.Transition(context.Background(), tier1Actor, ticket.TicketID, domain.TicketStatusEscalated, TransitionContext{
		EscalationReason: "too early",
	})
	assertDomainCode(t, err, "CONFLICT")
}

func TestRepeatResolveIsSuppressed(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	assignTier1(t, fx, ticket.TicketID)
	transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusInProgress, TransitionContext{})
	transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusResolved, TransitionContext{})

	before := len(fx.lifecycle.byTicket(ticket.TicketID))
	updated := transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusResolved, TransitionContext{})
	after := len(fx.lifecycle.byTicket(ticket.TicketID))

	if updated.Status != domain.TicketStatusResolved {
		t.Fatalf("expected RESOLVED, got %s", updated.Status)
	}
	if after != before {
		t.Fatalf("expected repeated RESOLVED to be absorbed, got %d -> %d entries", before, after)
	}
}

func TestClosedIsTerminal(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	assignTier1(t, fx, ticket.TicketID)
	transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusInProgress, TransitionContext{})
	transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusResolved, TransitionContext{})
	transition(t, fx, adminActor, ticket.TicketID, domain.TicketStatusClosed, TransitionContext{})

	for _, target := range []domain.TicketStatus{
		domain.TicketStatusAnalysing,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
	} {
		_, err := fx.svc.Transition(context.Background(), adminActor, ticket.TicketID, target, TransitionContext{})
		assertDomainCode(t, err, "CONFLICT")
	}
}

func TestTransitionToUnreachableStatus(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)

	for _, target := range []domain.TicketStatus{domain.TicketStatusCreated, domain.TicketStatusPending, "BOGUS"} {
		_, err := fx.svc.Transition(context.Background(), adminActor, ticket.TicketID, target, TransitionContext{})
		assertDomainCode(t, err, "VALIDATION_FAILED")
	}
}

func TestTransitionUnknownTicket(t *testing.T) {
	fx := newEngineFixture(t)
	_, err := fx.svc.Transition(context.Background(), adminActor, "iRS-MISSING", domain.TicketStatusAnalysing, TransitionContext{})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestReassignInheritsResponderTier(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	assignTier1(t, fx, ticket.TicketID)

	updated := transition(t, fx, adminActor, ticket.TicketID, domain.TicketStatusReassigned, TransitionContext{
		AssignedResponderID: "RESP002B",
	})
	if updated.Status != domain.TicketStatusReassigned {
		t.Fatalf("expected REASSIGNED, got %s", updated.Status)
	}
	if updated.Tier == nil || *updated.Tier != domain.ResponderTier2 {
		t.Fatalf("expected tier to follow responder, got %v", updated.Tier)
	}
	entries := fx.lifecycle.byTicket(ticket.TicketID)
	last := entries[len(entries)-1]
	if last.Notes != "Assigned responder: Ade Obi" {
		t.Errorf("unexpected note %q", last.Notes)
	}
}

func TestEscalationHistoryFiltersByAction(t *testing.T) {
	fx := newEngineFixture(t)
	ticket := mustCreateTicket(t, fx)
	assignTier1(t, fx, ticket.TicketID)
	transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusInProgress, TransitionContext{})
	transition(t, fx, tier1Actor, ticket.TicketID, domain.TicketStatusEscalated, TransitionContext{EscalationReason: "r"})

	entries, meta, err := fx.svc.EscalationHistory(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("EscalationHistory: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != domain.TicketStatusEscalated {
		t.Fatalf("expected single ESCALATED entry, got %+v", entries)
	}
	if meta.TotalItems != 1 {
		t.Errorf("expected total 1, got %d", meta.TotalItems)
	}
}
