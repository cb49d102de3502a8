package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-response/internal/api/dto"
	"github.com/spec-kit/incident-response/internal/auth"
	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/repository"
	"github.com/spec-kit/incident-response/internal/service"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

// TicketsHandler exposes ticket lifecycle endpoints.
type TicketsHandler struct {
	tickets service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketCreateInput{
		Title:              strings.TrimSpace(req.Title),
		Type:               req.Type,
		Description:        strings.TrimSpace(req.Description),
		Severity:           req.Severity,
		Location:           req.Location,
		ReporterName:       req.ReporterName,
		VictimInformation:  req.VictimInformation,
		ContactInformation: req.ContactInformation,
		Attachments:        req.Attachments,
		InternalNotes:      req.InternalNotes,
		CategoryID:         req.CategoryID,
		SubCategoryID:      req.SubCategoryID,
	}
	ticket, err := h.tickets.CreateTicket(c.UserContext(), principal.Actor(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := repository.TicketFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.TicketStatus(strings.ToUpper(strings.TrimSpace(statusStr)))
		filter.Status = &status
	}
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 10)

	summaries, meta, err := h.tickets.ListTickets(c.UserContext(), filter, page, limit)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummaryResponse, 0, len(summaries))
	for i := range summaries {
		items = append(items, ticketSummaryResponse(&summaries[i]))
	}
	return c.JSON(fiber.Map{"data": items, "meta": meta})
}

// GetTicket GET /tickets/:ticketId.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.tickets.GetTicket(c.UserContext(), c.Params("ticketId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// GetLifecycle GET /tickets/:ticketId/lifecycle.
func (h *TicketsHandler) GetLifecycle(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 10)
	entries, meta, err := h.tickets.GetLifecycle(c.UserContext(), c.Params("ticketId"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": lifecycleResponses(entries), "meta": meta})
}

// EscalationHistory GET /tickets/escalations.
func (h *TicketsHandler) EscalationHistory(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 10)
	entries, meta, err := h.tickets.EscalationHistory(c.UserContext(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": lifecycleResponses(entries), "meta": meta})
}

// StartAnalysis PATCH /tickets/:ticketId/start-analysis.
func (h *TicketsHandler) StartAnalysis(c *fiber.Ctx) error {
	return h.transitionWithNotes(c, domain.TicketStatusAnalysing)
}

// AssignTicket PATCH /tickets/:ticketId/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	tc := service.TransitionContext{
		AssignedResponderID: req.ResponderID,
		Tier:                req.Tier,
		Severity:            req.Severity,
		Notes:               req.Notes,
	}
	ticket, err := h.tickets.Transition(c.UserContext(), principal.Actor(), c.Params("ticketId"), domain.TicketStatusAssigned, tc)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ReassignTicket PATCH /tickets/:ticketId/reassign.
func (h *TicketsHandler) ReassignTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReassignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	tc := service.TransitionContext{
		AssignedResponderID: req.ResponderID,
		Tier:                req.Tier,
		Notes:               req.Notes,
	}
	ticket, err := h.tickets.Transition(c.UserContext(), principal.Actor(), c.Params("ticketId"), domain.TicketStatusReassigned, tc)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// StartResponding PATCH /tickets/:ticketId/start-responding.
func (h *TicketsHandler) StartResponding(c *fiber.Ctx) error {
	return h.transitionWithNotes(c, domain.TicketStatusInProgress)
}

// EscalateTicket PATCH /tickets/:ticketId/escalate.
func (h *TicketsHandler) EscalateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.EscalateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	tc := service.TransitionContext{
		EscalationReason: strings.TrimSpace(req.Reason),
		EscalatedToID:    req.EscalatedToID,
		Notes:            req.Notes,
	}
	ticket, err := h.tickets.Transition(c.UserContext(), principal.Actor(), c.Params("ticketId"), domain.TicketStatusEscalated, tc)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ResolveTicket PATCH /tickets/:ticketId/resolve.
func (h *TicketsHandler) ResolveTicket(c *fiber.Ctx) error {
	return h.transitionWithNotes(c, domain.TicketStatusResolved)
}

// CloseTicket PATCH /tickets/:ticketId/close.
func (h *TicketsHandler) CloseTicket(c *fiber.Ctx) error {
	return h.transitionWithNotes(c, domain.TicketStatusClosed)
}

func (h *TicketsHandler) transitionWithNotes(c *fiber.Ctx, target domain.TicketStatus) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TransitionNotesRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	ticket, err := h.tickets.Transition(c.UserContext(), principal.Actor(), c.Params("ticketId"), target, service.TransitionContext{Notes: req.Notes})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	resp := dto.TicketResponse{
		TicketID:           ticket.TicketID,
		Title:              ticket.Title,
		Type:               ticket.Type,
		Description:        ticket.Description,
		Status:             ticket.Status,
		Severity:           ticket.Severity,
		Tier:               ticket.Tier,
		Location:           ticket.Location,
		ReporterName:       ticket.ReporterName,
		VictimInformation:  ticket.VictimInformation,
		ContactInformation: ticket.ContactInformation,
		Attachments:        ticket.Attachments,
		InternalNotes:      ticket.InternalNotes,
		CreatedBy:          ticket.CreatedBy,
		CategoryID:         ticket.CategoryID,
		SubCategoryID:      ticket.SubCategoryID,
		CreatedAt:          ticket.CreatedAt,
		UpdatedAt:          ticket.UpdatedAt,
	}
	if ticket.AssignedResponder != nil {
		resp.AssignedResponder = &dto.ResponderRefResponse{
			ID:   ticket.AssignedResponder.ID,
			Name: ticket.AssignedResponder.Name,
			Tier: ticket.AssignedResponder.Tier,
		}
	}
	return resp
}

func ticketSummaryResponse(summary *domain.TicketSummary) dto.TicketSummaryResponse {
	return dto.TicketSummaryResponse{
		TicketID:      summary.TicketID,
		Title:         summary.Title,
		Status:        summary.Status,
		Severity:      summary.Severity,
		Tier:          summary.Tier,
		CategoryID:    summary.CategoryID,
		SubCategoryID: summary.SubCategoryID,
		CreatedAt:     summary.CreatedAt,
		UpdatedAt:     summary.UpdatedAt,
	}
}

func lifecycleResponses(entries []domain.LifecycleEntry) []dto.LifecycleEntryResponse {
	resp := make([]dto.LifecycleEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.LifecycleEntryResponse{
			ID:          entry.ID,
			TicketID:    entry.TicketID,
			Action:      entry.Action,
			PerformedBy: entry.PerformedBy,
			Notes:       entry.Notes,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return resp
}
