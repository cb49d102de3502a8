package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-response/internal/api/dto"
	"github.com/spec-kit/incident-response/internal/auth"
	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/repository"
	"github.com/spec-kit/incident-response/internal/service"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

// RespondersHandler exposes responder administration and presence
// endpoints.
type RespondersHandler struct {
	responders service.ResponderService
}

// NewRespondersHandler constructs handler.
func NewRespondersHandler(responders service.ResponderService) *RespondersHandler {
	return &RespondersHandler{responders: responders}
}

// Create POST /responders.
func (h *RespondersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateResponderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	creds, err := h.responders.Create(c.UserContext(), service.ResponderCreateInput{
		Name: strings.TrimSpace(req.Name),
		Tier: req.Tier,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": responderCredentialsResponse(creds)})
}

// Update PATCH /responders/:responderId.
func (h *RespondersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateResponderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	responder, err := h.responders.Update(c.UserContext(), c.Params("responderId"), service.ResponderUpdateInput{
		Name:   req.Name,
		Tier:   req.Tier,
		Active: req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": responderResponse(responder)})
}

// ReissueToken POST /responders/:responderId/token.
func (h *RespondersHandler) ReissueToken(c *fiber.Ctx) error {
	creds, err := h.responders.ReissueToken(c.UserContext(), c.Params("responderId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": responderCredentialsResponse(creds)})
}

// Heartbeat POST /responders/heartbeat. The responder reports its own
// presence; the id comes from the session, not the path.
func (h *RespondersHandler) Heartbeat(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Responder == nil {
		return apperrors.NewUnauthorized("responder session required")
	}
	responder, err := h.responders.Heartbeat(c.UserContext(), principal.Responder.ResponderID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": responderResponse(responder)})
}

// Get GET /responders/:responderId.
func (h *RespondersHandler) Get(c *fiber.Ctx) error {
	responder, err := h.responders.GetByResponderID(c.UserContext(), c.Params("responderId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": responderResponse(responder)})
}

// List GET /responders.
func (h *RespondersHandler) List(c *fiber.Ctx) error {
	filter := repository.ResponderFilter{
		Limit:  parseInt(c.Query("limit"), 50),
		Offset: parseInt(c.Query("offset"), 0),
	}
	if tierStr := c.Query("tier"); tierStr != "" {
		tier := domain.ResponderTier(strings.ToUpper(strings.TrimSpace(tierStr)))
		filter.Tier = &tier
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active := activeStr == "true"
		filter.Active = &active
	}
	if onlineStr := c.Query("online"); onlineStr != "" {
		online := onlineStr == "true"
		filter.Online = &online
	}
	responders, err := h.responders.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ResponderResponse, 0, len(responders))
	for i := range responders {
		items = append(items, responderResponse(&responders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func responderResponse(responder *domain.Responder) dto.ResponderResponse {
	return dto.ResponderResponse{
		ResponderID: responder.ResponderID,
		Name:        responder.Name,
		Tier:        responder.Tier,
		Active:      responder.Active,
		Online:      responder.Online,
		LastSeen:    responder.LastSeen,
		CreatedAt:   responder.CreatedAt,
	}
}

func responderCredentialsResponse(creds *service.ResponderCredentials) dto.ResponderCredentialsResponse {
	return dto.ResponderCredentialsResponse{
		Responder: responderResponse(creds.Responder),
		Token:     creds.Token,
		ExpiresAt: creds.ExpiresAt,
	}
}
