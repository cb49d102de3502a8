package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-response/internal/api/dto"
	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/repository"
	"github.com/spec-kit/incident-response/internal/service"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

// AgentsHandler exposes field-agent administration endpoints.
type AgentsHandler struct {
	agents service.AgentService
}

// NewAgentsHandler constructs handler.
func NewAgentsHandler(agents service.AgentService) *AgentsHandler {
	return &AgentsHandler{agents: agents}
}

// Enroll POST /agents.
func (h *AgentsHandler) Enroll(c *fiber.Ctx) error {
	creds, err := h.agents.Enroll(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": agentCredentialsResponse(creds)})
}

// ReissueToken POST /agents/:agentId/token.
func (h *AgentsHandler) ReissueToken(c *fiber.Ctx) error {
	creds, err := h.agents.ReissueToken(c.UserContext(), c.Params("agentId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": agentCredentialsResponse(creds)})
}

// SetActive PATCH /agents/:agentId/active.
func (h *AgentsHandler) SetActive(c *fiber.Ctx) error {
	var req dto.SetAgentActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	agent, err := h.agents.SetActive(c.UserContext(), c.Params("agentId"), req.Active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": agentResponse(agent)})
}

// Get GET /agents/:agentId.
func (h *AgentsHandler) Get(c *fiber.Ctx) error {
	agent, err := h.agents.GetByAgentID(c.UserContext(), c.Params("agentId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": agentResponse(agent)})
}

// List GET /agents.
func (h *AgentsHandler) List(c *fiber.Ctx) error {
	filter := repository.AgentFilter{
		Limit:  parseInt(c.Query("limit"), 50),
		Offset: parseInt(c.Query("offset"), 0),
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active := activeStr == "true"
		filter.Active = &active
	}
	agents, err := h.agents.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AgentResponse, 0, len(agents))
	for i := range agents {
		items = append(items, agentResponse(&agents[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func agentResponse(agent *domain.Agent) dto.AgentResponse {
	return dto.AgentResponse{
		AgentID:   agent.AgentID,
		Active:    agent.Active,
		CreatedAt: agent.CreatedAt,
	}
}

func agentCredentialsResponse(creds *service.AgentCredentials) dto.AgentCredentialsResponse {
	return dto.AgentCredentialsResponse{
		Agent:     agentResponse(creds.Agent),
		Token:     creds.Token,
		ExpiresAt: creds.ExpiresAt,
	}
}
