package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-response/internal/auth"
	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/repository"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

// AgentCredentials is returned once at enrollment; the token is the
// agent device's only credential.
type AgentCredentials struct {
	Agent     *domain.Agent
	Token     string
	ExpiresAt time.Time
}

// AgentService manages field-agent enrollment and device tokens.
type AgentService interface {
	Enroll(ctx context.Context) (*AgentCredentials, error)
	ReissueToken(ctx context.Context, agentID string) (*AgentCredentials, error)
	SetActive(ctx context.Context, agentID string, active bool) (*domain.Agent, error)
	GetByAgentID(ctx context.Context, agentID string) (*domain.Agent, error)
	List(ctx context.Context, filter repository.AgentFilter) ([]domain.Agent, error)
}

// AgentDependencies bundles the agent service collaborators.
type AgentDependencies struct {
	Agents   repository.AgentRepository
	Tokens   *auth.TokenManager
	TokenTTL time.Duration
	Logger   *zap.Logger
}

type agentService struct {
	deps AgentDependencies
}

// NewAgentService constructs the service.
func NewAgentService(deps AgentDependencies) AgentService {
	return &agentService{deps: deps}
}

func (s *agentService) Enroll(ctx context.Context) (*AgentCredentials, error) {
	id, err := GenerateAccountID(ctx, "AGNT", s.agentIDTaken)
	if err != nil {
		return nil, err
	}
	agent := &domain.Agent{AgentID: id, Active: true}
	if err := s.deps.Agents.Create(ctx, agent); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.deps.Logger.Info("agent enrolled", zap.String("agent_id", agent.AgentID))
	return s.issue(agent)
}

func (s *agentService) ReissueToken(ctx context.Context, agentID string) (*AgentCredentials, error) {
	agent, err := s.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if !agent.Active {
		return nil, apperrors.NewForbidden("agent is deactivated")
	}
	return s.issue(agent)
}

func (s *agentService) issue(agent *domain.Agent) (*AgentCredentials, error) {
	token, expiresAt, err := s.deps.Tokens.GenerateWithTTL(agent.AgentID, domain.ActorKindAgent, domain.RoleAgent, s.deps.TokenTTL)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AgentCredentials{Agent: agent, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *agentService) SetActive(ctx context.Context, agentID string, active bool) (*domain.Agent, error) {
	if err := s.deps.Agents.SetActive(ctx, agentID, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", map[string]any{"id": agentID})
		}
		return nil, apperrors.MapError(err)
	}
	return s.GetByAgentID(ctx, agentID)
}

func (s *agentService) GetByAgentID(ctx context.Context, agentID string) (*domain.Agent, error) {
	agent, err := s.deps.Agents.GetByAgentID(ctx, agentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", map[string]any{"id": agentID})
		}
		return nil, apperrors.MapError(err)
	}
	return agent, nil
}

func (s *agentService) List(ctx context.Context, filter repository.AgentFilter) ([]domain.Agent, error) {
	agents, err := s.deps.Agents.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return agents, nil
}

func (s *agentService) agentIDTaken(ctx context.Context, id string) (bool, error) {
	_, err := s.deps.Agents.GetByAgentID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return false, apperrors.MapError(err)
}
