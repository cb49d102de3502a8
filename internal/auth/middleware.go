package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/repository"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Exactly one of User,
// Agent or Responder is set, matching Kind.
type Principal struct {
	Kind      domain.ActorKind
	Role      domain.Role
	User      *domain.User
	Agent     *domain.Agent
	Responder *domain.Responder
}

// Actor converts the principal into the engine's actor reference.
func (p *Principal) Actor() domain.Actor {
	switch p.Kind {
	case domain.ActorKindUser:
		return domain.Actor{Kind: p.Kind, ID: p.User.ID, Role: p.Role}
	case domain.ActorKindAgent:
		return domain.Actor{Kind: p.Kind, ID: p.Agent.AgentID, Role: p.Role}
	default:
		return domain.Actor{Kind: p.Kind, ID: p.Responder.ResponderID, Role: p.Role}
	}
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens     *TokenManager
	users      repository.UserRepository
	agents     repository.AgentRepository
	responders repository.ResponderRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, agents repository.AgentRepository, responders repository.ResponderRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, agents: agents, responders: responders}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{Kind: claims.Kind, Role: claims.Role}

	switch claims.Kind {
	case domain.ActorKindUser:
		user, err := m.users.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			return mapPrincipalErr(err, "user")
		}
		if user.Status != domain.UserStatusActive {
			return apperrors.NewUnauthorized("account is deactivated")
		}
		principal.User = user
		principal.Role = user.Role
	case domain.ActorKindAgent:
		agent, err := m.agents.GetByAgentID(c.Context(), claims.SubjectID)
		if err != nil {
			return mapPrincipalErr(err, "agent")
		}
		if !agent.Active {
			return apperrors.NewUnauthorized("account is deactivated")
		}
		principal.Agent = agent
		principal.Role = domain.RoleAgent
	case domain.ActorKindResponder:
		responder, err := m.responders.GetByResponderID(c.Context(), claims.SubjectID)
		if err != nil {
			return mapPrincipalErr(err, "responder")
		}
		if !responder.Active {
			return apperrors.NewUnauthorized("account is deactivated")
		}
		principal.Responder = responder
		if responder.Tier == domain.ResponderTier2 {
			principal.Role = domain.RoleResponderTier2
		} else {
			principal.Role = domain.RoleResponderTier1
		}
	default:
		return apperrors.NewUnauthorized("unknown subject")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func mapPrincipalErr(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewUnauthorized(resource + " not found")
	}
	return apperrors.MapError(err)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
