package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/repository"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

// IdentityLookup resolves an actor reference to a live account. The
// lifecycle engine uses it to validate ticket creators and assignment
// targets without knowing which store backs each actor kind.
type IdentityLookup interface {
	ResolveActor(ctx context.Context, kind domain.ActorKind, id string) (*domain.ActorAccount, error)
}

type identityLookup struct {
	users      repository.UserRepository
	agents     repository.AgentRepository
	responders repository.ResponderRepository
}

// NewIdentityLookup builds a lookup over the three account stores.
func NewIdentityLookup(users repository.UserRepository, agents repository.AgentRepository, responders repository.ResponderRepository) IdentityLookup {
	return &identityLookup{users: users, agents: agents, responders: responders}
}

func (l *identityLookup) ResolveActor(ctx context.Context, kind domain.ActorKind, id string) (*domain.ActorAccount, error) {
	switch kind {
	case domain.ActorKindUser:
		user, err := l.users.GetByID(ctx, id)
		if err != nil {
			return nil, mapActorErr(err, "user", id)
		}
		return &domain.ActorAccount{
			Kind:   domain.ActorKindUser,
			ID:     user.ID,
			Name:   user.FullName(),
			Email:  user.Email,
			Role:   user.Role,
			Active: user.Status == domain.UserStatusActive,
		}, nil
	case domain.ActorKindAgent:
		agent, err := l.agents.GetByAgentID(ctx, id)
		if err != nil {
			return nil, mapActorErr(err, "agent", id)
		}
		return &domain.ActorAccount{
			Kind:   domain.ActorKindAgent,
			ID:     agent.AgentID,
			Name:   agent.AgentID,
			Role:   domain.RoleAgent,
			Active: agent.Active,
		}, nil
	case domain.ActorKindResponder:
		responder, err := l.responders.GetByResponderID(ctx, id)
		if err != nil {
			return nil, mapActorErr(err, "responder", id)
		}
		tier := responder.Tier
		return &domain.ActorAccount{
			Kind:   domain.ActorKindResponder,
			ID:     responder.ResponderID,
			Name:   responder.Name,
			Role:   roleForTier(tier),
			Tier:   &tier,
			Active: responder.Active,
		}, nil
	default:
		return nil, apperrors.NewValidationError("unknown actor kind", map[string]any{"kind": kind})
	}
}

func roleForTier(tier domain.ResponderTier) domain.Role {
	if tier == domain.ResponderTier2 {
		return domain.RoleResponderTier2
	}
	return domain.RoleResponderTier1
}

func mapActorErr(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
