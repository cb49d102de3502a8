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

// ResponderCreateInput carries the onboarding form.
type ResponderCreateInput struct {
	Name string
	Tier domain.ResponderTier
}

// ResponderUpdateInput carries mutable responder fields. Nil means
// unchanged.
type ResponderUpdateInput struct {
	Name   *string
	Tier   *domain.ResponderTier
	Active *bool
}

// ResponderCredentials is returned at onboarding and token reissue.
type ResponderCredentials struct {
	Responder *domain.Responder
	Token     string
	ExpiresAt time.Time
}

// ResponderService manages responder accounts, presence and tokens.
type ResponderService interface {
	Create(ctx context.Context, input ResponderCreateInput) (*ResponderCredentials, error)
	ReissueToken(ctx context.Context, responderID string) (*ResponderCredentials, error)
	Update(ctx context.Context, responderID string, input ResponderUpdateInput) (*domain.Responder, error)
	Heartbeat(ctx context.Context, responderID string) (*domain.Responder, error)
	GetByResponderID(ctx context.Context, responderID string) (*domain.Responder, error)
	List(ctx context.Context, filter repository.ResponderFilter) ([]domain.Responder, error)
}

// ResponderDependencies bundles the responder service collaborators.
type ResponderDependencies struct {
	Responders repository.ResponderRepository
	Tokens     *auth.TokenManager
	Logger     *zap.Logger
}

type responderService struct {
	deps ResponderDependencies
}

// NewResponderService constructs the service.
func NewResponderService(deps ResponderDependencies) ResponderService {
	return &responderService{deps: deps}
}

func (s *responderService) Create(ctx context.Context, input ResponderCreateInput) (*ResponderCredentials, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if input.Tier != domain.ResponderTier1 && input.Tier != domain.ResponderTier2 {
		return nil, apperrors.NewValidationError("unknown tier", map[string]any{"tier": input.Tier})
	}

	id, err := GenerateAccountID(ctx, "RESP", s.responderIDTaken)
	if err != nil {
		return nil, err
	}
	responder := &domain.Responder{
		ResponderID: id,
		Name:        input.Name,
		Tier:        input.Tier,
		Active:      true,
	}
	if err := s.deps.Responders.Create(ctx, responder); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.deps.Logger.Info("responder onboarded",
		zap.String("responder_id", responder.ResponderID), zap.String("tier", string(responder.Tier)))
	return s.issue(responder)
}

func (s *responderService) ReissueToken(ctx context.Context, responderID string) (*ResponderCredentials, error) {
	responder, err := s.GetByResponderID(ctx, responderID)
	if err != nil {
		return nil, err
	}
	if !responder.Active {
		return nil, apperrors.NewForbidden("responder is deactivated")
	}
	return s.issue(responder)
}

func (s *responderService) issue(responder *domain.Responder) (*ResponderCredentials, error) {
	role := domain.RoleResponderTier1
	if responder.Tier == domain.ResponderTier2 {
		role = domain.RoleResponderTier2
	}
	token, expiresAt, err := s.deps.Tokens.GenerateToken(responder.ResponderID, domain.ActorKindResponder, role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &ResponderCredentials{Responder: responder, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *responderService) Update(ctx context.Context, responderID string, input ResponderUpdateInput) (*domain.Responder, error) {
	responder, err := s.GetByResponderID(ctx, responderID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		responder.Name = *input.Name
	}
	if input.Tier != nil {
		if *input.Tier != domain.ResponderTier1 && *input.Tier != domain.ResponderTier2 {
			return nil, apperrors.NewValidationError("unknown tier", map[string]any{"tier": *input.Tier})
		}
		responder.Tier = *input.Tier
	}
	if input.Active != nil {
		responder.Active = *input.Active
	}
	if err := s.deps.Responders.Update(ctx, responder); err != nil {
		return nil, apperrors.MapError(err)
	}
	return responder, nil
}

// Heartbeat marks the responder online and refreshes last-seen. Called
// by the responder client on an interval.
func (s *responderService) Heartbeat(ctx context.Context, responderID string) (*domain.Responder, error) {
	responder, err := s.GetByResponderID(ctx, responderID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	responder.Online = true
	responder.LastSeen = &now
	if err := s.deps.Responders.Update(ctx, responder); err != nil {
		return nil, apperrors.MapError(err)
	}
	return responder, nil
}

func (s *responderService) GetByResponderID(ctx context.Context, responderID string) (*domain.Responder, error) {
	responder, err := s.deps.Responders.GetByResponderID(ctx, responderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("responder", map[string]any{"id": responderID})
		}
		return nil, apperrors.MapError(err)
	}
	return responder, nil
}

func (s *responderService) List(ctx context.Context, filter repository.ResponderFilter) ([]domain.Responder, error) {
	responders, err := s.deps.Responders.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return responders, nil
}

func (s *responderService) responderIDTaken(ctx context.Context, id string) (bool, error) {
	_, err := s.deps.Responders.GetByResponderID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return false, apperrors.MapError(err)
}
