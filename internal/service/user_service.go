package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-response/internal/auth"
	"github.com/spec-kit/incident-response/internal/domain"
	"github.com/spec-kit/incident-response/internal/repository"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

// UserRegisterInput carries the admin-console signup form.
type UserRegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

// AuthResult is a successful login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// UserService manages admin-console accounts and sessions.
type UserService interface {
	Register(ctx context.Context, input UserRegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	SetStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error)
	List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error)
}

// UserDependencies bundles the user service collaborators.
type UserDependencies struct {
	Users      repository.UserRepository
	Tokens     *auth.TokenManager
	BcryptCost int
	Logger     *zap.Logger
}

type userService struct {
	deps UserDependencies
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) UserService {
	return &userService{deps: deps}
}

// registrableRoles are the roles an admin may grant through the API.
// SUPER_ADMIN is bootstrap-only.
var registrableRoles = map[domain.Role]bool{
	domain.RoleAdmin:          true,
	domain.RoleAgentAdmin:     true,
	domain.RoleResponderAdmin: true,
	domain.RoleResponderTier1: true,
	domain.RoleResponderTier2: true,
}

func (s *userService) Register(ctx context.Context, input UserRegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.FirstName == "" || email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("first name, email and password are required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if !registrableRoles[input.Role] {
		return nil, apperrors.NewValidationError("role cannot be granted", map[string]any{"role": input.Role})
	}

	if _, err := s.deps.Users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.deps.BcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Status:       domain.UserStatusActive,
	}
	if err := s.deps.Users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.deps.Logger.Info("user registered",
		zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.deps.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.Status != domain.UserStatusActive {
		return nil, apperrors.NewForbidden("account is deactivated")
	}

	token, expiresAt, err := s.deps.Tokens.GenerateToken(user.ID, domain.ActorKindUser, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.deps.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *userService) SetStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	if status != domain.UserStatusActive && status != domain.UserStatusInactive {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleSuperAdmin && status == domain.UserStatusInactive {
		return nil, apperrors.NewForbidden("super admin cannot be deactivated")
	}
	user.Status = status
	if err := s.deps.Users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	users, err := s.deps.Users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
