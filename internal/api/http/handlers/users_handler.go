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

// UsersHandler exposes admin-console account endpoints.
type UsersHandler struct {
	users service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Register POST /auth/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.users.Register(c.UserContext(), service.UserRegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// Login POST /auth/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      userResponse(result.User),
	}})
}

// Me GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user session required")
	}
	return c.JSON(fiber.Map{"data": userResponse(principal.User)})
}

// SetStatus PATCH /users/:id/status.
func (h *UsersHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.SetUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.users.SetStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Limit:  parseInt(c.Query("limit"), 50),
		Offset: parseInt(c.Query("offset"), 0),
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.Role(strings.ToUpper(strings.TrimSpace(roleStr)))
		filter.Role = &role
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.UserStatus(strings.ToUpper(strings.TrimSpace(statusStr)))
		filter.Status = &status
	}
	users, err := h.users.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}
