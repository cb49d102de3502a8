package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-response/internal/domain"
	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

// RequireKind restricts a route to the given account kinds.
func RequireKind(kinds ...domain.ActorKind) fiber.Handler {
	allowed := make(map[domain.ActorKind]struct{}, len(kinds))
	for _, kind := range kinds {
		allowed[kind] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowed[principal.Kind]; !exists {
			return apperrors.NewForbidden("account kind not permitted")
		}
		return c.Next()
	}
}

// RequireRoles restricts a route to the given roles. SUPER_ADMIN always
// passes.
func RequireRoles(roles ...domain.Role) fiber.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role == domain.RoleSuperAdmin {
			return c.Next()
		}
		if len(allowed) == 0 {
			return c.Next()
		}
		if _, exists := allowed[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures any principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
