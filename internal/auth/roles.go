package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/domain"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// RequireRecruiter ensures the caller is an authenticated recruiter.
func RequireRecruiter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role() != domain.RoleRecruiter {
			return apperrors.NewForbidden("recruiter role required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures the caller carries a resolved principal.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
