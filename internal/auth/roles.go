package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// RequireFirm ensures a firm is authenticated.
func RequireFirm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller holds admin or superadmin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Firm == nil || !principal.Firm.IsAdmin() {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}

// RequireSuperadmin ensures the caller holds the superadmin role.
func RequireSuperadmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Firm == nil || principal.Firm.Role != domain.FirmRoleSuperadmin {
			return apperrors.NewForbidden("superadmin role required")
		}
		return c.Next()
	}
}
