package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated firm.
type Principal struct {
	Firm *domain.Firm
}

// FirmID is a convenience accessor for the caller's firm id.
func (p *Principal) FirmID() string {
	if p == nil || p.Firm == nil {
		return ""
	}
	return p.Firm.ID
}

// AuthMiddleware validates bearer tokens and loads the calling firm.
type AuthMiddleware struct {
	tokens *TokenManager
	firms  repository.FirmRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, firms repository.FirmRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, firms: firms}
}

// Handle enforces authentication for protected routes. Suspended and
// inactive firms hold valid tokens but are still turned away.
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

	firm, err := m.firms.GetByID(c.UserContext(), claims.FirmID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("firm not found")
		}
		return apperrors.MapError(err)
	}
	if firm.Status != domain.FirmStatusActive {
		return apperrors.NewForbidden("firm account is not active")
	}

	c.Locals(principalKey, &Principal{Firm: firm})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated firm.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
