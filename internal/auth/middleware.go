package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/insureline/helpdesk/internal/domain"
	apperrors "github.com/insureline/helpdesk/pkg/util"
)

const principalKey = "auth_principal"

// TokenHeader carries the signed session credential.
const TokenHeader = "token"

// Principal is the decoded caller attached to the request context.
type Principal struct {
	ID   string
	Role domain.Role
	Name string
}

// Guard verifies session credentials and attaches the principal.
type Guard struct {
	tokens *TokenManager
}

// NewGuard constructs the access guard.
func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Authenticate enforces a valid session credential for protected
// routes. The decoded principal is attached for downstream handlers;
// no other side effect.
func (g *Guard) Authenticate(c *fiber.Ctx) error {
	tokenStr := c.Get(TokenHeader)
	if tokenStr == "" {
		return apperrors.NewUnauthenticated("missing session credential")
	}

	claims, err := g.tokens.ParseToken(tokenStr)
	if err != nil {
		return apperrors.NewUnauthenticated("invalid session credential")
	}

	c.Locals(principalKey, &Principal{
		ID:   claims.PrincipalID,
		Role: claims.Role,
		Name: claims.Name,
	})
	return c.Next()
}

// RequireRoles checks the caller's role against the route's declared
// allow-list. The allow-list tables in the router are the whole
// authorization policy.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("missing session credential")
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
