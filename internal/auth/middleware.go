package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/medimart/marketplace-service/pkg/util"
)

const claimsKey = "auth_claims"

// Middleware gates protected routes. Attach per route; routes registered
// without it stay public.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the gate.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle validates the credential and attaches its claims to the request.
// Clients send the raw token in the Authorization header, without a scheme
// prefix. A failed decode is terminal for the request; the client must log in
// again for a fresh token.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := c.Get(fiber.HeaderAuthorization)
	if token == "" {
		return apperrors.NewUnauthorized("Unauthorized access - no token provided")
	}

	claims, err := m.tokens.Parse(token)
	if err != nil {
		return apperrors.NewForbidden("Forbidden - invalid token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the authenticated identity. Handlers treat the
// claims as read-only.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
