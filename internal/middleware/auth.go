package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/auth"
	"github.com/jetbook/jetbook/internal/user"
)

const identityLocal = "identity"

// RequireAuth validates the bearer token through the resolver and stores the
// resolved user in request locals. All failures are a uniform 401.
func RequireAuth(resolver *auth.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "unauthorized")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		u, err := resolver.Resolve(c.UserContext(), tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "unauthorized")
		}

		c.Locals(identityLocal, u)
		return c.Next()
	}
}

// RequireRole gates a route on the resolved identity's role. Must run after
// RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := c.Locals(identityLocal).(user.User)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "unauthorized")
		}
		if _, err := auth.RequireRole(u, role); err != nil {
			return fiber.NewError(http.StatusForbidden, "insufficient privileges")
		}
		return c.Next()
	}
}

// Identity returns the resolved user stored by RequireAuth.
func Identity(c *fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(identityLocal).(user.User)
	return u, ok
}
