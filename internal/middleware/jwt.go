package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/business-nexus/nexus/internal/auth"
	"github.com/business-nexus/nexus/internal/config"
	"github.com/business-nexus/nexus/internal/directory"
)

// Locals keys populated by JWTAuth.
const (
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
)

// JWTAuth validates bearer tokens and loads the user behind them.
func JWTAuth(cfg config.Config, repo directory.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		claims, err := auth.ParseAndVerifyHS256(tokenStr, []byte(cfg.JWTSecret))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}
		sub, _ := claims["sub"].(string)

		user, err := repo.FindByID(c.UserContext(), sub)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "token invalidated")
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUserRole, user.Role)
		return c.Next()
	}
}

// RequireRole gates a route group on the caller's directory role. This is a
// navigation convenience mirroring the client's role gate, not a security
// boundary.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, _ := c.Locals(LocalUserRole).(string)
		if current != role {
			return fiber.NewError(http.StatusForbidden, "requires "+role+" role")
		}
		return c.Next()
	}
}
