package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/business-nexus/nexus/internal/directory"
	"github.com/business-nexus/nexus/internal/middleware"
)

// RegisterUserRoutes wires directory lookups and the profile endpoint.
func RegisterUserRoutes(r fiber.Router, h *directory.Handler, users *directory.Service) {
	r.Get("/users", h.List)
	r.Get("/users/:userId", h.Get)
	r.Get("/me", func(c *fiber.Ctx) error {
		uid, _ := c.Locals(middleware.LocalUserID).(string)
		if uid == "" {
			return c.SendStatus(http.StatusUnauthorized)
		}
		user, err := users.FindUserByID(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return c.JSON(fiber.Map{
			"user_id":    user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"created_at": user.CreatedAt,
		})
	})
}
