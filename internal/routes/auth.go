package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/business-nexus/nexus/internal/auth"
)

// RegisterAuthRoutes wires register/login endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, loginLimiter fiber.Handler) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", loginLimiter, h.Login)
}
