package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/business-nexus/nexus/internal/scheduling"
)

// RegisterSchedulingRoutes wires availability, request and meeting endpoints.
func RegisterSchedulingRoutes(r fiber.Router, h *scheduling.Handler) {
	r.Post("/availability", h.CreateSlot)
	r.Get("/availability/:userId", h.ListSlots)
	r.Delete("/availability/:slotId", h.DeleteSlot)
	r.Post("/meeting-requests", h.CreateRequest)
	r.Get("/meeting-requests/:userId", h.ListRequests)
	r.Post("/meeting-requests/:requestId/respond", h.Respond)
	r.Get("/meetings/:userId", h.ListMeetings)
}
