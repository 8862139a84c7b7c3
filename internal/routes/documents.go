package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/business-nexus/nexus/internal/documents"
)

// RegisterDocumentRoutes wires document chamber endpoints.
func RegisterDocumentRoutes(r fiber.Router, h *documents.Handler) {
	r.Post("/documents", h.Upload)
	r.Get("/documents", h.List)
	r.Patch("/documents/:docId/status", h.UpdateStatus)
	r.Put("/documents/:docId/signature", h.SaveSignature)
	r.Delete("/documents/:docId", h.Delete)
}
