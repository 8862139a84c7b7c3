package documents

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes document chamber HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a documents HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload ingests a multipart file upload as a new draft document.
func (h *Handler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "file is required")
	}
	ownerID := c.FormValue("owner_id")
	if ownerID == "" {
		return fiber.NewError(http.StatusBadRequest, "owner_id is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	defer file.Close()

	doc, err := h.service.CreateFromUpload(c.UserContext(), UploadInput{
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get(fiber.HeaderContentType),
		Size:         fileHeader.Size,
		LastModified: time.Now().UTC(),
		OwnerID:      ownerID,
		Content:      file,
	})
	if err != nil {
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(doc)
}

// List returns all documents, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	docs, err := h.service.Documents(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(docs)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus sets the document lifecycle state.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	status := Status(req.Status)
	switch status {
	case StatusDraft, StatusInReview, StatusSigned:
	default:
		return fiber.NewError(http.StatusBadRequest, "status must be draft, in_review or signed")
	}

	doc, err := h.service.UpdateStatus(c.UserContext(), c.Params("docId"), status)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if doc == nil {
		return fiber.NewError(http.StatusNotFound, "document not found")
	}
	return c.Status(http.StatusOK).JSON(doc)
}

type signatureRequest struct {
	Signature string `json:"signature"`
}

// SaveSignature stores a captured signature image and marks the document signed.
func (h *Handler) SaveSignature(c *fiber.Ctx) error {
	var req signatureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Signature == "" {
		return fiber.NewError(http.StatusBadRequest, "signature is required")
	}

	doc, err := h.service.SaveSignature(c.UserContext(), c.Params("docId"), req.Signature)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if doc == nil {
		return fiber.NewError(http.StatusNotFound, "document not found")
	}
	return c.Status(http.StatusOK).JSON(doc)
}

// Delete removes a document.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("docId")); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}
