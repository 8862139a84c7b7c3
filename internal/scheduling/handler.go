package scheduling

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes scheduling HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a scheduling HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type slotRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// CreateSlot declares an availability slot.
func (h *Handler) CreateSlot(c *fiber.Ctx) error {
	var req slotRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	slot, err := h.service.CreateAvailabilitySlot(c.UserContext(), req.UserID, req.Title, req.Start, req.End)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(slot)
}

// ListSlots returns the owner's availability ordered by start time.
func (h *Handler) ListSlots(c *fiber.Ctx) error {
	slots, err := h.service.AvailabilitySlots(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(slots)
}

// DeleteSlot removes a slot from the owner's calendar.
func (h *Handler) DeleteSlot(c *fiber.Ctx) error {
	if err := h.service.DeleteAvailabilitySlot(c.UserContext(), c.Params("slotId")); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}

type createRequestRequest struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Title      string `json:"title"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Message    string `json:"message"`
}

// CreateRequest files a meeting proposal.
func (h *Handler) CreateRequest(c *fiber.Ctx) error {
	var req createRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	created, err := h.service.CreateMeetingRequest(c.UserContext(), CreateRequestInput{
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Title:      req.Title,
		Start:      req.Start,
		End:        req.End,
		Message:    req.Message,
	})
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(created)
}

// ListRequests returns the user's sent and received requests, newest first.
func (h *Handler) ListRequests(c *fiber.Ctx) error {
	requests, err := h.service.MeetingRequestsForUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(requests)
}

type respondRequest struct {
	Response string `json:"response"`
}

// Respond settles a pending meeting request.
func (h *Handler) Respond(c *fiber.Ctx) error {
	var req respondRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	response := RequestStatus(req.Response)
	if response != RequestAccepted && response != RequestDeclined {
		return fiber.NewError(http.StatusBadRequest, "response must be accepted or declined")
	}
	result, err := h.service.RespondToMeetingRequest(c.UserContext(), c.Params("requestId"), response)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if result.Request == nil {
		return fiber.NewError(http.StatusNotFound, "meeting request not found")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"request": result.Request,
		"meeting": result.Meeting,
	})
}

// ListMeetings returns the user's confirmed meetings ordered by start time.
func (h *Handler) ListMeetings(c *fiber.Ctx) error {
	meetings, err := h.service.MeetingsForUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(meetings)
}
