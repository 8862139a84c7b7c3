package directory

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes directory lookup endpoints used for display enrichment.
type Handler struct {
	service *Service
}

// NewHandler constructs a directory HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Get returns one user by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, err := h.service.FindUserByID(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "user not found")
	}
	return c.Status(http.StatusOK).JSON(toUserResponse(user))
}

// List returns users filtered by role.
func (h *Handler) List(c *fiber.Ctx) error {
	role := c.Query("role")
	if role != RoleInvestor && role != RoleEntrepreneur {
		return fiber.NewError(http.StatusBadRequest, "role must be investor or entrepreneur")
	}
	users, err := h.service.UsersByRole(c.UserContext(), role)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.Status(http.StatusOK).JSON(out)
}
