package chat

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/middleware"
)

// Handler exposes the chat endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type messageRequest struct {
	Message string `json:"message"`
}

// Message processes one chat message for the authenticated user.
func (h *Handler) Message(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Message == "" {
		return fiber.NewError(http.StatusBadRequest, "message is required")
	}
	return c.JSON(h.svc.ProcessMessage(c.UserContext(), identity.ID, req.Message))
}
