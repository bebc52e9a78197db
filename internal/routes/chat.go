package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/chat"
)

// RegisterChatRoutes wires the chat assistant endpoint.
func RegisterChatRoutes(r fiber.Router, h *chat.Handler) {
	r.Post("/chat/message", h.Message)
}
