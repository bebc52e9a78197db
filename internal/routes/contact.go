package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/contact"
)

// RegisterContactRoutes wires the public contact endpoint.
func RegisterContactRoutes(r fiber.Router, h *contact.Handler) {
	r.Get("/contact/primary", h.Primary)
}

// RegisterAdminContactRoutes wires contact management.
func RegisterAdminContactRoutes(r fiber.Router, h *contact.Handler) {
	r.Post("/contact", h.Create)
}
