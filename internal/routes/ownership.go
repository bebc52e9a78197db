package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/ownership"
)

// RegisterOwnershipRoutes wires the user-facing share endpoints.
func RegisterOwnershipRoutes(r fiber.Router, h *ownership.Handler) {
	r.Post("/ownership-shares", h.Purchase)
	r.Get("/ownership-shares", h.List)
	r.Get("/ownership-shares/:id", h.Get)
}

// RegisterAdminOwnershipRoutes wires share management.
func RegisterAdminOwnershipRoutes(r fiber.Router, h *ownership.Handler) {
	r.Get("/ownership-shares", h.AdminList)
	r.Put("/ownership-shares/:id", h.AdminUpdate)
	r.Delete("/ownership-shares/:id", h.AdminDelete)
}
