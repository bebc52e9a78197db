package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/booking"
)

// RegisterBookingRoutes wires the user-facing booking endpoints.
func RegisterBookingRoutes(r fiber.Router, h *booking.Handler) {
	r.Post("/bookings", h.Create)
	r.Get("/bookings", h.List)
	r.Get("/bookings/:id", h.Get)
	r.Post("/bookings/:id/cancel", h.Cancel)
}

// RegisterAdminBookingRoutes wires booking management.
func RegisterAdminBookingRoutes(r fiber.Router, h *booking.Handler) {
	r.Get("/bookings", h.AdminList)
	r.Put("/bookings/:id", h.AdminUpdate)
	r.Delete("/bookings/:id", h.AdminDelete)
}
