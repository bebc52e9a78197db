package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/membership"
)

// RegisterMembershipPlanRoutes wires the public plan catalog.
func RegisterMembershipPlanRoutes(r fiber.Router, h *membership.Handler) {
	r.Get("/memberships", h.ListPlans)
	r.Get("/memberships/:id", h.GetPlan)
}

// RegisterMembershipRoutes wires enrollment endpoints.
func RegisterMembershipRoutes(r fiber.Router, h *membership.Handler) {
	r.Post("/memberships/enroll", h.Enroll)
	r.Get("/me/membership", h.Current)
}

// RegisterAdminMembershipRoutes wires plan management.
func RegisterAdminMembershipRoutes(r fiber.Router, h *membership.Handler) {
	r.Post("/memberships", h.CreatePlan)
	r.Put("/memberships/:id", h.UpdatePlan)
	r.Delete("/memberships/:id", h.DeletePlan)
}
