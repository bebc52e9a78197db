package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/catalog"
)

// RegisterCatalogRoutes wires the public jet and category endpoints.
func RegisterCatalogRoutes(r fiber.Router, h *catalog.Handler) {
	r.Get("/jets", h.ListJets)
	r.Get("/jets/search", h.SearchJets)
	r.Get("/jets/:id", h.GetJet)
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/:id", h.GetCategory)
}

// RegisterAdminCatalogRoutes wires jet and category management.
func RegisterAdminCatalogRoutes(r fiber.Router, h *catalog.Handler) {
	r.Post("/jets", h.CreateJet)
	r.Put("/jets/:id", h.UpdateJet)
	r.Delete("/jets/:id", h.DeleteJet)
	r.Post("/categories", h.CreateCategory)
	r.Put("/categories/:id", h.UpdateCategory)
	r.Delete("/categories/:id", h.DeleteCategory)
}
