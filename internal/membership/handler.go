package membership

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/middleware"
)

// Handler exposes membership endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type planPayload struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Price          float64  `json:"price"`
	DurationMonths int      `json:"duration_months"`
	Benefits       []string `json:"benefits,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
}

func planJSON(p Plan) planPayload {
	return planPayload{
		ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price,
		DurationMonths: p.DurationMonths, Benefits: p.Benefits, ImageURL: p.ImageURL,
	}
}

// ListPlans returns all membership plans.
func (h *Handler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.svc.ListPlans(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch memberships")
	}
	out := make([]planPayload, 0, len(plans))
	for _, p := range plans {
		out = append(out, planJSON(p))
	}
	return c.JSON(out)
}

// GetPlan returns one membership plan.
func (h *Handler) GetPlan(c *fiber.Ctx) error {
	p, err := h.svc.GetPlan(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return fiber.NewError(http.StatusNotFound, "membership not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch membership")
	}
	return c.JSON(planJSON(p))
}

type enrollRequest struct {
	MembershipID string `json:"membership_id"`
}

type enrollmentResponse struct {
	ID           string    `json:"id"`
	MembershipID string    `json:"membership_id"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
}

// Enroll signs the authenticated user up for a plan.
func (h *Handler) Enroll(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req enrollRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.Enroll(c.UserContext(), identity.ID, req.MembershipID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return fiber.NewError(http.StatusNotFound, "membership not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(enrollmentResponse{
		ID: e.ID, MembershipID: e.MembershipID, StartDate: e.StartDate, EndDate: e.EndDate, Status: e.Status,
	})
}

// Current returns the authenticated user's active plan.
func (h *Handler) Current(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	plan, e, err := h.svc.CurrentPlan(c.UserContext(), identity.ID)
	if err != nil {
		if errors.Is(err, ErrNoEnrollment) {
			return fiber.NewError(http.StatusNotFound, "no active membership")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch membership")
	}
	return c.JSON(fiber.Map{
		"plan": planJSON(plan),
		"enrollment": enrollmentResponse{
			ID: e.ID, MembershipID: e.MembershipID, StartDate: e.StartDate, EndDate: e.EndDate, Status: e.Status,
		},
	})
}

// CreatePlan adds a plan (admin).
func (h *Handler) CreatePlan(c *fiber.Ctx) error {
	var req planPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.CreatePlan(c.UserContext(), Plan{
		Name: req.Name, Description: req.Description, Price: req.Price,
		DurationMonths: req.DurationMonths, Benefits: req.Benefits, ImageURL: req.ImageURL,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(planJSON(p))
}

// UpdatePlan rewrites a plan (admin).
func (h *Handler) UpdatePlan(c *fiber.Ctx) error {
	var req planPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.UpdatePlan(c.UserContext(), Plan{
		ID: c.Params("id"), Name: req.Name, Description: req.Description, Price: req.Price,
		DurationMonths: req.DurationMonths, Benefits: req.Benefits, ImageURL: req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return fiber.NewError(http.StatusNotFound, "membership not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(planJSON(p))
}

// DeletePlan removes a plan (admin).
func (h *Handler) DeletePlan(c *fiber.Ctx) error {
	if err := h.svc.DeletePlan(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return fiber.NewError(http.StatusNotFound, "membership not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to delete membership")
	}
	return c.SendStatus(http.StatusNoContent)
}
