package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/middleware"
)

// Handler exposes booking endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	JetID           string    `json:"jet_id"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Passengers      int       `json:"passengers"`
	SpecialRequests string    `json:"special_requests"`
}

type bookingResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	JetID           string    `json:"jet_id"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Passengers      int       `json:"passengers"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Status          string    `json:"status"`
	TotalPrice      float64   `json:"total_price"`
	CreatedAt       time.Time `json:"created_at"`
}

func bookingJSON(b Booking) bookingResponse {
	return bookingResponse{
		ID: b.ID, UserID: b.UserID, JetID: b.JetID, Origin: b.Origin, Destination: b.Destination,
		StartTime: b.StartTime, EndTime: b.EndTime, Passengers: b.Passengers,
		SpecialRequests: b.SpecialRequests, Status: b.Status, TotalPrice: b.TotalPrice, CreatedAt: b.CreatedAt,
	}
}

func bookingsJSON(bookings []Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingJSON(b))
	}
	return out
}

// Create books a jet for the authenticated user.
func (h *Handler) Create(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.Create(c.UserContext(), CreateInput{
		UserID:          identity.ID,
		JetID:           req.JetID,
		Origin:          req.Origin,
		Destination:     req.Destination,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Passengers:      req.Passengers,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(bookingJSON(b))
}

// List returns the authenticated user's bookings.
func (h *Handler) List(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	bookings, err := h.svc.ListForUser(c.UserContext(), identity.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch bookings")
	}
	return c.JSON(bookingsJSON(bookings))
}

// Get returns one of the user's bookings.
func (h *Handler) Get(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	b, err := h.svc.Get(c.UserContext(), c.Params("id"), identity.ID)
	if err != nil {
		// Hide other users' bookings behind the same 404.
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotOwner) {
			return fiber.NewError(http.StatusNotFound, "booking not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch booking")
	}
	return c.JSON(bookingJSON(b))
}

// Cancel cancels one of the user's bookings.
func (h *Handler) Cancel(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	b, err := h.svc.Cancel(c.UserContext(), c.Params("id"), identity.ID, false)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotOwner):
			return fiber.NewError(http.StatusNotFound, "booking not found")
		case errors.Is(err, ErrNotCancellable):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "failed to cancel booking")
		}
	}
	return c.JSON(bookingJSON(b))
}

// AdminList returns all bookings.
func (h *Handler) AdminList(c *fiber.Ctx) error {
	bookings, err := h.svc.ListAll(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch bookings")
	}
	return c.JSON(bookingsJSON(bookings))
}

type adminUpdateRequest struct {
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Passengers      int       `json:"passengers"`
	SpecialRequests string    `json:"special_requests"`
	Status          string    `json:"status"`
}

// AdminUpdate rewrites a booking.
func (h *Handler) AdminUpdate(c *fiber.Ctx) error {
	var req adminUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.AdminUpdate(c.UserContext(), Booking{
		ID:              c.Params("id"),
		Origin:          req.Origin,
		Destination:     req.Destination,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Passengers:      req.Passengers,
		SpecialRequests: req.SpecialRequests,
		Status:          req.Status,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "booking not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(bookingJSON(b))
}

// AdminDelete removes a booking.
func (h *Handler) AdminDelete(c *fiber.Ctx) error {
	if err := h.svc.AdminDelete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "booking not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to delete booking")
	}
	return c.SendStatus(http.StatusNoContent)
}
