package ownership

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/middleware"
)

// Handler exposes ownership share endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type shareResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	JetID         string    `json:"jet_id"`
	ShareFraction float64   `json:"share_fraction"`
	PurchaseDate  time.Time `json:"purchase_date"`
	PurchasePrice float64   `json:"purchase_price"`
	Status        string    `json:"status"`
}

func shareJSON(s Share) shareResponse {
	return shareResponse{
		ID: s.ID, UserID: s.UserID, JetID: s.JetID, ShareFraction: s.ShareFraction,
		PurchaseDate: s.PurchaseDate, PurchasePrice: s.PurchasePrice, Status: s.Status,
	}
}

func sharesJSON(shares []Share) []shareResponse {
	out := make([]shareResponse, 0, len(shares))
	for _, s := range shares {
		out = append(out, shareJSON(s))
	}
	return out
}

type purchaseRequest struct {
	JetID         string  `json:"jet_id"`
	ShareFraction float64 `json:"share_fraction"`
	PurchasePrice float64 `json:"purchase_price"`
}

// Purchase buys a fractional share for the authenticated user.
func (h *Handler) Purchase(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	share, err := h.svc.Purchase(c.UserContext(), PurchaseInput{
		UserID:        identity.ID,
		JetID:         req.JetID,
		ShareFraction: req.ShareFraction,
		PurchasePrice: req.PurchasePrice,
	})
	if err != nil {
		if errors.Is(err, ErrOversubscribed) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(shareJSON(share))
}

// List returns the authenticated user's shares.
func (h *Handler) List(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	shares, err := h.svc.ListForUser(c.UserContext(), identity.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch shares")
	}
	return c.JSON(sharesJSON(shares))
}

// Get returns one of the user's shares.
func (h *Handler) Get(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	share, err := h.svc.Get(c.UserContext(), c.Params("id"), identity.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotOwner) {
			return fiber.NewError(http.StatusNotFound, "share not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch share")
	}
	return c.JSON(shareJSON(share))
}

// AdminList returns all shares.
func (h *Handler) AdminList(c *fiber.Ctx) error {
	shares, err := h.svc.ListAll(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch shares")
	}
	return c.JSON(sharesJSON(shares))
}

type adminShareUpdate struct {
	ShareFraction float64   `json:"share_fraction"`
	PurchaseDate  time.Time `json:"purchase_date"`
	PurchasePrice float64   `json:"purchase_price"`
	Status        string    `json:"status"`
}

// AdminUpdate rewrites a share.
func (h *Handler) AdminUpdate(c *fiber.Ctx) error {
	var req adminShareUpdate
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	share, err := h.svc.AdminUpdate(c.UserContext(), Share{
		ID:            c.Params("id"),
		ShareFraction: req.ShareFraction,
		PurchaseDate:  req.PurchaseDate,
		PurchasePrice: req.PurchasePrice,
		Status:        req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "share not found")
		case errors.Is(err, ErrOversubscribed):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(shareJSON(share))
}

// AdminDelete removes a share.
func (h *Handler) AdminDelete(c *fiber.Ctx) error {
	if err := h.svc.AdminDelete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "share not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to delete share")
	}
	return c.SendStatus(http.StatusNoContent)
}
