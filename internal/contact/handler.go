package contact

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handler exposes contact info endpoints.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type infoResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Label     string `json:"label"`
	IsPrimary bool   `json:"is_primary"`
}

type createRequest struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Label     string `json:"label"`
	IsPrimary bool   `json:"is_primary"`
}

// Primary returns the primary contact channel.
func (h *Handler) Primary(c *fiber.Ctx) error {
	info, err := h.repo.FindPrimary(c.UserContext())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "no primary contact configured")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch contact info")
	}
	return c.JSON(infoResponse{ID: info.ID, Type: info.Type, Value: info.Value, Label: info.Label, IsPrimary: info.IsPrimary})
}

// Create registers a contact channel (admin).
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Type == "" || req.Value == "" {
		return fiber.NewError(http.StatusBadRequest, "type and value are required")
	}
	info := Info{
		ID:        uuid.New().String(),
		Type:      req.Type,
		Value:     req.Value,
		Label:     req.Label,
		IsPrimary: req.IsPrimary,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.repo.Create(c.UserContext(), info); err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to store contact info")
	}
	return c.Status(http.StatusCreated).JSON(infoResponse{ID: info.ID, Type: info.Type, Value: info.Value, Label: info.Label, IsPrimary: info.IsPrimary})
}
