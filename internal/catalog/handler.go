package catalog

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes catalog endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type jetPayload struct {
	ID                  string   `json:"id,omitempty"`
	Name                string   `json:"name"`
	Manufacturer        string   `json:"manufacturer"`
	CategoryID          string   `json:"category_id,omitempty"`
	Year                int      `json:"year,omitempty"`
	MaxSpeedMPH         int      `json:"max_speed_mph,omitempty"`
	MaxPassengers       int      `json:"max_passengers"`
	PricePerHour        float64  `json:"price_per_hour"`
	CabinHeightFt       float64  `json:"cabin_height_ft,omitempty"`
	CabinWidthFt        float64  `json:"cabin_width_ft,omitempty"`
	CabinLengthFt       float64  `json:"cabin_length_ft,omitempty"`
	BaggageCapacityCuFt int      `json:"baggage_capacity_cuft,omitempty"`
	TakeoffDistanceFt   int      `json:"takeoff_distance_ft,omitempty"`
	LandingDistanceFt   int      `json:"landing_distance_ft,omitempty"`
	FuelCapacityLbs     int      `json:"fuel_capacity_lbs,omitempty"`
	ImageURL            string   `json:"image_url,omitempty"`
	GalleryURLs         []string `json:"gallery_urls,omitempty"`
	Features            []string `json:"features,omitempty"`
	Amenities           []string `json:"amenities,omitempty"`
	Status              string   `json:"status"`
	RangeNM             int      `json:"range_nm"`
	CreatedAt           string   `json:"created_at,omitempty"`
}

func jetJSON(j Jet) jetPayload {
	return jetPayload{
		ID: j.ID, Name: j.Name, Manufacturer: j.Manufacturer, CategoryID: j.CategoryID,
		Year: j.Year, MaxSpeedMPH: j.MaxSpeedMPH, MaxPassengers: j.MaxPassengers,
		PricePerHour: j.PricePerHour, CabinHeightFt: j.CabinHeightFt, CabinWidthFt: j.CabinWidthFt,
		CabinLengthFt: j.CabinLengthFt, BaggageCapacityCuFt: j.BaggageCapacityCuFt,
		TakeoffDistanceFt: j.TakeoffDistanceFt, LandingDistanceFt: j.LandingDistanceFt,
		FuelCapacityLbs: j.FuelCapacityLbs, ImageURL: j.ImageURL, GalleryURLs: j.GalleryURLs,
		Features: j.Features, Amenities: j.Amenities, Status: j.Status, RangeNM: j.RangeNM,
		CreatedAt: j.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func jetsJSON(jets []Jet) []jetPayload {
	out := make([]jetPayload, 0, len(jets))
	for _, j := range jets {
		out = append(out, jetJSON(j))
	}
	return out
}

// ListJets returns the whole fleet.
func (h *Handler) ListJets(c *fiber.Ctx) error {
	jets, err := h.svc.ListJets(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch jets")
	}
	return c.JSON(jetsJSON(jets))
}

// SearchJets filters available jets by query parameters.
func (h *Handler) SearchJets(c *fiber.Ctx) error {
	q := SearchQuery{
		Category:      c.Query("category"),
		MinPrice:      c.QueryFloat("min_price"),
		MaxPrice:      c.QueryFloat("max_price"),
		MinPassengers: c.QueryInt("passengers"),
		MinRangeNM:    c.QueryInt("range"),
	}
	jets, err := h.svc.SearchJets(c.UserContext(), q)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(jetsJSON(jets))
}

// GetJet returns a single jet.
func (h *Handler) GetJet(c *fiber.Ctx) error {
	j, err := h.svc.GetJet(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "jet not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch jet")
	}
	return c.JSON(jetJSON(j))
}

// CreateJet adds a jet to the fleet (admin).
func (h *Handler) CreateJet(c *fiber.Ctx) error {
	var req jetPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	j, err := h.svc.CreateJet(c.UserContext(), jetFromPayload(req))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(jetJSON(j))
}

// UpdateJet rewrites a jet (admin).
func (h *Handler) UpdateJet(c *fiber.Ctx) error {
	var req jetPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	jet := jetFromPayload(req)
	jet.ID = c.Params("id")
	j, err := h.svc.UpdateJet(c.UserContext(), jet)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "jet not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(jetJSON(j))
}

// DeleteJet removes a jet (admin).
func (h *Handler) DeleteJet(c *fiber.Ctx) error {
	if err := h.svc.DeleteJet(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "jet not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to delete jet")
	}
	return c.SendStatus(http.StatusNoContent)
}

type categoryPayload struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

func categoryJSON(cat Category) categoryPayload {
	return categoryPayload{ID: cat.ID, Name: cat.Name, Description: cat.Description, ImageURL: cat.ImageURL}
}

// ListCategories returns all jet categories.
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.svc.ListCategories(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch categories")
	}
	out := make([]categoryPayload, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryJSON(cat))
	}
	return c.JSON(out)
}

// GetCategory returns one category.
func (h *Handler) GetCategory(c *fiber.Ctx) error {
	cat, err := h.svc.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "category not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to fetch category")
	}
	return c.JSON(categoryJSON(cat))
}

// CreateCategory adds a category (admin).
func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	var req categoryPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	cat, err := h.svc.CreateCategory(c.UserContext(), Category{Name: req.Name, Description: req.Description, ImageURL: req.ImageURL})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(categoryJSON(cat))
}

// UpdateCategory rewrites a category (admin).
func (h *Handler) UpdateCategory(c *fiber.Ctx) error {
	var req categoryPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	cat, err := h.svc.UpdateCategory(c.UserContext(), Category{ID: c.Params("id"), Name: req.Name, Description: req.Description, ImageURL: req.ImageURL})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "category not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(categoryJSON(cat))
}

// DeleteCategory removes a category (admin).
func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.svc.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "category not found")
		}
		return fiber.NewError(http.StatusInternalServerError, "failed to delete category")
	}
	return c.SendStatus(http.StatusNoContent)
}

func jetFromPayload(p jetPayload) Jet {
	return Jet{
		Name: p.Name, Manufacturer: p.Manufacturer, CategoryID: p.CategoryID, Year: p.Year,
		MaxSpeedMPH: p.MaxSpeedMPH, MaxPassengers: p.MaxPassengers, PricePerHour: p.PricePerHour,
		CabinHeightFt: p.CabinHeightFt, CabinWidthFt: p.CabinWidthFt, CabinLengthFt: p.CabinLengthFt,
		BaggageCapacityCuFt: p.BaggageCapacityCuFt, TakeoffDistanceFt: p.TakeoffDistanceFt,
		LandingDistanceFt: p.LandingDistanceFt, FuelCapacityLbs: p.FuelCapacityLbs,
		ImageURL: p.ImageURL, GalleryURLs: p.GalleryURLs, Features: p.Features, Amenities: p.Amenities,
		Status: p.Status, RangeNM: p.RangeNM,
	}
}
