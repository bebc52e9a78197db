package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/middleware"
	"github.com/jetbook/jetbook/internal/user"
)

type profileResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	ProfileImageURL string `json:"profile_image_url"`
	MembershipID    string `json:"membership_id,omitempty"`
}

func profileJSON(u user.User) profileResponse {
	return profileResponse{
		ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role,
		FirstName: u.FirstName, LastName: u.LastName, Phone: u.Phone,
		ProfileImageURL: u.ProfileImageURL, MembershipID: u.MembershipID,
	}
}

type profileUpdateRequest struct {
	Name            string `json:"name"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	ProfileImageURL string `json:"profile_image_url"`
}

// RegisterProfileRoutes wires the authenticated user's own profile endpoints.
// The handlers talk to the repository directly; there is no profile service.
func RegisterProfileRoutes(r fiber.Router, repo user.Repository) {
	r.Get("/me", func(c *fiber.Ctx) error {
		identity, ok := middleware.Identity(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "unauthorized")
		}
		return c.JSON(profileJSON(identity))
	})

	r.Put("/me", func(c *fiber.Ctx) error {
		identity, ok := middleware.Identity(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "unauthorized")
		}
		var req profileUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		identity.Name = req.Name
		identity.FirstName = req.FirstName
		identity.LastName = req.LastName
		identity.Phone = req.Phone
		identity.ProfileImageURL = req.ProfileImageURL
		if err := repo.Update(c.UserContext(), identity); err != nil {
			return fiber.NewError(http.StatusInternalServerError, "failed to update profile")
		}
		return c.JSON(profileJSON(identity))
	})
}

type adminUserUpdateRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	ProfileImageURL string `json:"profile_image_url"`
}

// RegisterAdminUserRoutes wires user account management.
func RegisterAdminUserRoutes(r fiber.Router, repo user.Repository) {
	r.Get("/users", func(c *fiber.Ctx) error {
		users, err := repo.List(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, "failed to fetch users")
		}
		out := make([]profileResponse, 0, len(users))
		for _, u := range users {
			out = append(out, profileJSON(u))
		}
		return c.JSON(out)
	})

	r.Get("/users/:id", func(c *fiber.Ctx) error {
		u, err := repo.FindByID(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "user not found")
			}
			return fiber.NewError(http.StatusInternalServerError, "failed to fetch user")
		}
		return c.JSON(profileJSON(u))
	})

	r.Put("/users/:id", func(c *fiber.Ctx) error {
		u, err := repo.FindByID(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "user not found")
			}
			return fiber.NewError(http.StatusInternalServerError, "failed to fetch user")
		}
		var req adminUserUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if req.Role != "" && req.Role != user.RoleUser && req.Role != user.RoleAdmin {
			return fiber.NewError(http.StatusBadRequest, "invalid role")
		}
		u.Name = req.Name
		u.FirstName = req.FirstName
		u.LastName = req.LastName
		u.Phone = req.Phone
		u.ProfileImageURL = req.ProfileImageURL
		if req.Email != "" {
			u.Email = req.Email
		}
		if req.Role != "" {
			u.Role = req.Role
		}
		if err := repo.Update(c.UserContext(), u); err != nil {
			return fiber.NewError(http.StatusInternalServerError, "failed to update user")
		}
		return c.JSON(profileJSON(u))
	})

	r.Delete("/users/:id", func(c *fiber.Ctx) error {
		if err := repo.Delete(c.UserContext(), c.Params("id")); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return fiber.NewError(http.StatusNotFound, "user not found")
			}
			return fiber.NewError(http.StatusInternalServerError, "failed to delete user")
		}
		return c.SendStatus(http.StatusNoContent)
	})
}
