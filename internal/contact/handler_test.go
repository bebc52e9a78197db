package contact

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupContactApp() (*fiber.App, Repository) {
	repo := NewMemoryRepository()
	h := NewHandler(repo)
	app := fiber.New()
	app.Get("/contact/primary", h.Primary)
	app.Post("/contact", h.Create)
	return app, repo
}

func TestPrimaryNotConfigured(t *testing.T) {
	app, _ := setupContactApp()

	req := httptest.NewRequest(fiber.MethodGet, "/contact/primary", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.StatusCode)
	}
}

func TestCreateThenFetchPrimary(t *testing.T) {
	app, _ := setupContactApp()

	body := `{"type":"phone","value":"+41 22 555 0100","label":"Concierge desk","is_primary":true}`
	req := httptest.NewRequest(fiber.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: expected 201 got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/contact/primary", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("primary: expected 200 got %d", resp.StatusCode)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var got infoResponse
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != "phone" || got.Value != "+41 22 555 0100" || !got.IsPrimary {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.ID == "" {
		t.Fatal("expected a generated id")
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	app, _ := setupContactApp()

	req := httptest.NewRequest(fiber.MethodPost, "/contact", strings.NewReader(`{"type":"phone"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}
