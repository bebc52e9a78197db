package routes

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/config"
	"github.com/jetbook/jetbook/internal/logging"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	err := Setup(app, Deps{
		Cfg: config.Config{
			AppName:        "JetBook",
			AppEnv:         "dev",
			JWTSecret:      "test-secret",
			TokenTTL:       time.Hour,
			MCPURL:         "http://127.0.0.1:1", // never reached in these tests
			IdempotencyTTL: time.Minute,
		},
		Logger: logging.Discard(),
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, payload
}

func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	code, body := doRequest(t, app, fiber.MethodPost, "/api/v1/auth/register", "",
		`{"name":"Test","email":"`+email+`","password":"supersecret"}`)
	if code != fiber.StatusCreated {
		t.Fatalf("register: expected 201 got %d: %s", code, body)
	}
	var sess struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return sess.AccessToken
}

func TestPing(t *testing.T) {
	app := setupApp(t)
	code, body := doRequest(t, app, fiber.MethodGet, "/api/v1/ping", "", "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 got %d: %s", code, body)
	}
}

func TestHealthz(t *testing.T) {
	app := setupApp(t)
	if code, _ := doRequest(t, app, fiber.MethodGet, "/healthz", "", ""); code != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupApp(t)
	if code, _ := doRequest(t, app, fiber.MethodGet, "/metrics", "", ""); code != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", code)
	}
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	app := setupApp(t)
	for _, path := range []string{"/api/v1/jets", "/api/v1/categories", "/api/v1/memberships"} {
		if code, body := doRequest(t, app, fiber.MethodGet, path, "", ""); code != fiber.StatusOK {
			t.Fatalf("%s: expected 200 got %d: %s", path, code, body)
		}
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	app := setupApp(t)
	for _, path := range []string{"/api/v1/me", "/api/v1/bookings", "/api/v1/ownership-shares"} {
		if code, _ := doRequest(t, app, fiber.MethodGet, path, "", ""); code != fiber.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, code)
		}
	}
}

func TestRegisterLoginAndProfile(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app, "ada@example.com")

	code, body := doRequest(t, app, fiber.MethodGet, "/api/v1/me", token, "")
	if code != fiber.StatusOK {
		t.Fatalf("me: expected 200 got %d: %s", code, body)
	}
	var profile struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Email != "ada@example.com" || profile.Role != "user" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestAdminRoutesForbiddenForRegularUser(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app, "ada@example.com")

	code, _ := doRequest(t, app, fiber.MethodGet, "/api/v1/admin/users", token, "")
	if code != fiber.StatusForbidden {
		t.Fatalf("expected 403 got %d", code)
	}
	code, _ = doRequest(t, app, fiber.MethodPost, "/api/v1/admin/jets", token, `{"name":"X"}`)
	if code != fiber.StatusForbidden {
		t.Fatalf("expected 403 got %d", code)
	}
}

func TestBookingFlow(t *testing.T) {
	app := setupApp(t)
	token := registerUser(t, app, "ada@example.com")

	// No jets exist, so a booking against an unknown jet fails cleanly.
	code, _ := doRequest(t, app, fiber.MethodPost, "/api/v1/bookings", token,
		`{"jet_id":"nope","origin":"Geneva","destination":"Nice","start_time":"2026-09-10T09:00:00Z","end_time":"2026-09-10T11:00:00Z","passengers":2}`)
	if code == fiber.StatusOK || code == fiber.StatusCreated {
		t.Fatalf("expected failure for unknown jet, got %d", code)
	}

	code, body := doRequest(t, app, fiber.MethodGet, "/api/v1/bookings", token, "")
	if code != fiber.StatusOK {
		t.Fatalf("list bookings: expected 200 got %d: %s", code, body)
	}
}
