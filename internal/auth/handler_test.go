package auth

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jetbook/jetbook/internal/user"
)

func setupAuthApp(t *testing.T) (*fiber.App, user.Repository) {
	t.Helper()
	repo := user.NewMemoryRepository()
	svc := NewService(repo, NewTokenIssuer("test-secret", time.Hour))
	h := NewHandler(svc)

	app := fiber.New()
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	return app, repo
}

type testResponse struct {
	Code int
	Body []byte
}

func postJSON(t *testing.T, app *fiber.App, path, body string) testResponse {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return testResponse{Code: resp.StatusCode, Body: payload}
}

func TestRegisterAndLogin(t *testing.T) {
	app, _ := setupAuthApp(t)

	rec := postJSON(t, app, "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"supersecret"}`)
	if rec.Code != fiber.StatusCreated {
		t.Fatalf("register: expected 201 got %d: %s", rec.Code, string(rec.Body))
	}

	var sess struct {
		UserID      string `json:"user_id"`
		Email       string `json:"email"`
		Role        string `json:"role"`
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(rec.Body, &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if sess.Email != "ada@example.com" || sess.Role != user.RoleUser {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.AccessToken == "" || sess.TokenType != "bearer" || sess.ExpiresIn <= 0 {
		t.Fatalf("bad token fields: %+v", sess)
	}

	rec = postJSON(t, app, "/auth/login", `{"email":"ada@example.com","password":"supersecret"}`)
	if rec.Code != fiber.StatusOK {
		t.Fatalf("login: expected 200 got %d: %s", rec.Code, string(rec.Body))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := setupAuthApp(t)

	rec := postJSON(t, app, "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"supersecret"}`)
	if rec.Code != fiber.StatusCreated {
		t.Fatalf("first register: expected 201 got %d", rec.Code)
	}
	rec = postJSON(t, app, "/auth/register", `{"name":"Eve","email":"ada@example.com","password":"anothersecret"}`)
	if rec.Code != fiber.StatusConflict {
		t.Fatalf("duplicate register: expected 409 got %d", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	app, _ := setupAuthApp(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Ada","password":"supersecret"}`},
		{"bad email", `{"name":"Ada","email":"nope","password":"supersecret"}`},
		{"short password", `{"name":"Ada","email":"ada@example.com","password":"short"}`},
	}
	for _, tc := range cases {
		if rec := postJSON(t, app, "/auth/register", tc.body); rec.Code != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", tc.name, rec.Code)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := setupAuthApp(t)

	rec := postJSON(t, app, "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"supersecret"}`)
	if rec.Code != fiber.StatusCreated {
		t.Fatalf("register: expected 201 got %d", rec.Code)
	}

	// Wrong password and unknown email must be indistinguishable.
	rec = postJSON(t, app, "/auth/login", `{"email":"ada@example.com","password":"wrongwrong"}`)
	if rec.Code != fiber.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401 got %d", rec.Code)
	}
	rec = postJSON(t, app, "/auth/login", `{"email":"ghost@example.com","password":"supersecret"}`)
	if rec.Code != fiber.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401 got %d", rec.Code)
	}
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	app, repo := setupAuthApp(t)

	rec := postJSON(t, app, "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"supersecret"}`)
	if rec.Code != fiber.StatusCreated {
		t.Fatalf("register: expected 201 got %d", rec.Code)
	}

	u, err := repo.FindByEmail(t.Context(), "ada@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if u.PasswordHash == "supersecret" || u.PasswordHash == "" {
		t.Fatalf("plaintext or empty password stored: %q", u.PasswordHash)
	}
	if !CheckPassword("supersecret", u.PasswordHash) {
		t.Fatal("stored hash does not verify")
	}
}
