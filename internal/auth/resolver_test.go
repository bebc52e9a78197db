package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jetbook/jetbook/internal/user"
)

func seedUser(t *testing.T, repo user.Repository, u user.User) user.User {
	t.Helper()
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestResolveHappyPath(t *testing.T) {
	repo := user.NewMemoryRepository()
	u := seedUser(t, repo, user.User{ID: "u-1", Email: "pilot@example.com", Role: user.RoleUser})

	issuer := NewTokenIssuer("test-secret", time.Hour)
	resolver := NewResolver(NewTokenVerifier("test-secret"), repo)

	token, _, err := issuer.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := resolver.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != u.ID || got.Email != u.Email {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestResolveUnknownUser(t *testing.T) {
	repo := user.NewMemoryRepository()
	issuer := NewTokenIssuer("test-secret", time.Hour)
	resolver := NewResolver(NewTokenVerifier("test-secret"), repo)

	token, _, err := issuer.Issue("u-ghost", "ghost@example.com", user.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestResolveStaleRole(t *testing.T) {
	// A token minted while the user was admin must stop working once the
	// stored role changes.
	repo := user.NewMemoryRepository()
	u := seedUser(t, repo, user.User{ID: "u-1", Email: "boss@example.com", Role: user.RoleAdmin})

	issuer := NewTokenIssuer("test-secret", time.Hour)
	resolver := NewResolver(NewTokenVerifier("test-secret"), repo)

	token, _, err := issuer.Issue(u.ID, u.Email, user.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	u.Role = user.RoleUser
	if err := repo.Update(context.Background(), u); err != nil {
		t.Fatalf("demote: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after role change, got %v", err)
	}
}

func TestResolveMismatchedUserID(t *testing.T) {
	repo := user.NewMemoryRepository()
	u := seedUser(t, repo, user.User{ID: "u-1", Email: "pilot@example.com", Role: user.RoleUser})

	issuer := NewTokenIssuer("test-secret", time.Hour)
	resolver := NewResolver(NewTokenVerifier("test-secret"), repo)

	token, _, err := issuer.Issue("u-other", u.Email, u.Role)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestResolveBadToken(t *testing.T) {
	repo := user.NewMemoryRepository()
	resolver := NewResolver(NewTokenVerifier("test-secret"), repo)

	if _, err := resolver.Resolve(context.Background(), "not.a.token"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	admin := user.User{ID: "u-1", Role: user.RoleAdmin}

	got, err := RequireRole(admin, user.RoleAdmin)
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if got.ID != admin.ID {
		t.Fatalf("identity must pass through unchanged, got %+v", got)
	}

	if _, err := RequireRole(user.User{Role: user.RoleUser}, user.RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
