package auth

import (
	"context"

	"github.com/jetbook/jetbook/internal/user"
)

// UserLookup is the read-only persistence collaborator the resolver needs.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (user.User, error)
}

// Resolver turns a bearer token into a trusted user identity. Verification
// alone is not enough: the claims are cross-checked against the stored record
// on every request, so server-side role changes take effect immediately.
type Resolver struct {
	verifier *TokenVerifier
	users    UserLookup
}

// NewResolver builds a resolver over the given verifier and user store.
func NewResolver(verifier *TokenVerifier, users UserLookup) *Resolver {
	return &Resolver{verifier: verifier, users: users}
}

// Resolve verifies the token, loads the subject's record and cross-checks the
// embedded role and user id. Every failure collapses to ErrUnauthorized so a
// caller cannot distinguish a bad signature from an unknown email.
func (r *Resolver) Resolve(ctx context.Context, tokenString string) (user.User, error) {
	claims, err := r.verifier.Verify(tokenString)
	if err != nil {
		return user.User{}, ErrUnauthorized
	}

	u, err := r.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return user.User{}, ErrUnauthorized
	}

	if u.Role != claims.Role || u.ID != claims.UserID {
		return user.User{}, ErrUnauthorized
	}

	return u, nil
}

// RequireRole passes the identity through unchanged when it holds the role,
// otherwise returns ErrForbidden. Distinct from resolve failures: the caller
// is known-authentic here.
func RequireRole(u user.User, role string) (user.User, error) {
	if u.Role != role {
		return user.User{}, ErrForbidden
	}
	return u, nil
}
