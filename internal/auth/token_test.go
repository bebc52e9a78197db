package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	verifier := NewTokenVerifier("test-secret")

	token, exp, err := issuer.Issue("user-1", "pilot@example.com", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected compact three-part token, got %d parts", len(parts))
	}
	if time.Until(exp) < 59*time.Minute {
		t.Fatalf("expiry too close: %v", exp)
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "pilot@example.com" || claims.Role != "user" || claims.UserID != "user-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	verifier := NewTokenVerifier("test-secret")

	token, _, err := issuer.Issue("user-1", "pilot@example.com", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip one character of the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	tampered := strings.Join(parts, ".")

	if _, err := verifier.Verify(tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	verifier := NewTokenVerifier("secret-b")

	token, _, err := issuer.Issue("user-1", "pilot@example.com", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")

	claims := Claims{
		Role:   "user",
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "pilot@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")
	for _, input := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := verifier.Verify(input); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("input %q: expected ErrMalformedToken, got %v", input, err)
		}
	}
}

func TestVerifyRejectsUnexpectedAlgorithm(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role:   "admin",
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "pilot@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected alg=none token to be rejected")
	}
}
