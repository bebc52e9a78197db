package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity claim set embedded in every access token: the subject
// email (RegisteredClaims.Subject), the role and the user id. It is the single
// wire contract shared by issuer, verifier and middleware.
type Claims struct {
	Role   string `json:"role"`
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs claim sets into compact HS256 JWTs using a process-wide
// secret. Rotating the secret invalidates all outstanding tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer. A non-positive ttl falls back to 30 minutes.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for the given identity and returns it with its expiry.
func (i *TokenIssuer) Issue(userID, email, role string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.ttl)
	claims := Claims{
		Role:   role,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// TokenVerifier checks token signatures and expiry against the shared secret.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier builds a verifier for tokens signed with the same secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token string. Every failure maps to one of
// the typed errors; a partial claim set is never returned.
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
			return nil, ErrInvalidSignature
		default:
			return nil, v.classifyUnparsable(tokenString)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

// classifyUnparsable separates tampering from garbage. The parser decodes the
// claim set before it checks the signature, so a byte flipped inside the
// payload segment surfaces as a decode failure rather than a signature
// failure. If the input still splits into three base64url segments, the HS256
// check over header.payload settles which error it really is.
func (v *TokenVerifier) classifyUnparsable(tokenString string) error {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return ErrMalformedToken
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return ErrMalformedToken
	}
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, v.secret); err != nil {
		return ErrInvalidSignature
	}
	return ErrMalformedToken
}
