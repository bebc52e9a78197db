package auth

import "errors"

// Token verification failures. Callers that sit on the HTTP boundary must
// collapse all of these into a single 401 response so the client cannot tell
// which check failed.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

var (
	// ErrUnauthorized covers every authentication failure: bad credentials,
	// unknown subject, stale claims. Deliberately indistinct.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authentic but lacks the required role.
	ErrForbidden = errors.New("forbidden")
)
