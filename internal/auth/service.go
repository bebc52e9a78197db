package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jetbook/jetbook/internal/user"
)

// ErrInvalidCredentials is returned for any bad login: unknown email or wrong
// password, indistinguishably.
var ErrInvalidCredentials = errors.New("invalid email or password")

const minPasswordLength = 8

// Service handles registration and login, issuing access tokens on success.
type Service struct {
	users  user.Repository
	issuer *TokenIssuer
}

// NewService creates an auth service over the user repository and token issuer.
func NewService(users user.Repository, issuer *TokenIssuer) *Service {
	return &Service{users: users, issuer: issuer}
}

// Session is the result of a successful registration or login.
type Session struct {
	User        user.User
	AccessToken string
	ExpiresIn   int64
}

// Register creates a new user with role "user" and issues a token.
func (s *Service) Register(ctx context.Context, creds user.Credentials) (Session, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, errors.New("a valid email is required")
	}
	if len(creds.Password) < minPasswordLength {
		return Session{}, errors.New("password must be at least 8 characters")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return Session{}, user.ErrEmailTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return Session{}, err
	}

	hash, err := HashPassword(creds.Password)
	if err != nil {
		return Session{}, err
	}

	u := user.User{
		ID:           uuid.New().String(),
		Name:         creds.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return Session{}, err
	}

	return s.startSession(u)
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if !CheckPassword(password, u.PasswordHash) {
		return Session{}, ErrInvalidCredentials
	}
	return s.startSession(u)
}

func (s *Service) startSession(u user.User) (Session, error) {
	token, exp, err := s.issuer.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{
		User:        u,
		AccessToken: token,
		ExpiresIn:   int64(time.Until(exp).Seconds()),
	}, nil
}
