package user

import "time"

// Roles a user record can hold. The role stored on the row is authoritative;
// tokens carrying a different role are rejected at resolve time.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered platform member.
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Role            string
	FirstName       string
	LastName        string
	Phone           string
	ProfileImageURL string
	MembershipID    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Credentials carries a registration or login request.
type Credentials struct {
	Name     string
	Email    string
	Password string
}
