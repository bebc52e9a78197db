package membership

import "time"

// Enrollment states.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// Plan is a purchasable membership tier.
type Plan struct {
	ID             string
	Name           string
	Description    string
	Price          float64
	DurationMonths int
	Benefits       []string
	ImageURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Enrollment ties a user to a plan for a bounded period.
type Enrollment struct {
	ID           string
	UserID       string
	MembershipID string
	StartDate    time.Time
	EndDate      time.Time
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
