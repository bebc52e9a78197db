package ownership

import "time"

// Share states.
const (
	StatusActive = "active"
	StatusSold   = "sold"
)

// Share is a fractional ownership stake in a jet.
type Share struct {
	ID            string
	UserID        string
	JetID         string
	ShareFraction float64
	PurchaseDate  time.Time
	PurchasePrice float64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PurchaseInput captures a share purchase request.
type PurchaseInput struct {
	UserID        string
	JetID         string
	ShareFraction float64
	PurchasePrice float64
}
