package booking

import "time"

// Booking lifecycle states.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking represents a charter reservation for a jet.
type Booking struct {
	ID              string
	UserID          string
	JetID           string
	Origin          string
	Destination     string
	StartTime       time.Time
	EndTime         time.Time
	Passengers      int
	SpecialRequests string
	Status          string
	TotalPrice      float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateInput captures the fields a client supplies when booking.
type CreateInput struct {
	UserID          string
	JetID           string
	Origin          string
	Destination     string
	StartTime       time.Time
	EndTime         time.Time
	Passengers      int
	SpecialRequests string
}
