package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jetbook/jetbook/internal/catalog"
	"github.com/jetbook/jetbook/internal/notification"
)

// Booking state errors surfaced to handlers.
var (
	ErrJetUnavailable  = errors.New("jet is not available for booking")
	ErrNotCancellable  = errors.New("booking can no longer be cancelled")
	ErrNotOwner        = errors.New("booking belongs to another user")
	ErrInvalidSchedule = errors.New("end time must be after start time")
)

// JetSource is the catalog collaborator the booking service needs.
type JetSource interface {
	GetJet(ctx context.Context, id string) (catalog.Jet, error)
}

// Service manages the booking lifecycle and pricing.
type Service struct {
	repo     Repository
	jets     JetSource
	notifier notification.Notifier
}

// NewService builds a booking service.
func NewService(repo Repository, jets JetSource, notifier notification.Notifier) *Service {
	return &Service{repo: repo, jets: jets, notifier: notifier}
}

// Create prices and stores a new pending booking.
func (s *Service) Create(ctx context.Context, input CreateInput) (Booking, error) {
	if input.Origin == "" || input.Destination == "" {
		return Booking{}, errors.New("origin and destination are required")
	}
	if !input.EndTime.After(input.StartTime) {
		return Booking{}, ErrInvalidSchedule
	}
	if input.Passengers < 1 {
		input.Passengers = 1
	}

	jet, err := s.jets.GetJet(ctx, input.JetID)
	if err != nil {
		return Booking{}, err
	}
	if jet.Status != catalog.StatusAvailable {
		return Booking{}, ErrJetUnavailable
	}
	if input.Passengers > jet.MaxPassengers {
		return Booking{}, errors.New("passenger count exceeds jet capacity")
	}

	now := time.Now().UTC()
	b := Booking{
		ID:              uuid.New().String(),
		UserID:          input.UserID,
		JetID:           input.JetID,
		Origin:          input.Origin,
		Destination:     input.Destination,
		StartTime:       input.StartTime.UTC(),
		EndTime:         input.EndTime.UTC(),
		Passengers:      input.Passengers,
		SpecialRequests: input.SpecialRequests,
		Status:          StatusPending,
		TotalPrice:      price(jet.PricePerHour, input.StartTime, input.EndTime),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Booking{}, err
	}

	if s.notifier != nil {
		s.notifier.Event(ctx, "booking.created", map[string]any{
			"booking_id": b.ID,
			"user_id":    b.UserID,
			"jet_id":     b.JetID,
			"total":      b.TotalPrice,
		})
	}
	return b, nil
}

// Get returns a booking only if it belongs to the requesting user. Admin
// callers should use the repository-level listing instead.
func (s *Service) Get(ctx context.Context, id, userID string) (Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if b.UserID != userID {
		return Booking{}, ErrNotOwner
	}
	return b, nil
}

// ListForUser returns the user's bookings.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Cancel moves a pending or confirmed booking to cancelled. When admin is
// false the booking must belong to userID.
func (s *Service) Cancel(ctx context.Context, id, userID string, admin bool) (Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if !admin && b.UserID != userID {
		return Booking{}, ErrNotOwner
	}
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return Booking{}, ErrNotCancellable
	}

	b.Status = StatusCancelled
	b.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, b); err != nil {
		return Booking{}, err
	}

	if s.notifier != nil {
		s.notifier.Event(ctx, "booking.cancelled", map[string]any{
			"booking_id": b.ID,
			"user_id":    b.UserID,
		})
	}
	return b, nil
}

// ListAll returns every booking (admin).
func (s *Service) ListAll(ctx context.Context) ([]Booking, error) {
	return s.repo.List(ctx)
}

// AdminUpdate rewrites booking fields, re-pricing when the schedule changed (admin).
func (s *Service) AdminUpdate(ctx context.Context, b Booking) (Booking, error) {
	current, err := s.repo.Get(ctx, b.ID)
	if err != nil {
		return Booking{}, err
	}
	if !b.EndTime.After(b.StartTime) {
		return Booking{}, ErrInvalidSchedule
	}
	if !b.StartTime.Equal(current.StartTime) || !b.EndTime.Equal(current.EndTime) {
		jet, err := s.jets.GetJet(ctx, current.JetID)
		if err != nil {
			return Booking{}, err
		}
		b.TotalPrice = price(jet.PricePerHour, b.StartTime, b.EndTime)
	} else {
		b.TotalPrice = current.TotalPrice
	}
	b.UserID = current.UserID
	b.JetID = current.JetID
	b.CreatedAt = current.CreatedAt
	b.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// AdminDelete removes a booking outright (admin).
func (s *Service) AdminDelete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// price charges whole hours, rounding any started hour up.
func price(hourly float64, start, end time.Time) float64 {
	hours := math.Ceil(end.Sub(start).Hours())
	if hours < 1 {
		hours = 1
	}
	return hours * hourly
}
