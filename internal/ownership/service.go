package ownership

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jetbook/jetbook/internal/catalog"
)

// Purchase failures surfaced to handlers.
var (
	ErrInvalidFraction = errors.New("share_fraction must be between 0 and 1")
	ErrOversubscribed  = errors.New("requested fraction exceeds remaining availability")
	ErrNotOwner        = errors.New("share belongs to another user")
)

// JetSource is the catalog collaborator used to validate the jet exists.
type JetSource interface {
	GetJet(ctx context.Context, id string) (catalog.Jet, error)
}

// Service manages fractional ownership shares.
type Service struct {
	repo Repository
	jets JetSource
}

// NewService builds an ownership service.
func NewService(repo Repository, jets JetSource) *Service {
	return &Service{repo: repo, jets: jets}
}

// Purchase records a new active share, rejecting oversubscription: the sum of
// active fractions for a jet can never exceed 1.0.
func (s *Service) Purchase(ctx context.Context, input PurchaseInput) (Share, error) {
	if input.ShareFraction <= 0 || input.ShareFraction > 1 {
		return Share{}, ErrInvalidFraction
	}
	if input.PurchasePrice <= 0 {
		return Share{}, errors.New("purchase_price must be positive")
	}

	if _, err := s.jets.GetJet(ctx, input.JetID); err != nil {
		return Share{}, err
	}

	sold, err := s.repo.ActiveFractionForJet(ctx, input.JetID)
	if err != nil {
		return Share{}, err
	}
	if sold+input.ShareFraction > 1.0 {
		return Share{}, ErrOversubscribed
	}

	now := time.Now().UTC()
	share := Share{
		ID:            uuid.New().String(),
		UserID:        input.UserID,
		JetID:         input.JetID,
		ShareFraction: input.ShareFraction,
		PurchaseDate:  now,
		PurchasePrice: input.PurchasePrice,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, share); err != nil {
		return Share{}, err
	}
	return share, nil
}

// Get returns a share only if it belongs to the requesting user.
func (s *Service) Get(ctx context.Context, id, userID string) (Share, error) {
	share, err := s.repo.Get(ctx, id)
	if err != nil {
		return Share{}, err
	}
	if share.UserID != userID {
		return Share{}, ErrNotOwner
	}
	return share, nil
}

// ListForUser returns the user's shares.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Share, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every share (admin).
func (s *Service) ListAll(ctx context.Context) ([]Share, error) {
	return s.repo.List(ctx)
}

// AdminUpdate rewrites a share (admin). The oversubscription invariant is
// re-checked when the fraction grows.
func (s *Service) AdminUpdate(ctx context.Context, share Share) (Share, error) {
	current, err := s.repo.Get(ctx, share.ID)
	if err != nil {
		return Share{}, err
	}
	if share.ShareFraction <= 0 || share.ShareFraction > 1 {
		return Share{}, ErrInvalidFraction
	}
	if share.ShareFraction > current.ShareFraction && share.Status == StatusActive {
		sold, err := s.repo.ActiveFractionForJet(ctx, current.JetID)
		if err != nil {
			return Share{}, err
		}
		if sold-current.ShareFraction+share.ShareFraction > 1.0 {
			return Share{}, ErrOversubscribed
		}
	}
	share.UserID = current.UserID
	share.JetID = current.JetID
	share.CreatedAt = current.CreatedAt
	share.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, share); err != nil {
		return Share{}, err
	}
	return share, nil
}

// AdminDelete removes a share (admin).
func (s *Service) AdminDelete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
