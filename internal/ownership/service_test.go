package ownership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetbook/jetbook/internal/catalog"
)

type jetSource struct {
	jets catalog.JetRepository
}

func (s jetSource) GetJet(ctx context.Context, id string) (catalog.Jet, error) {
	return s.jets.Get(ctx, id)
}

func newTestService(t *testing.T) (*Service, Repository) {
	t.Helper()
	jets := catalog.NewMemoryJetRepository()
	require.NoError(t, jets.Create(context.Background(), catalog.Jet{ID: "jet-1", Status: catalog.StatusAvailable}))
	repo := NewMemoryRepository()
	return NewService(repo, jetSource{jets}), repo
}

func TestPurchaseValidatesFraction(t *testing.T) {
	svc, _ := newTestService(t)

	for _, fraction := range []float64{0, -0.25, 1.01} {
		_, err := svc.Purchase(context.Background(), PurchaseInput{
			UserID: "u-1", JetID: "jet-1", ShareFraction: fraction, PurchasePrice: 100000,
		})
		require.ErrorIs(t, err, ErrInvalidFraction, "fraction %v", fraction)
	}
}

func TestPurchaseRejectsUnknownJet(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Purchase(context.Background(), PurchaseInput{
		UserID: "u-1", JetID: "jet-ghost", ShareFraction: 0.5, PurchasePrice: 100000,
	})
	require.Error(t, err)
}

func TestPurchaseRejectsOversubscription(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Purchase(context.Background(), PurchaseInput{
		UserID: "u-1", JetID: "jet-1", ShareFraction: 0.6, PurchasePrice: 100000,
	})
	require.NoError(t, err)

	// 0.6 + 0.5 > 1.0
	_, err = svc.Purchase(context.Background(), PurchaseInput{
		UserID: "u-2", JetID: "jet-1", ShareFraction: 0.5, PurchasePrice: 100000,
	})
	require.ErrorIs(t, err, ErrOversubscribed)

	// Exactly filling the remainder is allowed.
	_, err = svc.Purchase(context.Background(), PurchaseInput{
		UserID: "u-2", JetID: "jet-1", ShareFraction: 0.4, PurchasePrice: 100000,
	})
	require.NoError(t, err)
}

func TestSoldSharesDoNotCount(t *testing.T) {
	svc, repo := newTestService(t)

	share, err := svc.Purchase(context.Background(), PurchaseInput{
		UserID: "u-1", JetID: "jet-1", ShareFraction: 0.8, PurchasePrice: 100000,
	})
	require.NoError(t, err)

	share.Status = StatusSold
	require.NoError(t, repo.Update(context.Background(), share))

	_, err = svc.Purchase(context.Background(), PurchaseInput{
		UserID: "u-2", JetID: "jet-1", ShareFraction: 0.9, PurchasePrice: 100000,
	})
	require.NoError(t, err)
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService(t)

	share, err := svc.Purchase(context.Background(), PurchaseInput{
		UserID: "u-1", JetID: "jet-1", ShareFraction: 0.5, PurchasePrice: 100000,
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), share.ID, "u-1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), share.ID, "u-2")
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestAdminUpdateRechecksInvariant(t *testing.T) {
	svc, _ := newTestService(t)

	a, err := svc.Purchase(context.Background(), PurchaseInput{
		UserID: "u-1", JetID: "jet-1", ShareFraction: 0.5, PurchasePrice: 100000,
	})
	require.NoError(t, err)
	_, err = svc.Purchase(context.Background(), PurchaseInput{
		UserID: "u-2", JetID: "jet-1", ShareFraction: 0.4, PurchasePrice: 100000,
	})
	require.NoError(t, err)

	// Growing u-1's share to 0.7 would push the total to 1.1.
	grown := a
	grown.ShareFraction = 0.7
	_, err = svc.AdminUpdate(context.Background(), grown)
	require.ErrorIs(t, err, ErrOversubscribed)

	// Growing it to 0.6 fills the jet exactly.
	grown.ShareFraction = 0.6
	updated, err := svc.AdminUpdate(context.Background(), grown)
	require.NoError(t, err)
	require.Equal(t, 0.6, updated.ShareFraction)
}
