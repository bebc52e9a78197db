package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jetbook/jetbook/internal/catalog"
)

func newTestService(t *testing.T) (*Service, catalog.JetRepository) {
	t.Helper()
	jets := catalog.NewMemoryJetRepository()
	svc := NewService(NewMemoryRepository(), jetSource{jets}, nil)
	return svc, jets
}

// jetSource adapts the jet repository to the service's collaborator interface.
type jetSource struct {
	jets catalog.JetRepository
}

func (s jetSource) GetJet(ctx context.Context, id string) (catalog.Jet, error) {
	return s.jets.Get(ctx, id)
}

func seedJet(t *testing.T, jets catalog.JetRepository, jet catalog.Jet) catalog.Jet {
	t.Helper()
	if jet.ID == "" {
		jet.ID = "jet-1"
	}
	if jet.Status == "" {
		jet.Status = catalog.StatusAvailable
	}
	require.NoError(t, jets.Create(context.Background(), jet))
	return jet
}

func validInput(jetID string) CreateInput {
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	return CreateInput{
		UserID:      "u-1",
		JetID:       jetID,
		Origin:      "Geneva",
		Destination: "Nice",
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
		Passengers:  2,
	}
}

func TestCreatePricesWholeHours(t *testing.T) {
	svc, jets := newTestService(t)
	jet := seedJet(t, jets, catalog.Jet{PricePerHour: 5000, MaxPassengers: 8})

	cases := []struct {
		name     string
		duration time.Duration
		want     float64
	}{
		{"exact hours", 2 * time.Hour, 10000},
		{"started hour rounds up", 90 * time.Minute, 10000},
		{"sub-hour charged as one", 20 * time.Minute, 5000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput(jet.ID)
			input.EndTime = input.StartTime.Add(tc.duration)
			b, err := svc.Create(context.Background(), input)
			require.NoError(t, err)
			require.Equal(t, tc.want, b.TotalPrice)
			require.Equal(t, StatusPending, b.Status)
		})
	}
}

func TestCreateRejectsUnavailableJet(t *testing.T) {
	svc, jets := newTestService(t)
	jet := seedJet(t, jets, catalog.Jet{ID: "jet-m", Status: catalog.StatusMaintenance, PricePerHour: 5000, MaxPassengers: 8})

	_, err := svc.Create(context.Background(), validInput(jet.ID))
	require.ErrorIs(t, err, ErrJetUnavailable)
}

func TestCreateRejectsOverCapacity(t *testing.T) {
	svc, jets := newTestService(t)
	jet := seedJet(t, jets, catalog.Jet{PricePerHour: 5000, MaxPassengers: 4})

	input := validInput(jet.ID)
	input.Passengers = 5
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
}

func TestCreateRejectsBadSchedule(t *testing.T) {
	svc, jets := newTestService(t)
	jet := seedJet(t, jets, catalog.Jet{PricePerHour: 5000, MaxPassengers: 8})

	input := validInput(jet.ID)
	input.EndTime = input.StartTime
	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, jets := newTestService(t)
	jet := seedJet(t, jets, catalog.Jet{PricePerHour: 5000, MaxPassengers: 8})

	b, err := svc.Create(context.Background(), validInput(jet.ID))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), b.ID, "u-1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), b.ID, "u-2")
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestCancelSemantics(t *testing.T) {
	svc, jets := newTestService(t)
	jet := seedJet(t, jets, catalog.Jet{PricePerHour: 5000, MaxPassengers: 8})

	b, err := svc.Create(context.Background(), validInput(jet.ID))
	require.NoError(t, err)

	// Another user cannot cancel it.
	_, err = svc.Cancel(context.Background(), b.ID, "u-2", false)
	require.ErrorIs(t, err, ErrNotOwner)

	// The owner can, once.
	cancelled, err := svc.Cancel(context.Background(), b.ID, "u-1", true)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, cancelled.Status)

	// A cancelled booking stays cancelled, even for admins.
	_, err = svc.Cancel(context.Background(), b.ID, "u-1", true)
	require.ErrorIs(t, err, ErrNotCancellable)
}

func TestAdminCancelBypassesOwnership(t *testing.T) {
	svc, jets := newTestService(t)
	jet := seedJet(t, jets, catalog.Jet{PricePerHour: 5000, MaxPassengers: 8})

	b, err := svc.Create(context.Background(), validInput(jet.ID))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), b.ID, "someone-else", true)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, cancelled.Status)
}

func TestAdminUpdateReprices(t *testing.T) {
	svc, jets := newTestService(t)
	jet := seedJet(t, jets, catalog.Jet{PricePerHour: 5000, MaxPassengers: 8})

	b, err := svc.Create(context.Background(), validInput(jet.ID))
	require.NoError(t, err)
	require.Equal(t, float64(10000), b.TotalPrice)

	update := b
	update.EndTime = b.StartTime.Add(4 * time.Hour)
	updated, err := svc.AdminUpdate(context.Background(), update)
	require.NoError(t, err)
	require.Equal(t, float64(20000), updated.TotalPrice)
	require.Equal(t, b.UserID, updated.UserID)
	require.Equal(t, b.JetID, updated.JetID)
}
