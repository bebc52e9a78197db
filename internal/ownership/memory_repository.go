package ownership

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	shares map[string]Share
}

// NewMemoryRepository builds an in-memory share store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{shares: make(map[string]Share)}
}

func (r *memoryRepository) Create(_ context.Context, s Share) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shares[s.ID] = s
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Share, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.shares[id]
	if !ok {
		return Share{}, ErrNotFound
	}
	return s, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Share, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Share
	for _, s := range r.shares {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sortByPurchaseDate(out)
	return out, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Share, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Share, 0, len(r.shares))
	for _, s := range r.shares {
		out = append(out, s)
	}
	sortByPurchaseDate(out)
	return out, nil
}

func (r *memoryRepository) ActiveFractionForJet(_ context.Context, jetID string) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for _, s := range r.shares {
		if s.JetID == jetID && s.Status == StatusActive {
			total += s.ShareFraction
		}
	}
	return total, nil
}

func (r *memoryRepository) Update(_ context.Context, s Share) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shares[s.ID]; !ok {
		return ErrNotFound
	}
	r.shares[s.ID] = s
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shares[id]; !ok {
		return ErrNotFound
	}
	delete(r.shares, id)
	return nil
}

func sortByPurchaseDate(shares []Share) {
	sort.Slice(shares, func(i, k int) bool {
		return shares[i].PurchaseDate.After(shares[k].PurchaseDate)
	})
}
