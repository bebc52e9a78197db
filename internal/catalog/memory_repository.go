package catalog

import (
	"context"
	"sort"
	"sync"
)

type memoryJetRepository struct {
	mu   sync.RWMutex
	jets map[string]Jet
}

// NewMemoryJetRepository builds an in-memory jet store for testing.
func NewMemoryJetRepository() JetRepository {
	return &memoryJetRepository{jets: make(map[string]Jet)}
}

func (r *memoryJetRepository) Create(_ context.Context, j Jet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jets[j.ID] = j
	return nil
}

func (r *memoryJetRepository) Get(_ context.Context, id string) (Jet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jets[id]
	if !ok {
		return Jet{}, ErrNotFound
	}
	return j, nil
}

func (r *memoryJetRepository) List(_ context.Context) ([]Jet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	jets := make([]Jet, 0, len(r.jets))
	for _, j := range r.jets {
		jets = append(jets, j)
	}
	sort.Slice(jets, func(i, k int) bool { return jets[i].Name < jets[k].Name })
	return jets, nil
}

func (r *memoryJetRepository) Search(ctx context.Context, f SearchFilter) ([]Jet, error) {
	all, _ := r.List(ctx)
	var jets []Jet
	for _, j := range all {
		if j.Status != StatusAvailable {
			continue
		}
		if len(f.CategoryIDs) > 0 && !containsString(f.CategoryIDs, j.CategoryID) {
			continue
		}
		if f.MinPrice > 0 && j.PricePerHour < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && j.PricePerHour > f.MaxPrice {
			continue
		}
		if f.MinPassengers > 0 && j.MaxPassengers < f.MinPassengers {
			continue
		}
		if f.MinRangeNM > 0 && j.RangeNM < f.MinRangeNM {
			continue
		}
		jets = append(jets, j)
	}
	return jets, nil
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func (r *memoryJetRepository) Update(_ context.Context, j Jet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jets[j.ID]; !ok {
		return ErrNotFound
	}
	r.jets[j.ID] = j
	return nil
}

func (r *memoryJetRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jets[id]; !ok {
		return ErrNotFound
	}
	delete(r.jets, id)
	return nil
}

type memoryCategoryRepository struct {
	mu   sync.RWMutex
	cats map[string]Category
}

// NewMemoryCategoryRepository builds an in-memory category store for testing.
func NewMemoryCategoryRepository() CategoryRepository {
	return &memoryCategoryRepository{cats: make(map[string]Category)}
}

func (r *memoryCategoryRepository) Create(_ context.Context, c Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cats[c.ID] = c
	return nil
}

func (r *memoryCategoryRepository) Get(_ context.Context, id string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cats[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

func (r *memoryCategoryRepository) List(_ context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cats := make([]Category, 0, len(r.cats))
	for _, c := range r.cats {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, k int) bool { return cats[i].Name < cats[k].Name })
	return cats, nil
}

func (r *memoryCategoryRepository) Update(_ context.Context, c Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cats[c.ID]; !ok {
		return ErrNotFound
	}
	r.cats[c.ID] = c
	return nil
}

func (r *memoryCategoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cats[id]; !ok {
		return ErrNotFound
	}
	delete(r.cats, id)
	return nil
}
