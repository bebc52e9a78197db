package membership

import (
	"context"
	"sort"
	"sync"
)

type memoryPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewMemoryPlanRepository builds an in-memory plan store for testing.
func NewMemoryPlanRepository() PlanRepository {
	return &memoryPlanRepository{plans: make(map[string]Plan)}
}

func (r *memoryPlanRepository) Create(_ context.Context, p Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[p.ID] = p
	return nil
}

func (r *memoryPlanRepository) Get(_ context.Context, id string) (Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return p, nil
}

func (r *memoryPlanRepository) List(_ context.Context) ([]Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plans := make([]Plan, 0, len(r.plans))
	for _, p := range r.plans {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, k int) bool { return plans[i].Price < plans[k].Price })
	return plans, nil
}

func (r *memoryPlanRepository) Update(_ context.Context, p Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[p.ID]; !ok {
		return ErrPlanNotFound
	}
	r.plans[p.ID] = p
	return nil
}

func (r *memoryPlanRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

type memoryEnrollmentRepository struct {
	mu          sync.RWMutex
	enrollments map[string]Enrollment
}

// NewMemoryEnrollmentRepository builds an in-memory enrollment store for testing.
func NewMemoryEnrollmentRepository() EnrollmentRepository {
	return &memoryEnrollmentRepository{enrollments: make(map[string]Enrollment)}
}

func (r *memoryEnrollmentRepository) Create(_ context.Context, e Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enrollments[e.ID] = e
	return nil
}

func (r *memoryEnrollmentRepository) FindActiveByUser(_ context.Context, userID string) (Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.enrollments {
		if e.UserID == userID && e.Status == StatusActive {
			return e, nil
		}
	}
	return Enrollment{}, ErrNoEnrollment
}

func (r *memoryEnrollmentRepository) Update(_ context.Context, e Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enrollments[e.ID]; !ok {
		return ErrEnrollNotFound
	}
	r.enrollments[e.ID] = e
	return nil
}
