package membership

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jetbook/jetbook/internal/notification"
)

// MemberUpdater is the slice of the user store the service needs to keep the
// user row's membership pointer in sync.
type MemberUpdater interface {
	SetMembership(ctx context.Context, id, membershipID string) error
}

// Service manages plans and the enrollment lifecycle.
type Service struct {
	plans       PlanRepository
	enrollments EnrollmentRepository
	members     MemberUpdater
	notifier    notification.Notifier
}

// NewService builds a membership service.
func NewService(plans PlanRepository, enrollments EnrollmentRepository, members MemberUpdater, notifier notification.Notifier) *Service {
	return &Service{plans: plans, enrollments: enrollments, members: members, notifier: notifier}
}

// ListPlans returns all plans.
func (s *Service) ListPlans(ctx context.Context) ([]Plan, error) {
	return s.plans.List(ctx)
}

// GetPlan returns one plan.
func (s *Service) GetPlan(ctx context.Context, id string) (Plan, error) {
	return s.plans.Get(ctx, id)
}

// Enroll signs the user up for a plan. An existing active enrollment is
// replaced: it is marked expired and a fresh one starts now.
func (s *Service) Enroll(ctx context.Context, userID, planID string) (Enrollment, error) {
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return Enrollment{}, err
	}
	if plan.DurationMonths <= 0 {
		return Enrollment{}, errors.New("plan has no valid duration")
	}

	if current, err := s.enrollments.FindActiveByUser(ctx, userID); err == nil {
		current.Status = StatusExpired
		current.UpdatedAt = time.Now().UTC()
		if err := s.enrollments.Update(ctx, current); err != nil {
			return Enrollment{}, err
		}
	} else if !errors.Is(err, ErrNoEnrollment) {
		return Enrollment{}, err
	}

	now := time.Now().UTC()
	e := Enrollment{
		ID:           uuid.New().String(),
		UserID:       userID,
		MembershipID: plan.ID,
		StartDate:    now,
		EndDate:      now.AddDate(0, plan.DurationMonths, 0),
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.enrollments.Create(ctx, e); err != nil {
		return Enrollment{}, err
	}

	if err := s.members.SetMembership(ctx, userID, plan.ID); err != nil {
		return Enrollment{}, err
	}

	if s.notifier != nil {
		s.notifier.Event(ctx, "membership.enrolled", map[string]any{
			"user_id":       userID,
			"membership_id": plan.ID,
			"plan":          plan.Name,
			"end_date":      e.EndDate,
		})
	}
	return e, nil
}

// CurrentPlan returns the user's active plan. An enrollment past its end date
// is lazily expired on read.
func (s *Service) CurrentPlan(ctx context.Context, userID string) (Plan, Enrollment, error) {
	e, err := s.enrollments.FindActiveByUser(ctx, userID)
	if err != nil {
		return Plan{}, Enrollment{}, err
	}

	if time.Now().UTC().After(e.EndDate) {
		e.Status = StatusExpired
		e.UpdatedAt = time.Now().UTC()
		if err := s.enrollments.Update(ctx, e); err != nil {
			return Plan{}, Enrollment{}, err
		}
		if err := s.members.SetMembership(ctx, userID, ""); err != nil {
			return Plan{}, Enrollment{}, err
		}
		return Plan{}, Enrollment{}, ErrNoEnrollment
	}

	plan, err := s.plans.Get(ctx, e.MembershipID)
	if err != nil {
		return Plan{}, Enrollment{}, err
	}
	return plan, e, nil
}

// CreatePlan adds a plan (admin).
func (s *Service) CreatePlan(ctx context.Context, p Plan) (Plan, error) {
	if p.Name == "" {
		return Plan{}, errors.New("name is required")
	}
	if p.DurationMonths <= 0 {
		return Plan{}, errors.New("duration_months must be positive")
	}
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	if err := s.plans.Create(ctx, p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// UpdatePlan rewrites a plan (admin).
func (s *Service) UpdatePlan(ctx context.Context, p Plan) (Plan, error) {
	if err := s.plans.Update(ctx, p); err != nil {
		return Plan{}, err
	}
	return s.plans.Get(ctx, p.ID)
}

// DeletePlan removes a plan (admin).
func (s *Service) DeletePlan(ctx context.Context, id string) error {
	return s.plans.Delete(ctx, id)
}
