package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	jetListCacheKey = "catalog:jets:v1"
	jetListCacheTTL = 5 * time.Minute
)

// SearchQuery is the user-facing search input; Category is a plan name
// fragment resolved to category ids before hitting the repository.
type SearchQuery struct {
	Category      string
	MinPrice      float64
	MaxPrice      float64
	MinPassengers int
	MinRangeNM    int
}

// Service exposes fleet browsing and administration. The full jet listing is
// cached in Redis; mutations invalidate the cache.
type Service struct {
	jets       JetRepository
	categories CategoryRepository
	cache      *redis.Client
}

// NewService builds a catalog service. cache may be nil, disabling caching.
func NewService(jets JetRepository, categories CategoryRepository, cache *redis.Client) *Service {
	return &Service{jets: jets, categories: categories, cache: cache}
}

// ListJets returns the whole fleet, served from cache when possible.
func (s *Service) ListJets(ctx context.Context) ([]Jet, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, jetListCacheKey).Result(); err == nil {
			var jets []Jet
			if json.Unmarshal([]byte(raw), &jets) == nil {
				return jets, nil
			}
		}
	}

	jets, err := s.jets.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(jets); err == nil {
			s.cache.Set(ctx, jetListCacheKey, payload, jetListCacheTTL)
		}
	}
	return jets, nil
}

// GetJet fetches a single jet.
func (s *Service) GetJet(ctx context.Context, id string) (Jet, error) {
	return s.jets.Get(ctx, id)
}

// SearchJets resolves the category name and filters available jets.
func (s *Service) SearchJets(ctx context.Context, q SearchQuery) ([]Jet, error) {
	filter := SearchFilter{
		MinPrice:      q.MinPrice,
		MaxPrice:      q.MaxPrice,
		MinPassengers: q.MinPassengers,
		MinRangeNM:    q.MinRangeNM,
	}

	if q.Category != "" {
		cats, err := s.categories.List(ctx)
		if err != nil {
			return nil, err
		}
		needle := strings.ToLower(q.Category)
		for _, c := range cats {
			if strings.Contains(strings.ToLower(c.Name), needle) {
				filter.CategoryIDs = append(filter.CategoryIDs, c.ID)
			}
		}
		if len(filter.CategoryIDs) == 0 {
			return []Jet{}, nil
		}
	}

	return s.jets.Search(ctx, filter)
}

// CreateJet registers a new aircraft in the fleet.
func (s *Service) CreateJet(ctx context.Context, j Jet) (Jet, error) {
	if j.Name == "" || j.Manufacturer == "" {
		return Jet{}, errors.New("name and manufacturer are required")
	}
	if j.RangeNM <= 0 {
		return Jet{}, errors.New("range_nm must be positive")
	}
	j.ID = uuid.New().String()
	if j.Status == "" {
		j.Status = StatusAvailable
	}
	j.CreatedAt = time.Now().UTC()
	j.UpdatedAt = j.CreatedAt
	if err := s.jets.Create(ctx, j); err != nil {
		return Jet{}, err
	}
	s.invalidate(ctx)
	return j, nil
}

// UpdateJet rewrites an existing jet.
func (s *Service) UpdateJet(ctx context.Context, j Jet) (Jet, error) {
	if err := s.jets.Update(ctx, j); err != nil {
		return Jet{}, err
	}
	s.invalidate(ctx)
	return s.jets.Get(ctx, j.ID)
}

// DeleteJet removes a jet from the fleet.
func (s *Service) DeleteJet(ctx context.Context, id string) error {
	if err := s.jets.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ListCategories returns all jet categories.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.categories.List(ctx)
}

// GetCategory fetches one category.
func (s *Service) GetCategory(ctx context.Context, id string) (Category, error) {
	return s.categories.Get(ctx, id)
}

// CreateCategory adds a jet category.
func (s *Service) CreateCategory(ctx context.Context, c Category) (Category, error) {
	if c.Name == "" {
		return Category{}, errors.New("name is required")
	}
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	if err := s.categories.Create(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

// UpdateCategory rewrites a category.
func (s *Service) UpdateCategory(ctx context.Context, c Category) (Category, error) {
	if err := s.categories.Update(ctx, c); err != nil {
		return Category{}, err
	}
	return s.categories.Get(ctx, c.ID)
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Del(ctx, jetListCacheKey)
	}
}
