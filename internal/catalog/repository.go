package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a jet or category lookup misses.
var ErrNotFound = errors.New("not found")

// JetRepository persists jets.
type JetRepository interface {
	Create(ctx context.Context, j Jet) error
	Get(ctx context.Context, id string) (Jet, error)
	List(ctx context.Context) ([]Jet, error)
	Search(ctx context.Context, f SearchFilter) ([]Jet, error)
	Update(ctx context.Context, j Jet) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository persists jet categories.
type CategoryRepository interface {
	Create(ctx context.Context, c Category) error
	Get(ctx context.Context, id string) (Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, c Category) error
	Delete(ctx context.Context, id string) error
}
