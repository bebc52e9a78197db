package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no contact record matches.
var ErrNotFound = errors.New("contact info not found")

// Info is a public contact channel (phone, email, address).
type Info struct {
	ID        string
	Type      string
	Value     string
	Label     string
	IsPrimary bool
	CreatedAt time.Time
}

// Repository persists contact records.
type Repository interface {
	Create(ctx context.Context, info Info) error
	FindPrimary(ctx context.Context) (Info, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed contact repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a contact record.
func (r *PostgresRepository) Create(ctx context.Context, info Info) error {
	infoID, err := uuid.Parse(info.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO contact_info (id, type, value, label, is_primary, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$6)`, infoID, info.Type, info.Value, info.Label, info.IsPrimary, info.CreatedAt.UTC())
	return err
}

// FindPrimary returns the primary contact record.
func (r *PostgresRepository) FindPrimary(ctx context.Context) (Info, error) {
	row := r.db.QueryRow(ctx, `SELECT id, type, value, label, is_primary, created_at FROM contact_info WHERE is_primary ORDER BY created_at LIMIT 1`)
	var (
		id        uuid.UUID
		createdAt time.Time
		info      Info
	)
	if err := row.Scan(&id, &info.Type, &info.Value, &info.Label, &info.IsPrimary, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Info{}, ErrNotFound
		}
		return Info{}, err
	}
	info.ID = id.String()
	info.CreatedAt = createdAt.UTC()
	return info, nil
}

type memoryRepository struct {
	mu      sync.RWMutex
	records map[string]Info
}

// NewMemoryRepository builds an in-memory contact store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{records: make(map[string]Info)}
}

func (r *memoryRepository) Create(_ context.Context, info Info) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[info.ID] = info
	return nil
}

func (r *memoryRepository) FindPrimary(_ context.Context) (Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, info := range r.records {
		if info.IsPrimary {
			return info, nil
		}
	}
	return Info{}, ErrNotFound
}
