package ownership

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no share matches the lookup.
var ErrNotFound = errors.New("ownership share not found")

// Repository persists ownership shares.
type Repository interface {
	Create(ctx context.Context, s Share) error
	Get(ctx context.Context, id string) (Share, error)
	ListByUser(ctx context.Context, userID string) ([]Share, error)
	List(ctx context.Context) ([]Share, error)
	ActiveFractionForJet(ctx context.Context, jetID string) (float64, error)
	Update(ctx context.Context, s Share) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed share repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const shareColumns = `id, user_id, jet_id, share_fraction, purchase_date, purchase_price::float8, status, created_at, updated_at`

// Create inserts a share.
func (r *PostgresRepository) Create(ctx context.Context, s Share) error {
	shareID, err := uuid.Parse(s.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(s.UserID)
	if err != nil {
		return err
	}
	jetID, err := uuid.Parse(s.JetID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO ownership_shares (id, user_id, jet_id, share_fraction, purchase_date, purchase_price, status, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)`,
		shareID, userID, jetID, s.ShareFraction, s.PurchaseDate.UTC(), s.PurchasePrice, s.Status, s.CreatedAt.UTC())
	return err
}

// Get fetches a share by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Share, error) {
	shareID, err := uuid.Parse(id)
	if err != nil {
		return Share{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+shareColumns+` FROM ownership_shares WHERE id = $1`, shareID)
	return scanShare(row)
}

// ListByUser returns a user's shares.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Share, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	rows, err := r.db.Query(ctx, `SELECT `+shareColumns+` FROM ownership_shares WHERE user_id = $1 ORDER BY purchase_date DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectShares(rows)
}

// List returns every share.
func (r *PostgresRepository) List(ctx context.Context) ([]Share, error) {
	rows, err := r.db.Query(ctx, `SELECT `+shareColumns+` FROM ownership_shares ORDER BY purchase_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectShares(rows)
}

// ActiveFractionForJet sums the active fractions already sold for a jet.
func (r *PostgresRepository) ActiveFractionForJet(ctx context.Context, jetID string) (float64, error) {
	jid, err := uuid.Parse(jetID)
	if err != nil {
		return 0, ErrNotFound
	}
	var total float64
	row := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(share_fraction), 0) FROM ownership_shares WHERE jet_id = $1 AND status = 'active'`, jid)
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Update rewrites a share row.
func (r *PostgresRepository) Update(ctx context.Context, s Share) error {
	shareID, err := uuid.Parse(s.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE ownership_shares SET share_fraction=$1, purchase_date=$2, purchase_price=$3, status=$4, updated_at=now() WHERE id=$5`,
		s.ShareFraction, s.PurchaseDate.UTC(), s.PurchasePrice, s.Status, shareID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a share.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	shareID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM ownership_shares WHERE id = $1`, shareID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShare(row pgx.Row) (Share, error) {
	var (
		id        uuid.UUID
		userID    uuid.UUID
		jetID     uuid.UUID
		purchased time.Time
		createdAt time.Time
		updatedAt time.Time
		s         Share
	)
	if err := row.Scan(&id, &userID, &jetID, &s.ShareFraction, &purchased, &s.PurchasePrice, &s.Status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Share{}, ErrNotFound
		}
		return Share{}, err
	}
	s.ID = id.String()
	s.UserID = userID.String()
	s.JetID = jetID.String()
	s.PurchaseDate = purchased.UTC()
	s.CreatedAt = createdAt.UTC()
	s.UpdatedAt = updatedAt.UTC()
	return s, nil
}

func collectShares(rows pgx.Rows) ([]Share, error) {
	var shares []Share
	for rows.Next() {
		s, err := scanShare(rows)
		if err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}
