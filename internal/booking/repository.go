package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booking not found")

// Repository persists bookings.
type Repository interface {
	Create(ctx context.Context, b Booking) error
	Get(ctx context.Context, id string) (Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	List(ctx context.Context) ([]Booking, error)
	Update(ctx context.Context, b Booking) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed booking repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bookingColumns = `id, user_id, jet_id, origin, destination, start_time, end_time, passengers,
    special_requests, status, total_price::float8, created_at, updated_at`

// Create inserts a booking.
func (r *PostgresRepository) Create(ctx context.Context, b Booking) error {
	bookingID, err := uuid.Parse(b.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(b.UserID)
	if err != nil {
		return err
	}
	jetID, err := uuid.Parse(b.JetID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO bookings (id, user_id, jet_id, origin, destination, start_time, end_time,
        passengers, special_requests, status, total_price, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12)`,
		bookingID, userID, jetID, b.Origin, b.Destination, b.StartTime.UTC(), b.EndTime.UTC(),
		b.Passengers, b.SpecialRequests, b.Status, b.TotalPrice, b.CreatedAt.UTC())
	return err
}

// Get fetches a booking by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Booking, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return Booking{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID)
	return scanBooking(row)
}

// ListByUser returns a user's bookings, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// List returns every booking, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// Update rewrites the mutable fields of a booking.
func (r *PostgresRepository) Update(ctx context.Context, b Booking) error {
	bookingID, err := uuid.Parse(b.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET origin=$1, destination=$2, start_time=$3, end_time=$4,
        passengers=$5, special_requests=$6, status=$7, total_price=$8, updated_at=now() WHERE id=$9`,
		b.Origin, b.Destination, b.StartTime.UTC(), b.EndTime.UTC(), b.Passengers, b.SpecialRequests,
		b.Status, b.TotalPrice, bookingID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a booking.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (Booking, error) {
	var (
		id        uuid.UUID
		userID    uuid.UUID
		jetID     uuid.UUID
		start     time.Time
		end       time.Time
		createdAt time.Time
		updatedAt time.Time
		b         Booking
	)
	if err := row.Scan(&id, &userID, &jetID, &b.Origin, &b.Destination, &start, &end,
		&b.Passengers, &b.SpecialRequests, &b.Status, &b.TotalPrice, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, err
	}
	b.ID = id.String()
	b.UserID = userID.String()
	b.JetID = jetID.String()
	b.StartTime = start.UTC()
	b.EndTime = end.UTC()
	b.CreatedAt = createdAt.UTC()
	b.UpdatedAt = updatedAt.UTC()
	return b, nil
}

func collectBookings(rows pgx.Rows) ([]Booking, error) {
	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
