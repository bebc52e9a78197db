package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresJetRepository implements JetRepository using PostgreSQL.
type PostgresJetRepository struct {
	db *pgxpool.Pool
}

// NewPostgresJetRepository builds a Postgres-backed jet repository.
func NewPostgresJetRepository(db *pgxpool.Pool) *PostgresJetRepository {
	return &PostgresJetRepository{db: db}
}

const jetColumns = `id, name, manufacturer, COALESCE(category_id::text, ''), year, max_speed_mph, max_passengers,
    price_per_hour::float8, cabin_height_ft::float8, cabin_width_ft::float8, cabin_length_ft::float8,
    baggage_capacity_cuft, takeoff_distance_ft, landing_distance_ft, fuel_capacity_lbs,
    image_url, gallery_urls, features, amenities, status, range_nm, created_at, updated_at`

// Create inserts a jet.
func (r *PostgresJetRepository) Create(ctx context.Context, j Jet) error {
	jetID, err := uuid.Parse(j.ID)
	if err != nil {
		return err
	}
	var categoryID any
	if j.CategoryID != "" {
		cid, err := uuid.Parse(j.CategoryID)
		if err != nil {
			return err
		}
		categoryID = cid
	}
	_, err = r.db.Exec(ctx, `INSERT INTO jets (id, name, manufacturer, category_id, year, max_speed_mph, max_passengers,
        price_per_hour, cabin_height_ft, cabin_width_ft, cabin_length_ft, baggage_capacity_cuft,
        takeoff_distance_ft, landing_distance_ft, fuel_capacity_lbs, image_url, gallery_urls, features, amenities,
        status, range_nm, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$22)`,
		jetID, j.Name, j.Manufacturer, categoryID, j.Year, j.MaxSpeedMPH, j.MaxPassengers,
		j.PricePerHour, j.CabinHeightFt, j.CabinWidthFt, j.CabinLengthFt, j.BaggageCapacityCuFt,
		j.TakeoffDistanceFt, j.LandingDistanceFt, j.FuelCapacityLbs, j.ImageURL, j.GalleryURLs, j.Features, j.Amenities,
		j.Status, j.RangeNM, j.CreatedAt.UTC())
	return err
}

// Get fetches a jet by id.
func (r *PostgresJetRepository) Get(ctx context.Context, id string) (Jet, error) {
	jetID, err := uuid.Parse(id)
	if err != nil {
		return Jet{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+jetColumns+` FROM jets WHERE id = $1`, jetID)
	return scanJet(row)
}

// List returns every jet ordered by name.
func (r *PostgresJetRepository) List(ctx context.Context) ([]Jet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jetColumns+` FROM jets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJets(rows)
}

// Search returns available jets matching the filter.
func (r *PostgresJetRepository) Search(ctx context.Context, f SearchFilter) ([]Jet, error) {
	query := `SELECT ` + jetColumns + ` FROM jets WHERE status = 'available'`
	args := []any{}

	if len(f.CategoryIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(f.CategoryIDs))
		for _, raw := range f.CategoryIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
		args = append(args, ids)
		query += fmt.Sprintf(` AND category_id = ANY($%d)`, len(args))
	}
	if f.MinPrice > 0 {
		args = append(args, f.MinPrice)
		query += fmt.Sprintf(` AND price_per_hour >= $%d`, len(args))
	}
	if f.MaxPrice > 0 {
		args = append(args, f.MaxPrice)
		query += fmt.Sprintf(` AND price_per_hour <= $%d`, len(args))
	}
	if f.MinPassengers > 0 {
		args = append(args, f.MinPassengers)
		query += fmt.Sprintf(` AND max_passengers >= $%d`, len(args))
	}
	if f.MinRangeNM > 0 {
		args = append(args, f.MinRangeNM)
		query += fmt.Sprintf(` AND range_nm >= $%d`, len(args))
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJets(rows)
}

// Update rewrites a jet row.
func (r *PostgresJetRepository) Update(ctx context.Context, j Jet) error {
	jetID, err := uuid.Parse(j.ID)
	if err != nil {
		return ErrNotFound
	}
	var categoryID any
	if j.CategoryID != "" {
		cid, err := uuid.Parse(j.CategoryID)
		if err != nil {
			return err
		}
		categoryID = cid
	}
	cmd, err := r.db.Exec(ctx, `UPDATE jets SET name=$1, manufacturer=$2, category_id=$3, year=$4, max_speed_mph=$5,
        max_passengers=$6, price_per_hour=$7, cabin_height_ft=$8, cabin_width_ft=$9, cabin_length_ft=$10,
        baggage_capacity_cuft=$11, takeoff_distance_ft=$12, landing_distance_ft=$13, fuel_capacity_lbs=$14,
        image_url=$15, gallery_urls=$16, features=$17, amenities=$18, status=$19, range_nm=$20, updated_at=now()
        WHERE id=$21`,
		j.Name, j.Manufacturer, categoryID, j.Year, j.MaxSpeedMPH, j.MaxPassengers, j.PricePerHour,
		j.CabinHeightFt, j.CabinWidthFt, j.CabinLengthFt, j.BaggageCapacityCuFt, j.TakeoffDistanceFt,
		j.LandingDistanceFt, j.FuelCapacityLbs, j.ImageURL, j.GalleryURLs, j.Features, j.Amenities,
		j.Status, j.RangeNM, jetID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a jet.
func (r *PostgresJetRepository) Delete(ctx context.Context, id string) error {
	jetID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM jets WHERE id = $1`, jetID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanJet(row pgx.Row) (Jet, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		j         Jet
	)
	if err := row.Scan(&id, &j.Name, &j.Manufacturer, &j.CategoryID, &j.Year, &j.MaxSpeedMPH, &j.MaxPassengers,
		&j.PricePerHour, &j.CabinHeightFt, &j.CabinWidthFt, &j.CabinLengthFt, &j.BaggageCapacityCuFt,
		&j.TakeoffDistanceFt, &j.LandingDistanceFt, &j.FuelCapacityLbs, &j.ImageURL, &j.GalleryURLs,
		&j.Features, &j.Amenities, &j.Status, &j.RangeNM, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Jet{}, ErrNotFound
		}
		return Jet{}, err
	}
	j.ID = id.String()
	j.CreatedAt = createdAt.UTC()
	j.UpdatedAt = updatedAt.UTC()
	return j, nil
}

func collectJets(rows pgx.Rows) ([]Jet, error) {
	var jets []Jet
	for rows.Next() {
		j, err := scanJet(rows)
		if err != nil {
			return nil, err
		}
		jets = append(jets, j)
	}
	return jets, rows.Err()
}

// PostgresCategoryRepository implements CategoryRepository using PostgreSQL.
type PostgresCategoryRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCategoryRepository builds a Postgres-backed category repository.
func NewPostgresCategoryRepository(db *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// Create inserts a category.
func (r *PostgresCategoryRepository) Create(ctx context.Context, c Category) error {
	catID, err := uuid.Parse(c.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO jet_categories (id, name, description, image_url, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)`, catID, c.Name, c.Description, c.ImageURL, c.CreatedAt.UTC())
	return err
}

// Get fetches a category by id.
func (r *PostgresCategoryRepository) Get(ctx context.Context, id string) (Category, error) {
	catID, err := uuid.Parse(id)
	if err != nil {
		return Category{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, description, image_url, created_at, updated_at FROM jet_categories WHERE id = $1`, catID)
	return scanCategory(row)
}

// List returns all categories ordered by name.
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, image_url, created_at, updated_at FROM jet_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Update rewrites a category row.
func (r *PostgresCategoryRepository) Update(ctx context.Context, c Category) error {
	catID, err := uuid.Parse(c.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE jet_categories SET name=$1, description=$2, image_url=$3, updated_at=now() WHERE id=$4`,
		c.Name, c.Description, c.ImageURL, catID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	catID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM jet_categories WHERE id = $1`, catID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (Category, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		c         Category
	)
	if err := row.Scan(&id, &c.Name, &c.Description, &c.ImageURL, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	c.ID = id.String()
	c.CreatedAt = createdAt.UTC()
	c.UpdatedAt = updatedAt.UTC()
	return c, nil
}
