package membership

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lookup misses.
var (
	ErrPlanNotFound   = errors.New("membership plan not found")
	ErrNoEnrollment   = errors.New("no active enrollment")
	ErrEnrollNotFound = errors.New("enrollment not found")
)

// PlanRepository persists membership plans.
type PlanRepository interface {
	Create(ctx context.Context, p Plan) error
	Get(ctx context.Context, id string) (Plan, error)
	List(ctx context.Context) ([]Plan, error)
	Update(ctx context.Context, p Plan) error
	Delete(ctx context.Context, id string) error
}

// EnrollmentRepository persists user enrollments.
type EnrollmentRepository interface {
	Create(ctx context.Context, e Enrollment) error
	FindActiveByUser(ctx context.Context, userID string) (Enrollment, error)
	Update(ctx context.Context, e Enrollment) error
}

// PostgresPlanRepository implements PlanRepository using PostgreSQL.
type PostgresPlanRepository struct {
	db *pgxpool.Pool
}

// NewPostgresPlanRepository builds a Postgres-backed plan repository.
func NewPostgresPlanRepository(db *pgxpool.Pool) *PostgresPlanRepository {
	return &PostgresPlanRepository{db: db}
}

const planColumns = `id, name, description, price::float8, duration_months, benefits, image_url, created_at, updated_at`

// Create inserts a plan.
func (r *PostgresPlanRepository) Create(ctx context.Context, p Plan) error {
	planID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO memberships (id, name, description, price, duration_months, benefits, image_url, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)`,
		planID, p.Name, p.Description, p.Price, p.DurationMonths, p.Benefits, p.ImageURL, p.CreatedAt.UTC())
	return err
}

// Get fetches a plan by id.
func (r *PostgresPlanRepository) Get(ctx context.Context, id string) (Plan, error) {
	planID, err := uuid.Parse(id)
	if err != nil {
		return Plan{}, ErrPlanNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+planColumns+` FROM memberships WHERE id = $1`, planID)
	return scanPlan(row)
}

// List returns all plans ordered by price.
func (r *PostgresPlanRepository) List(ctx context.Context) ([]Plan, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planColumns+` FROM memberships ORDER BY price`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Update rewrites a plan row.
func (r *PostgresPlanRepository) Update(ctx context.Context, p Plan) error {
	planID, err := uuid.Parse(p.ID)
	if err != nil {
		return ErrPlanNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE memberships SET name=$1, description=$2, price=$3, duration_months=$4,
        benefits=$5, image_url=$6, updated_at=now() WHERE id=$7`,
		p.Name, p.Description, p.Price, p.DurationMonths, p.Benefits, p.ImageURL, planID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// Delete removes a plan.
func (r *PostgresPlanRepository) Delete(ctx context.Context, id string) error {
	planID, err := uuid.Parse(id)
	if err != nil {
		return ErrPlanNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM memberships WHERE id = $1`, planID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func scanPlan(row pgx.Row) (Plan, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		p         Plan
	)
	if err := row.Scan(&id, &p.Name, &p.Description, &p.Price, &p.DurationMonths, &p.Benefits, &p.ImageURL, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrPlanNotFound
		}
		return Plan{}, err
	}
	p.ID = id.String()
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}

// PostgresEnrollmentRepository implements EnrollmentRepository using PostgreSQL.
type PostgresEnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewPostgresEnrollmentRepository builds a Postgres-backed enrollment repository.
func NewPostgresEnrollmentRepository(db *pgxpool.Pool) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{db: db}
}

// Create inserts an enrollment.
func (r *PostgresEnrollmentRepository) Create(ctx context.Context, e Enrollment) error {
	enrollID, err := uuid.Parse(e.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(e.UserID)
	if err != nil {
		return err
	}
	planID, err := uuid.Parse(e.MembershipID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO user_memberships (id, user_id, membership_id, start_date, end_date, status, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$7)`,
		enrollID, userID, planID, e.StartDate.UTC(), e.EndDate.UTC(), e.Status, e.CreatedAt.UTC())
	return err
}

// FindActiveByUser fetches the user's active enrollment if any.
func (r *PostgresEnrollmentRepository) FindActiveByUser(ctx context.Context, userID string) (Enrollment, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Enrollment{}, ErrNoEnrollment
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, membership_id, start_date, end_date, status, created_at, updated_at
        FROM user_memberships WHERE user_id = $1 AND status = 'active' ORDER BY start_date DESC LIMIT 1`, uid)

	var (
		id        uuid.UUID
		ruid      uuid.UUID
		planID    uuid.UUID
		start     time.Time
		end       time.Time
		createdAt time.Time
		updatedAt time.Time
		e         Enrollment
	)
	if err := row.Scan(&id, &ruid, &planID, &start, &end, &e.Status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Enrollment{}, ErrNoEnrollment
		}
		return Enrollment{}, err
	}
	e.ID = id.String()
	e.UserID = ruid.String()
	e.MembershipID = planID.String()
	e.StartDate = start.UTC()
	e.EndDate = end.UTC()
	e.CreatedAt = createdAt.UTC()
	e.UpdatedAt = updatedAt.UTC()
	return e, nil
}

// Update rewrites an enrollment's status and period.
func (r *PostgresEnrollmentRepository) Update(ctx context.Context, e Enrollment) error {
	enrollID, err := uuid.Parse(e.ID)
	if err != nil {
		return ErrEnrollNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE user_memberships SET start_date=$1, end_date=$2, status=$3, updated_at=now() WHERE id=$4`,
		e.StartDate.UTC(), e.EndDate.UTC(), e.Status, enrollID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEnrollNotFound
	}
	return nil
}
