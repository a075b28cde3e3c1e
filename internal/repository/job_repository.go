package repository

import (
	"context"
	"errors"
	"time"

	"skill-align/internal/database"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

type Job struct {
	ID         uuid.UUID
	ExternalID string
	Title      string
	Company    string
	Category   string
	Location   string
	SalaryMin  *int64
	SalaryMax  *int64
	PostedAt   *time.Time
}

type JobUpsert struct {
	ExternalID string
	Title      string
	Company    string
	Category   string
	Location   string
	SalaryMin  *int64
	SalaryMax  *int64
	PostedAt   *time.Time
}

type JobRepository interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ListActiveJobIDs(ctx context.Context) ([]uuid.UUID, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Job, error)
	ListCategories(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, j JobUpsert) (uuid.UUID, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(external_id, ''), title, COALESCE(company, ''),
		        COALESCE(category, ''), COALESCE(location, ''), salary_min, salary_max, posted_at
		 FROM jobs WHERE id = $1`,
		id,
	)
	var j Job
	if err := row.Scan(&j.ID, &j.ExternalID, &j.Title, &j.Company, &j.Category,
		&j.Location, &j.SalaryMin, &j.SalaryMax, &j.PostedAt); err != nil {
		if isNoRows(err) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

// ListActiveJobIDs returns the full candidate corpus in deterministic order.
func (r *PostgresJobRepository) ListActiveJobIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT j.id
		 FROM jobs j
		 WHERE EXISTS (SELECT 1 FROM job_skills js WHERE js.job_id = j.id)
		 ORDER BY j.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Job, error) {
	out := make(map[uuid.UUID]Job, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(external_id, ''), title, COALESCE(company, ''),
		        COALESCE(category, ''), COALESCE(location, ''), salary_min, salary_max, posted_at
		 FROM jobs WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.ExternalID, &j.Title, &j.Company, &j.Category,
			&j.Location, &j.SalaryMin, &j.SalaryMax, &j.PostedAt); err != nil {
			return nil, err
		}
		out[j.ID] = j
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT category FROM jobs WHERE category IS NOT NULL AND category <> '' ORDER BY category ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Upsert(ctx context.Context, j JobUpsert) (uuid.UUID, error) {
	id := uuid.New()
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (id, external_id, title, company, category, location, salary_min, salary_max, posted_at, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (external_id) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			category = EXCLUDED.category,
			location = EXCLUDED.location,
			salary_min = EXCLUDED.salary_min,
			salary_max = EXCLUDED.salary_max,
			posted_at = EXCLUDED.posted_at
		 RETURNING id`,
		id, j.ExternalID, j.Title, j.Company, j.Category, j.Location,
		j.SalaryMin, j.SalaryMax, j.PostedAt, time.Now().UTC(),
	)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		return uuid.Nil, err
	}
	return got, nil
}
