package repository

import (
	"context"

	"skill-align/internal/database"

	"github.com/google/uuid"
)

// JobSkillRequirement is one job-side skill with its importance in [0,1].
type JobSkillRequirement struct {
	SkillID    uuid.UUID
	SkillName  string
	Importance float64
	Technical  bool
}

// IndustryRequirement aggregates a skill's importance across one industry's
// job postings (average importance, per the alignment formula).
type IndustryRequirement struct {
	Industry   string
	SkillID    uuid.UUID
	Importance float64
	Technical  bool
}

type JobSkillRepository interface {
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]JobSkillRequirement, error)
	FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]JobSkillRequirement, error)
	ReplaceForJob(ctx context.Context, jobID uuid.UUID, reqs []JobSkillRequirement) error
	DocumentFrequencies(ctx context.Context) (int, map[uuid.UUID]int, error)
	IndustryRequirements(ctx context.Context, industries []string) (map[string][]IndustryRequirement, error)
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

func (r *PostgresJobSkillRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]JobSkillRequirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT js.skill_id, s.name, COALESCE(js.importance, 1), s.skill_type = 'technical'
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY js.skill_id ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobSkillRequirement, 0)
	for rows.Next() {
		var req JobSkillRequirement
		if err := rows.Scan(&req.SkillID, &req.SkillName, &req.Importance, &req.Technical); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobSkillRepository) FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]JobSkillRequirement, error) {
	out := make(map[uuid.UUID][]JobSkillRequirement, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT js.job_id, js.skill_id, s.name, COALESCE(js.importance, 1), s.skill_type = 'technical'
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = ANY($1)
		 ORDER BY js.job_id ASC, js.skill_id ASC`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID uuid.UUID
		var req JobSkillRequirement
		if err := rows.Scan(&jobID, &req.SkillID, &req.SkillName, &req.Importance, &req.Technical); err != nil {
			return nil, err
		}
		out[jobID] = append(out[jobID], req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceForJob swaps a job's requirement set atomically; ingestion re-sends
// the full skill list on every update.
func (r *PostgresJobSkillRepository) ReplaceForJob(ctx context.Context, jobID uuid.UUID, reqs []JobSkillRequirement) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, jobID); err != nil {
		return err
	}
	for _, req := range reqs {
		if req.SkillID == uuid.Nil {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO job_skills (id, job_id, skill_id, importance)
			 VALUES ($1,$2,$3,$4)
			 ON CONFLICT (job_id, skill_id) DO UPDATE SET importance = EXCLUDED.importance`,
			uuid.New(), jobID, req.SkillID, req.Importance,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// DocumentFrequencies feeds the corpus-wide IDF refresh: the number of job
// postings and, per skill, the number of postings that require it.
func (r *PostgresJobSkillRepository) DocumentFrequencies(ctx context.Context) (int, map[uuid.UUID]int, error) {
	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT job_id) FROM job_skills`)
	if err := row.Scan(&total); err != nil {
		return 0, nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT skill_id, COUNT(DISTINCT job_id) FROM job_skills GROUP BY skill_id`,
	)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	df := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return 0, nil, err
		}
		df[id] = n
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}
	return total, df, nil
}

func (r *PostgresJobSkillRepository) IndustryRequirements(ctx context.Context, industries []string) (map[string][]IndustryRequirement, error) {
	query := `SELECT j.category, js.skill_id, AVG(COALESCE(js.importance, 1)), s.skill_type = 'technical'
		 FROM jobs j
		 JOIN job_skills js ON js.job_id = j.id
		 JOIN skills s ON s.id = js.skill_id
		 WHERE j.category IS NOT NULL AND j.category <> ''`
	args := []any{}
	if len(industries) > 0 {
		query += ` AND j.category = ANY($1)`
		args = append(args, industries)
	}
	query += ` GROUP BY j.category, js.skill_id, s.skill_type
		 ORDER BY j.category ASC, js.skill_id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]IndustryRequirement)
	for rows.Next() {
		var req IndustryRequirement
		if err := rows.Scan(&req.Industry, &req.SkillID, &req.Importance, &req.Technical); err != nil {
			return nil, err
		}
		out[req.Industry] = append(out[req.Industry], req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
