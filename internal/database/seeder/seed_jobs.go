package seeder

import (
	"context"
	"fmt"

	"skill-align/internal/database"
	"skill-align/internal/domain/skill"
)

// JobsSeeder inserts a small demo corpus so a fresh install can rank and
// snapshot without waiting for an external feed. Importance values mirror the
// spread a real extraction produces: core requirements near 1, nice-to-haves
// near 0.4.
type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

type seedJob struct {
	ExternalID string
	Title      string
	Company    string
	Category   string
	Location   string
	Skills     map[string]float64
}

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "external_id", "title", "company", "category", "location", "created_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "job_skills", "id", "job_id", "skill_id", "importance"); err != nil {
		return err
	}

	jobs := []seedJob{
		{
			ExternalID: "seed-backend-go",
			Title:      "Backend Engineer",
			Company:    "Northwind Labs",
			Category:   "Software Development",
			Location:   "Remote",
			Skills:     map[string]float64{"Go": 1.0, "PostgreSQL": 0.8, "Docker": 0.7, "Redis": 0.5, "Communication": 0.4},
		},
		{
			ExternalID: "seed-data-analyst",
			Title:      "Data Analyst",
			Company:    "Helios Analytics",
			Category:   "Data & Analytics",
			Location:   "Jakarta",
			Skills:     map[string]float64{"SQL": 1.0, "Python": 0.9, "Pandas": 0.8, "Data Analysis": 0.9, "Critical Thinking": 0.5},
		},
		{
			ExternalID: "seed-frontend-react",
			Title:      "Frontend Developer",
			Company:    "Brightline",
			Category:   "Software Development",
			Location:   "Remote",
			Skills:     map[string]float64{"JavaScript": 1.0, "TypeScript": 0.8, "React": 0.9, "Node.js": 0.4, "Teamwork": 0.4},
		},
		{
			ExternalID: "seed-platform-sre",
			Title:      "Platform Engineer",
			Company:    "Northwind Labs",
			Category:   "Infrastructure",
			Location:   "Singapore",
			Skills:     map[string]float64{"Kubernetes": 1.0, "Terraform": 0.8, "AWS": 0.8, "Docker": 0.7, "Go": 0.5, "Problem Solving": 0.4},
		},
		{
			ExternalID: "seed-ml-engineer",
			Title:      "Machine Learning Engineer",
			Company:    "Helios Analytics",
			Category:   "Data & Analytics",
			Location:   "Remote",
			Skills:     map[string]float64{"Python": 1.0, "Machine Learning": 1.0, "SQL": 0.6, "Docker": 0.5, "Communication": 0.4},
		},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, j := range jobs {
		row := tx.QueryRow(ctx,
			`INSERT INTO jobs (id, external_id, title, company, category, location, created_at)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, now())
			 ON CONFLICT (external_id) DO UPDATE SET title = EXCLUDED.title
			 RETURNING id`,
			j.ExternalID, j.Title, j.Company, j.Category, j.Location,
		)
		var jobID string
		if err := row.Scan(&jobID); err != nil {
			return err
		}

		for name, importance := range j.Skills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO job_skills (id, job_id, skill_id, importance)
				 SELECT gen_random_uuid(), $1, s.id, $2
				 FROM skills s WHERE s.normalized_name = $3
				 ON CONFLICT (job_id, skill_id) DO UPDATE SET importance = EXCLUDED.importance`,
				jobID, importance, skill.Normalize(name),
			); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
