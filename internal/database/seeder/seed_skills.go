package seeder

import (
	"context"
	"fmt"

	"skill-align/internal/database"
	"skill-align/internal/domain/skill"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "normalized_name", "skill_type", "category", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name     string
		Type     skill.Type
		Category string
	}{
		{Name: "Go", Type: skill.TypeTechnical, Category: "Programming Language"},
		{Name: "Python", Type: skill.TypeTechnical, Category: "Programming Language"},
		{Name: "JavaScript", Type: skill.TypeTechnical, Category: "Programming Language"},
		{Name: "TypeScript", Type: skill.TypeTechnical, Category: "Programming Language"},
		{Name: "Java", Type: skill.TypeTechnical, Category: "Programming Language"},
		{Name: "SQL", Type: skill.TypeTechnical, Category: "Database"},
		{Name: "PostgreSQL", Type: skill.TypeTechnical, Category: "Database"},
		{Name: "Redis", Type: skill.TypeTechnical, Category: "Database"},
		{Name: "MongoDB", Type: skill.TypeTechnical, Category: "Database"},
		{Name: "Docker", Type: skill.TypeTechnical, Category: "DevOps"},
		{Name: "Kubernetes", Type: skill.TypeTechnical, Category: "DevOps"},
		{Name: "Terraform", Type: skill.TypeTechnical, Category: "DevOps"},
		{Name: "AWS", Type: skill.TypeTechnical, Category: "Cloud"},
		{Name: "GCP", Type: skill.TypeTechnical, Category: "Cloud"},
		{Name: "Azure", Type: skill.TypeTechnical, Category: "Cloud"},
		{Name: "React", Type: skill.TypeTechnical, Category: "Frontend"},
		{Name: "Vue.js", Type: skill.TypeTechnical, Category: "Frontend"},
		{Name: "Node.js", Type: skill.TypeTechnical, Category: "Backend"},
		{Name: "GraphQL", Type: skill.TypeTechnical, Category: "Backend"},
		{Name: "Machine Learning", Type: skill.TypeTechnical, Category: "Data"},
		{Name: "Data Analysis", Type: skill.TypeTechnical, Category: "Data"},
		{Name: "Pandas", Type: skill.TypeTechnical, Category: "Data"},
		{Name: "Communication", Type: skill.TypeSoft, Category: "Interpersonal"},
		{Name: "Leadership", Type: skill.TypeSoft, Category: "Interpersonal"},
		{Name: "Teamwork", Type: skill.TypeSoft, Category: "Interpersonal"},
		{Name: "Problem Solving", Type: skill.TypeSoft, Category: "Cognitive"},
		{Name: "Critical Thinking", Type: skill.TypeSoft, Category: "Cognitive"},
		{Name: "Time Management", Type: skill.TypeSoft, Category: "Organizational"},
		{Name: "Project Management", Type: skill.TypeSoft, Category: "Organizational"},
		{Name: "Mentoring", Type: skill.TypeSoft, Category: "Interpersonal"},
	}

	for _, it := range items {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, normalized_name, skill_type, category, created_at)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, now())
			 ON CONFLICT (normalized_name) DO NOTHING`,
			it.Name,
			skill.Normalize(it.Name),
			string(it.Type),
			it.Category,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
