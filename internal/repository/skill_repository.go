package repository

import (
	"context"
	"time"

	"skill-align/internal/database"
	"skill-align/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	UpsertSkill(ctx context.Context, s skill.Skill) (skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, normalized_name, skill_type, COALESCE(category, ''), created_at
		 FROM skills
		 ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		var st string
		if err := rows.Scan(&s.ID, &s.Name, &s.NormalizedName, &st, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Type = skill.Type(st)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertSkill is used by taxonomy import only; the engine itself never writes
// to the catalog.
func (r *PostgresSkillRepository) UpsertSkill(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.NormalizedName == "" {
		s.NormalizedName = skill.Normalize(s.Name)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, normalized_name, skill_type, category, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (normalized_name) DO UPDATE SET
			name = EXCLUDED.name,
			skill_type = EXCLUDED.skill_type,
			category = EXCLUDED.category
		 RETURNING id, created_at`,
		s.ID, s.Name, s.NormalizedName, string(s.Type), s.Category, s.CreatedAt,
	)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}
