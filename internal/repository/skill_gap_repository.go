package repository

import (
	"context"
	"time"

	"skill-align/internal/database"
	"skill-align/internal/domain/gap"
	"skill-align/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillGapRepository interface {
	ReplaceForUserJob(ctx context.Context, userID, jobID uuid.UUID, gaps []gap.Gap) error
	ListByUserJob(ctx context.Context, userID, jobID uuid.UUID) ([]gap.Gap, error)
}

type PostgresSkillGapRepository struct {
	db database.DB
}

func NewPostgresSkillGapRepository(db database.DB) *PostgresSkillGapRepository {
	return &PostgresSkillGapRepository{db: db}
}

// ReplaceForUserJob deletes the previous analysis and writes the new one in a
// single transaction; the stored rows always reflect one coherent run.
func (r *PostgresSkillGapRepository) ReplaceForUserJob(ctx context.Context, userID, jobID uuid.UUID, gaps []gap.Gap) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM skill_gaps WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, g := range gaps {
		if _, err := tx.Exec(ctx,
			`INSERT INTO skill_gaps
			 (id, user_id, job_id, skill_id, required_weight, user_weight, priority, estimated_hours, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			uuid.New(), userID, jobID, g.SkillID,
			g.RequiredWeight, g.UserWeight, string(g.Priority), g.EstimatedHours, now,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresSkillGapRepository) ListByUserJob(ctx context.Context, userID, jobID uuid.UUID) ([]gap.Gap, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sg.skill_id, s.name, s.skill_type,
		        sg.required_weight, sg.user_weight, sg.priority, sg.estimated_hours
		 FROM skill_gaps sg
		 JOIN skills s ON s.id = sg.skill_id
		 WHERE sg.user_id = $1 AND sg.job_id = $2
		 ORDER BY CASE sg.priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
		          sg.required_weight DESC,
		          (sg.required_weight - sg.user_weight) DESC,
		          sg.skill_id ASC`,
		userID, jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]gap.Gap, 0)
	for rows.Next() {
		var g gap.Gap
		var priority, skillType string
		if err := rows.Scan(&g.SkillID, &g.SkillName, &skillType,
			&g.RequiredWeight, &g.UserWeight, &priority, &g.EstimatedHours); err != nil {
			return nil, err
		}
		g.Priority = gap.Priority(priority)
		g.SkillType = skill.Type(skillType)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
