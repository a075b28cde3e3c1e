package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-align/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserSkillNotFound = errors.New("user skill not found")

// UserSkill is one proficiency claim on a user's profile. Proficiency and
// confidence live in [0,1]; out-of-range values from older rows are clipped by
// the engine, not rejected here.
type UserSkill struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SkillID     uuid.UUID
	SkillName   string
	Proficiency float64
	Confidence  float64
	Source      string
	UpdatedAt   time.Time
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	Upsert(ctx context.Context, us UserSkill) (UserSkill, error)
	Delete(ctx context.Context, userID, skillID uuid.UUID) error
	ListUserIDsWithSkills(ctx context.Context) ([]uuid.UUID, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name,
		        COALESCE(us.proficiency, 0), COALESCE(us.confidence, 1), COALESCE(us.source, ''),
		        us.updated_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkill, 0)
	for rows.Next() {
		var us UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName,
			&us.Proficiency, &us.Confidence, &us.Source, &us.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert replaces the claim for (user, skill) in one statement so a profile
// change racing a recompute cannot produce a lost update.
func (r *PostgresUserSkillRepository) Upsert(ctx context.Context, us UserSkill) (UserSkill, error) {
	if us.ID == uuid.Nil {
		us.ID = uuid.New()
	}
	now := time.Now().UTC()

	row := r.db.QueryRow(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, proficiency, confidence, source, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
		 ON CONFLICT (user_id, skill_id) DO UPDATE SET
			proficiency = EXCLUDED.proficiency,
			confidence = EXCLUDED.confidence,
			source = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at
		 RETURNING id, updated_at`,
		us.ID, us.UserID, us.SkillID, us.Proficiency, us.Confidence, us.Source, now,
	)
	if err := row.Scan(&us.ID, &us.UpdatedAt); err != nil {
		return UserSkill{}, err
	}
	return us, nil
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func (r *PostgresUserSkillRepository) ListUserIDsWithSkills(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT user_id FROM user_skills ORDER BY user_id ASC`,
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

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
