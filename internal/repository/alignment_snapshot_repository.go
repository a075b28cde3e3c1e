package repository

import (
	"context"
	"time"

	"skill-align/internal/database"

	"github.com/google/uuid"
)

// AlignmentSnapshot is one point on a user's industry-alignment timeline.
// Rows are append-only; trends are read by comparing successive snapshots.
type AlignmentSnapshot struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Industry   string    `json:"industry"`
	Score      float64   `json:"score"`
	SkillCount int       `json:"skill_count"`
	ComputedAt time.Time `json:"computed_at"`
}

type AlignmentSnapshotRepository interface {
	Insert(ctx context.Context, snapshots []AlignmentSnapshot) error
	ListByUserBetween(ctx context.Context, userID uuid.UUID, industries []string, from, to time.Time) ([]AlignmentSnapshot, error)
	LatestByUser(ctx context.Context, userID uuid.UUID) ([]AlignmentSnapshot, error)
}

type PostgresAlignmentSnapshotRepository struct {
	db database.DB
}

func NewPostgresAlignmentSnapshotRepository(db database.DB) *PostgresAlignmentSnapshotRepository {
	return &PostgresAlignmentSnapshotRepository{db: db}
}

func (r *PostgresAlignmentSnapshotRepository) Insert(ctx context.Context, snapshots []AlignmentSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	for _, s := range snapshots {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if s.ComputedAt.IsZero() {
			s.ComputedAt = now
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO alignment_snapshots (id, user_id, industry, score, skill_count, computed_at)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			s.ID, s.UserID, s.Industry, s.Score, s.SkillCount, s.ComputedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresAlignmentSnapshotRepository) ListByUserBetween(ctx context.Context, userID uuid.UUID, industries []string, from, to time.Time) ([]AlignmentSnapshot, error) {
	query := `SELECT id, user_id, industry, score, skill_count, computed_at
		 FROM alignment_snapshots
		 WHERE user_id = $1 AND computed_at >= $2 AND computed_at <= $3`
	args := []any{userID, from, to}
	if len(industries) > 0 {
		query += ` AND industry = ANY($4)`
		args = append(args, industries)
	}
	query += ` ORDER BY industry ASC, computed_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// LatestByUser returns the most recent snapshot per industry.
func (r *PostgresAlignmentSnapshotRepository) LatestByUser(ctx context.Context, userID uuid.UUID) ([]AlignmentSnapshot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT ON (industry) id, user_id, industry, score, skill_count, computed_at
		 FROM alignment_snapshots
		 WHERE user_id = $1
		 ORDER BY industry ASC, computed_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func scanSnapshots(rows database.Rows) ([]AlignmentSnapshot, error) {
	out := make([]AlignmentSnapshot, 0)
	for rows.Next() {
		var s AlignmentSnapshot
		if err := rows.Scan(&s.ID, &s.UserID, &s.Industry, &s.Score, &s.SkillCount, &s.ComputedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
