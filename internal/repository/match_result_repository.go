package repository

import (
	"context"
	"errors"
	"time"

	"skill-align/internal/database"
	"skill-align/internal/domain/scoring"

	"github.com/google/uuid"
)

var ErrMatchNotFound = errors.New("match result not found")

// MatchResult is the persisted score for one (user, job, algorithm version)
// triple. Re-scoring the same triple overwrites the previous row, so the table
// always holds the latest run per version.
type MatchResult struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	JobID            uuid.UUID
	AlgorithmVersion string
	Breakdown        scoring.Breakdown
	MatchingSkillIDs []uuid.UUID
	MissingSkillIDs  []uuid.UUID
	ComputedAt       time.Time
}

// Composite score bands: high at or above 0.7, medium in [0.4, 0.7), low
// below 0.4.
const (
	HighMatchThreshold   = 0.7
	MediumMatchThreshold = 0.4
)

// MatchStats summarizes a user's stored matches for one algorithm version.
type MatchStats struct {
	Total        int     `json:"total"`
	AvgComposite float64 `json:"avg_composite"`
	MaxComposite float64 `json:"max_composite"`
	HighCount    int     `json:"high_count"`
	MediumCount  int     `json:"medium_count"`
	LowCount     int     `json:"low_count"`
}

type MatchResultRepository interface {
	Upsert(ctx context.Context, m MatchResult) error
	UpsertBatch(ctx context.Context, results []MatchResult) error
	ListByUser(ctx context.Context, userID uuid.UUID, version string, limit int) ([]MatchResult, error)
	GetByUserAndJob(ctx context.Context, userID, jobID uuid.UUID, version string) (MatchResult, error)
	Stats(ctx context.Context, userID uuid.UUID, version string) (MatchStats, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID, version string) error
}

type PostgresMatchResultRepository struct {
	db database.DB
}

func NewPostgresMatchResultRepository(db database.DB) *PostgresMatchResultRepository {
	return &PostgresMatchResultRepository{db: db}
}

const upsertMatchQuery = `INSERT INTO match_results
	(id, user_id, job_id, algorithm_version, jaccard_score, cosine_score, coverage_score, composite_score,
	 matching_skill_ids, missing_skill_ids, computed_at)
	 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	 ON CONFLICT (user_id, job_id, algorithm_version) DO UPDATE SET
		jaccard_score = EXCLUDED.jaccard_score,
		cosine_score = EXCLUDED.cosine_score,
		coverage_score = EXCLUDED.coverage_score,
		composite_score = EXCLUDED.composite_score,
		matching_skill_ids = EXCLUDED.matching_skill_ids,
		missing_skill_ids = EXCLUDED.missing_skill_ids,
		computed_at = EXCLUDED.computed_at`

func (r *PostgresMatchResultRepository) Upsert(ctx context.Context, m MatchResult) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.ComputedAt.IsZero() {
		m.ComputedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, upsertMatchQuery,
		m.ID, m.UserID, m.JobID, m.AlgorithmVersion,
		m.Breakdown.Jaccard, m.Breakdown.Cosine, m.Breakdown.Coverage, m.Breakdown.Composite,
		m.MatchingSkillIDs, m.MissingSkillIDs, m.ComputedAt,
	)
	return err
}

// UpsertBatch writes one recompute run in a single transaction so readers
// never observe a half-updated ranking.
func (r *PostgresMatchResultRepository) UpsertBatch(ctx context.Context, results []MatchResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	for _, m := range results {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.ComputedAt.IsZero() {
			m.ComputedAt = now
		}
		if _, err := tx.Exec(ctx, upsertMatchQuery,
			m.ID, m.UserID, m.JobID, m.AlgorithmVersion,
			m.Breakdown.Jaccard, m.Breakdown.Cosine, m.Breakdown.Coverage, m.Breakdown.Composite,
			m.MatchingSkillIDs, m.MissingSkillIDs, m.ComputedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresMatchResultRepository) ListByUser(ctx context.Context, userID uuid.UUID, version string, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, job_id, algorithm_version,
		        jaccard_score, cosine_score, coverage_score, composite_score,
		        matching_skill_ids, missing_skill_ids, computed_at
		 FROM match_results
		 WHERE user_id = $1 AND algorithm_version = $2
		 ORDER BY composite_score DESC, coverage_score DESC, job_id ASC
		 LIMIT $3`,
		userID, version, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchResult, 0, limit)
	for rows.Next() {
		var m MatchResult
		if err := rows.Scan(&m.ID, &m.UserID, &m.JobID, &m.AlgorithmVersion,
			&m.Breakdown.Jaccard, &m.Breakdown.Cosine, &m.Breakdown.Coverage, &m.Breakdown.Composite,
			&m.MatchingSkillIDs, &m.MissingSkillIDs, &m.ComputedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchResultRepository) GetByUserAndJob(ctx context.Context, userID, jobID uuid.UUID, version string) (MatchResult, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, job_id, algorithm_version,
		        jaccard_score, cosine_score, coverage_score, composite_score,
		        matching_skill_ids, missing_skill_ids, computed_at
		 FROM match_results
		 WHERE user_id = $1 AND job_id = $2 AND algorithm_version = $3`,
		userID, jobID, version,
	)
	var m MatchResult
	if err := row.Scan(&m.ID, &m.UserID, &m.JobID, &m.AlgorithmVersion,
		&m.Breakdown.Jaccard, &m.Breakdown.Cosine, &m.Breakdown.Coverage, &m.Breakdown.Composite,
		&m.MatchingSkillIDs, &m.MissingSkillIDs, &m.ComputedAt); err != nil {
		if isNoRows(err) {
			return MatchResult{}, ErrMatchNotFound
		}
		return MatchResult{}, err
	}
	return m, nil
}

func (r *PostgresMatchResultRepository) Stats(ctx context.Context, userID uuid.UUID, version string) (MatchStats, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(AVG(composite_score), 0),
		        COALESCE(MAX(composite_score), 0),
		        COUNT(*) FILTER (WHERE composite_score >= $3),
		        COUNT(*) FILTER (WHERE composite_score >= $4 AND composite_score < $3),
		        COUNT(*) FILTER (WHERE composite_score < $4)
		 FROM match_results
		 WHERE user_id = $1 AND algorithm_version = $2`,
		userID, version, HighMatchThreshold, MediumMatchThreshold,
	)
	var st MatchStats
	if err := row.Scan(&st.Total, &st.AvgComposite, &st.MaxComposite,
		&st.HighCount, &st.MediumCount, &st.LowCount); err != nil {
		return MatchStats{}, err
	}
	return st, nil
}

func (r *PostgresMatchResultRepository) DeleteByUser(ctx context.Context, userID uuid.UUID, version string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM match_results WHERE user_id = $1 AND algorithm_version = $2`,
		userID, version,
	)
	return err
}
