package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skill-align/internal/config"
	"skill-align/internal/domain/scoring"
	"skill-align/internal/domain/vector"
	"skill-align/internal/repository"
)

// scoreWorkers bounds the per-rank goroutine fan-out. Scoring is pure CPU, so
// more workers than cores buys nothing.
const scoreWorkers = 8

// RankedMatch is one row of a user's ranking, job metadata joined in.
type RankedMatch struct {
	JobID            uuid.UUID         `json:"job_id"`
	Title            string            `json:"title"`
	Company          string            `json:"company"`
	Category         string            `json:"category"`
	Breakdown        scoring.Breakdown `json:"scores"`
	MatchingSkillIDs []uuid.UUID       `json:"matching_skill_ids"`
	MissingSkillIDs  []uuid.UUID       `json:"missing_skill_ids"`
}

// RankOptions narrows or re-weights a single ranking run. A weights override
// turns the run into a preview: scores come back to the caller but are never
// persisted or cached, so stored rankings always reflect the configured
// algorithm version.
type RankOptions struct {
	JobIDs  []uuid.UUID
	Weights *scoring.Weights
}

type MatchUsecase interface {
	RankJobs(ctx context.Context, userID uuid.UUID, opts RankOptions) ([]RankedMatch, error)
	GetMatches(ctx context.Context, userID uuid.UUID, limit int) ([]RankedMatch, error)
	GetMatchDetail(ctx context.Context, userID, jobID uuid.UUID) (repository.MatchResult, error)
	Stats(ctx context.Context, userID uuid.UUID) (repository.MatchStats, error)
}

type Match struct {
	users     repository.UserSkillRepository
	jobs      repository.JobRepository
	jobSkills repository.JobSkillRepository
	results   repository.MatchResultRepository
	idf       *IDFProvider
	cache     MatchCache
	logger    *zap.Logger
	cfg       config.ScoringConfig
	weights   scoring.Weights
}

func NewMatchUsecase(
	users repository.UserSkillRepository,
	jobs repository.JobRepository,
	jobSkills repository.JobSkillRepository,
	results repository.MatchResultRepository,
	idf *IDFProvider,
	cache MatchCache,
	logger *zap.Logger,
	cfg config.ScoringConfig,
) *Match {
	w := scoring.Weights{Jaccard: cfg.JaccardWeight, Cosine: cfg.CosineWeight, Coverage: cfg.CoverageWeight}
	return &Match{
		users:     users,
		jobs:      jobs,
		jobSkills: jobSkills,
		results:   results,
		idf:       idf,
		cache:     cache,
		logger:    logger,
		cfg:       cfg,
		weights:   w.Normalized(),
	}
}

// RankJobs scores the user against every active posting (or the requested
// subset), persists the results under the configured algorithm version, and
// returns the ranking above the composite floor. Ties break on coverage, then
// job id, so two runs over the same data produce the same order.
func (u *Match) RankJobs(ctx context.Context, userID uuid.UUID, opts RankOptions) ([]RankedMatch, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	weights := u.weights
	persist := true
	if opts.Weights != nil {
		w := *opts.Weights
		if w.Jaccard < 0 || w.Cosine < 0 || w.Coverage < 0 || w.Jaccard+w.Cosine+w.Coverage <= 0 {
			return nil, ErrInvalidInput
		}
		weights = w.Normalized()
		persist = false
	}

	userVec, err := u.userVector(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(userVec) == 0 {
		return nil, ErrUserSkillProfileEmpty
	}

	jobIDs, err := u.jobs.ListActiveJobIDs(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if len(opts.JobIDs) > 0 {
		jobIDs = intersectIDs(jobIDs, opts.JobIDs)
	}
	if len(jobIDs) == 0 {
		return []RankedMatch{}, nil
	}

	reqsByJob, err := u.jobSkills.FindByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, ErrInternal
	}
	idf, err := u.idf.Get(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	results := make([]repository.MatchResult, len(jobIDs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(scoreWorkers)
	for i, jobID := range jobIDs {
		g.Go(func() error {
			results[i] = u.scoreOne(userID, jobID, userVec, reqsByJob[jobID], idf, weights)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ErrInternal
	}

	if persist {
		if err := u.results.UpsertBatch(ctx, results); err != nil {
			u.logger.Error("persisting match results failed", zap.String("user_id", userID.String()), zap.Error(err))
			return nil, ErrInternal
		}
	}

	ranked := u.assemble(ctx, results)
	if persist {
		_ = u.cache.SetJSON(ctx, matchListKey(userID, u.cfg.AlgorithmVersion), ranked, 0)
	}

	u.logger.Info("ranking computed",
		zap.String("user_id", userID.String()),
		zap.Int("jobs_scored", len(results)),
		zap.Int("above_floor", len(ranked)),
		zap.Bool("persisted", persist),
		zap.String("algorithm_version", u.cfg.AlgorithmVersion),
	)
	return ranked, nil
}

func intersectIDs(active, requested []uuid.UUID) []uuid.UUID {
	known := make(map[uuid.UUID]bool, len(active))
	for _, id := range active {
		known[id] = true
	}
	out := make([]uuid.UUID, 0, len(requested))
	seen := make(map[uuid.UUID]bool, len(requested))
	for _, id := range requested {
		if known[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (u *Match) GetMatches(ctx context.Context, userID uuid.UUID, limit int) ([]RankedMatch, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var cached []RankedMatch
	if ok, _ := u.cache.GetJSON(ctx, matchListKey(userID, u.cfg.AlgorithmVersion), &cached); ok {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached, nil
	}

	stored, err := u.results.ListByUser(ctx, userID, u.cfg.AlgorithmVersion, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return u.assemble(ctx, stored), nil
}

func (u *Match) GetMatchDetail(ctx context.Context, userID, jobID uuid.UUID) (repository.MatchResult, error) {
	if userID == uuid.Nil {
		return repository.MatchResult{}, ErrUnauthorized
	}
	m, err := u.results.GetByUserAndJob(ctx, userID, jobID, u.cfg.AlgorithmVersion)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return repository.MatchResult{}, ErrMatchNotFound
		}
		return repository.MatchResult{}, ErrInternal
	}
	return m, nil
}

func (u *Match) Stats(ctx context.Context, userID uuid.UUID) (repository.MatchStats, error) {
	if userID == uuid.Nil {
		return repository.MatchStats{}, ErrUnauthorized
	}

	var cached repository.MatchStats
	if ok, _ := u.cache.GetJSON(ctx, matchStatsKey(userID), &cached); ok {
		return cached, nil
	}

	st, err := u.results.Stats(ctx, userID, u.cfg.AlgorithmVersion)
	if err != nil {
		return repository.MatchStats{}, ErrInternal
	}
	_ = u.cache.SetJSON(ctx, matchStatsKey(userID), st, 0)
	return st, nil
}

func (u *Match) userVector(ctx context.Context, userID uuid.UUID) (vector.Vector, error) {
	skills, err := u.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	mentions := make([]vector.Mention, 0, len(skills))
	for _, s := range skills {
		if vector.OutOfRange(s.Proficiency) || vector.OutOfRange(s.Confidence) {
			u.logger.Warn("clipping out-of-range user skill",
				zap.String("user_id", userID.String()),
				zap.String("skill", s.SkillName),
				zap.Float64("proficiency", s.Proficiency),
				zap.Float64("confidence", s.Confidence),
			)
		}
		mentions = append(mentions, vector.Mention{
			SkillID:    s.SkillID,
			Weight:     s.Proficiency,
			Confidence: s.Confidence,
		})
	}
	return vector.Build(mentions), nil
}

func (u *Match) scoreOne(userID, jobID uuid.UUID, userVec vector.Vector, reqs []repository.JobSkillRequirement, idf scoring.IDF, weights scoring.Weights) repository.MatchResult {
	mentions := make([]vector.Mention, 0, len(reqs))
	for _, r := range reqs {
		mentions = append(mentions, vector.Mention{SkillID: r.SkillID, Weight: r.Importance, Confidence: 1})
	}
	jobVec := vector.Build(mentions)

	matching := make([]uuid.UUID, 0, len(jobVec))
	missing := make([]uuid.UUID, 0, len(jobVec))
	for _, id := range jobVec.Keys() {
		if userVec[id] > 0 {
			matching = append(matching, id)
		} else {
			missing = append(missing, id)
		}
	}

	return repository.MatchResult{
		UserID:           userID,
		JobID:            jobID,
		AlgorithmVersion: u.cfg.AlgorithmVersion,
		Breakdown:        scoring.Score(userVec, jobVec, idf, weights),
		MatchingSkillIDs: matching,
		MissingSkillIDs:  missing,
	}
}

// assemble joins job metadata onto stored results, applies the composite
// floor, and sorts into presentation order.
func (u *Match) assemble(ctx context.Context, results []repository.MatchResult) []RankedMatch {
	kept := make([]repository.MatchResult, 0, len(results))
	ids := make([]uuid.UUID, 0, len(results))
	for _, m := range results {
		if m.Breakdown.Composite < u.cfg.MinComposite {
			continue
		}
		kept = append(kept, m)
		ids = append(ids, m.JobID)
	}

	jobs, err := u.jobs.ListByIDs(ctx, ids)
	if err != nil {
		u.logger.Warn("joining job metadata failed", zap.Error(err))
		jobs = map[uuid.UUID]repository.Job{}
	}

	out := make([]RankedMatch, 0, len(kept))
	for _, m := range kept {
		j := jobs[m.JobID]
		out = append(out, RankedMatch{
			JobID:            m.JobID,
			Title:            j.Title,
			Company:          j.Company,
			Category:         j.Category,
			Breakdown:        m.Breakdown,
			MatchingSkillIDs: m.MatchingSkillIDs,
			MissingSkillIDs:  m.MissingSkillIDs,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Breakdown.Composite != b.Breakdown.Composite {
			return a.Breakdown.Composite > b.Breakdown.Composite
		}
		if a.Breakdown.Coverage != b.Breakdown.Coverage {
			return a.Breakdown.Coverage > b.Breakdown.Coverage
		}
		return a.JobID.String() < b.JobID.String()
	})
	return out
}
