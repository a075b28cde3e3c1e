package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skill-align/internal/config"
	"skill-align/internal/domain/gap"
	"skill-align/internal/domain/vector"
	"skill-align/internal/repository"
)

type GapUsecase interface {
	AnalyzeGap(ctx context.Context, userID, jobID uuid.UUID) ([]gap.Gap, error)
	GetGaps(ctx context.Context, userID, jobID uuid.UUID) ([]gap.Gap, error)
}

type GapAnalysis struct {
	users     repository.UserSkillRepository
	jobs      repository.JobRepository
	jobSkills repository.JobSkillRepository
	gaps      repository.SkillGapRepository
	taxonomy  *TaxonomyProvider
	cache     MatchCache
	logger    *zap.Logger
	table     gap.EffortTable
}

func NewGapUsecase(
	users repository.UserSkillRepository,
	jobs repository.JobRepository,
	jobSkills repository.JobSkillRepository,
	gaps repository.SkillGapRepository,
	taxonomy *TaxonomyProvider,
	cache MatchCache,
	logger *zap.Logger,
	cfg config.ScoringConfig,
) *GapAnalysis {
	return &GapAnalysis{
		users:     users,
		jobs:      jobs,
		jobSkills: jobSkills,
		gaps:      gaps,
		taxonomy:  taxonomy,
		cache:     cache,
		logger:    logger,
		table:     gap.NewEffortTable(cfg.TechnicalHoursPerUnit, cfg.SoftHoursPerUnit),
	}
}

// AnalyzeGap recomputes the gap set for one (user, job) pair and replaces the
// stored analysis. A user who meets every requirement gets an empty list, not
// an error.
func (u *GapAnalysis) AnalyzeGap(ctx context.Context, userID, jobID uuid.UUID) ([]gap.Gap, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	userSkills, err := u.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	userMentions := make([]vector.Mention, 0, len(userSkills))
	for _, s := range userSkills {
		userMentions = append(userMentions, vector.Mention{
			SkillID:    s.SkillID,
			Weight:     s.Proficiency,
			Confidence: s.Confidence,
		})
	}

	reqs, err := u.jobSkills.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	jobMentions := make([]vector.Mention, 0, len(reqs))
	for _, r := range reqs {
		jobMentions = append(jobMentions, vector.Mention{SkillID: r.SkillID, Weight: r.Importance, Confidence: 1})
	}

	gaps := gap.Analyze(vector.Build(userMentions), vector.Build(jobMentions), u.taxonomy.Get(), u.table)

	if err := u.gaps.ReplaceForUserJob(ctx, userID, jobID, gaps); err != nil {
		u.logger.Error("persisting gap analysis failed",
			zap.String("user_id", userID.String()),
			zap.String("job_id", jobID.String()),
			zap.Error(err),
		)
		return nil, ErrInternal
	}
	_ = u.cache.SetJSON(ctx, gapKey(userID, jobID), gaps, 0)

	return gaps, nil
}

func (u *GapAnalysis) GetGaps(ctx context.Context, userID, jobID uuid.UUID) ([]gap.Gap, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	var cached []gap.Gap
	if ok, _ := u.cache.GetJSON(ctx, gapKey(userID, jobID), &cached); ok {
		return cached, nil
	}

	gaps, err := u.gaps.ListByUserJob(ctx, userID, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(gaps) == 0 {
		// Nothing stored yet; compute on demand.
		return u.AnalyzeGap(ctx, userID, jobID)
	}
	return gaps, nil
}
