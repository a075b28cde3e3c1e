package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skill-align/internal/domain/skill"
	"skill-align/internal/repository"
)

// JobImport is one posting from an external feed, skills still as raw
// name mentions.
type JobImport struct {
	ExternalID string
	Title      string
	Company    string
	Category   string
	Location   string
	SalaryMin  *int64
	SalaryMax  *int64
	PostedAt   *time.Time
	Skills     []skill.Mention
}

// IngestReport summarizes one intake call.
type IngestReport struct {
	Applied int `json:"applied"`
	Dropped int `json:"dropped"`
}

type IngestionUsecase interface {
	ApplyExtractedSkills(ctx context.Context, userID uuid.UUID, mentions []skill.Mention) (IngestReport, error)
	ImportJobs(ctx context.Context, imports []JobImport) (IngestReport, error)
}

// Ingestion is the write path for externally extracted data: resume skill
// mentions on the user side, posting requirement mentions on the job side.
// Extraction itself happens upstream; this layer only resolves names against
// the taxonomy and persists what survives.
type Ingestion struct {
	userSkills repository.UserSkillRepository
	jobs       repository.JobRepository
	jobSkills  repository.JobSkillRepository
	taxonomy   *TaxonomyProvider
	idf        *IDFProvider
	recompute  *Recompute
	logger     *zap.Logger
}

func NewIngestionUsecase(
	userSkills repository.UserSkillRepository,
	jobs repository.JobRepository,
	jobSkills repository.JobSkillRepository,
	taxonomy *TaxonomyProvider,
	idf *IDFProvider,
	recompute *Recompute,
	logger *zap.Logger,
) *Ingestion {
	return &Ingestion{
		userSkills: userSkills,
		jobs:       jobs,
		jobSkills:  jobSkills,
		taxonomy:   taxonomy,
		idf:        idf,
		recompute:  recompute,
		logger:     logger,
	}
}

// ApplyExtractedSkills merges resume-extracted mentions into the user's
// profile. Unknown skills are dropped, duplicates collapse onto the stronger
// claim, and a recompute is triggered once at the end.
func (u *Ingestion) ApplyExtractedSkills(ctx context.Context, userID uuid.UUID, mentions []skill.Mention) (IngestReport, error) {
	if userID == uuid.Nil {
		return IngestReport{}, ErrUnauthorized
	}
	if len(mentions) == 0 {
		return IngestReport{}, ErrInvalidInput
	}

	resolved := u.taxonomy.Get().Resolve(mentions, u.logger)
	report := IngestReport{Dropped: len(mentions) - len(resolved)}

	for _, r := range resolved {
		source := strings.TrimSpace(r.Source)
		if source == "" {
			source = "resume"
		}
		if _, err := u.userSkills.Upsert(ctx, repository.UserSkill{
			UserID:      userID,
			SkillID:     r.Skill.ID,
			Proficiency: r.Weight,
			Confidence:  r.Confidence,
			Source:      source,
		}); err != nil {
			return report, ErrInternal
		}
		report.Applied++
	}

	if report.Applied > 0 {
		if err := u.recompute.RecomputeUser(ctx, userID); err != nil {
			u.logger.Warn("recompute after skill intake failed",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	return report, nil
}

// ImportJobs upserts a batch of postings and their requirement sets. The IDF
// table is invalidated once per batch; rankings are not recomputed eagerly,
// they refresh on each user's next trigger.
func (u *Ingestion) ImportJobs(ctx context.Context, imports []JobImport) (IngestReport, error) {
	if len(imports) == 0 {
		return IngestReport{}, ErrInvalidInput
	}

	tax := u.taxonomy.Get()
	var report IngestReport
	for _, in := range imports {
		if strings.TrimSpace(in.ExternalID) == "" || strings.TrimSpace(in.Title) == "" {
			report.Dropped++
			continue
		}

		jobID, err := u.jobs.Upsert(ctx, repository.JobUpsert{
			ExternalID: strings.TrimSpace(in.ExternalID),
			Title:      strings.TrimSpace(in.Title),
			Company:    strings.TrimSpace(in.Company),
			Category:   strings.TrimSpace(in.Category),
			Location:   strings.TrimSpace(in.Location),
			SalaryMin:  in.SalaryMin,
			SalaryMax:  in.SalaryMax,
			PostedAt:   in.PostedAt,
		})
		if err != nil {
			return report, ErrInternal
		}

		resolved := tax.Resolve(in.Skills, u.logger)
		reqs := make([]repository.JobSkillRequirement, 0, len(resolved))
		for _, r := range resolved {
			reqs = append(reqs, repository.JobSkillRequirement{
				SkillID:    r.Skill.ID,
				Importance: r.Weight,
			})
		}
		if err := u.jobSkills.ReplaceForJob(ctx, jobID, reqs); err != nil {
			return report, ErrInternal
		}
		report.Applied++
	}

	if report.Applied > 0 {
		u.idf.Invalidate()
	}
	u.logger.Info("job import finished",
		zap.Int("applied", report.Applied), zap.Int("dropped", report.Dropped))
	return report, nil
}
