package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skill-align/internal/config"
	"skill-align/internal/domain/alignment"
	"skill-align/internal/repository"
)

// IndustryAlignment is one industry's score for a user at snapshot time.
type IndustryAlignment struct {
	Industry   string    `json:"industry"`
	Score      float64   `json:"score"`
	SkillCount int       `json:"skill_count"`
	ComputedAt time.Time `json:"computed_at"`
}

// TimelinePoint pairs a snapshot with its delta against the previous one in
// the same industry.
type TimelinePoint struct {
	Industry   string    `json:"industry"`
	Score      float64   `json:"score"`
	Delta      float64   `json:"delta"`
	ComputedAt time.Time `json:"computed_at"`
}

type AlignmentUsecase interface {
	Snapshot(ctx context.Context, userID uuid.UUID, industries []string) ([]IndustryAlignment, error)
	Latest(ctx context.Context, userID uuid.UUID) ([]IndustryAlignment, error)
	Timeline(ctx context.Context, userID uuid.UUID, industries []string, from, to time.Time) ([]TimelinePoint, error)
}

type Alignment struct {
	users     repository.UserSkillRepository
	jobSkills repository.JobSkillRepository
	snapshots repository.AlignmentSnapshotRepository
	cache     MatchCache
	logger    *zap.Logger
	cfg       config.ScoringConfig
}

func NewAlignmentUsecase(
	users repository.UserSkillRepository,
	jobSkills repository.JobSkillRepository,
	snapshots repository.AlignmentSnapshotRepository,
	cache MatchCache,
	logger *zap.Logger,
	cfg config.ScoringConfig,
) *Alignment {
	return &Alignment{
		users:     users,
		jobSkills: jobSkills,
		snapshots: snapshots,
		cache:     cache,
		logger:    logger,
		cfg:       cfg,
	}
}

// Snapshot scores the user against each requested industry's averaged
// requirements and appends the results to the timeline. An empty industries
// slice snapshots every industry present in the corpus.
func (u *Alignment) Snapshot(ctx context.Context, userID uuid.UUID, industries []string) ([]IndustryAlignment, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	userSkills, err := u.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(userSkills) == 0 {
		return nil, ErrUserSkillProfileEmpty
	}

	proficiencies := make(map[uuid.UUID]alignment.Proficiency, len(userSkills))
	for _, s := range userSkills {
		proficiencies[s.SkillID] = alignment.Proficiency{Weight: s.Proficiency, Confidence: s.Confidence}
	}

	byIndustry, err := u.jobSkills.IndustryRequirements(ctx, industries)
	if err != nil {
		return nil, ErrInternal
	}

	now := time.Now().UTC()
	out := make([]IndustryAlignment, 0, len(byIndustry))
	rows := make([]repository.AlignmentSnapshot, 0, len(byIndustry))
	for industry, reqs := range byIndustry {
		aligned := make([]alignment.Requirement, 0, len(reqs))
		for _, r := range reqs {
			aligned = append(aligned, alignment.Requirement{
				SkillID:    r.SkillID,
				Importance: r.Importance,
				Technical:  r.Technical,
			})
		}
		score := alignment.Score(proficiencies, aligned, u.cfg.TechnicalMultiplier)

		out = append(out, IndustryAlignment{
			Industry:   industry,
			Score:      score,
			SkillCount: len(reqs),
			ComputedAt: now,
		})
		rows = append(rows, repository.AlignmentSnapshot{
			UserID:     userID,
			Industry:   industry,
			Score:      score,
			SkillCount: len(reqs),
			ComputedAt: now,
		})
	}

	if err := u.snapshots.Insert(ctx, rows); err != nil {
		u.logger.Error("persisting alignment snapshots failed",
			zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	_ = u.cache.Delete(ctx, alignmentKey(userID))

	sortAlignments(out)
	return out, nil
}

func (u *Alignment) Latest(ctx context.Context, userID uuid.UUID) ([]IndustryAlignment, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	var cached []IndustryAlignment
	if ok, _ := u.cache.GetJSON(ctx, alignmentKey(userID), &cached); ok {
		return cached, nil
	}

	rows, err := u.snapshots.LatestByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]IndustryAlignment, 0, len(rows))
	for _, r := range rows {
		out = append(out, IndustryAlignment{
			Industry:   r.Industry,
			Score:      r.Score,
			SkillCount: r.SkillCount,
			ComputedAt: r.ComputedAt,
		})
	}
	_ = u.cache.SetJSON(ctx, alignmentKey(userID), out, 0)
	return out, nil
}

// Timeline returns snapshots in chronological order per industry, each with
// its score delta against the previous point.
func (u *Alignment) Timeline(ctx context.Context, userID uuid.UUID, industries []string, from, to time.Time) ([]TimelinePoint, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, -6, 0)
	}
	if from.After(to) {
		return nil, ErrInvalidInput
	}

	rows, err := u.snapshots.ListByUserBetween(ctx, userID, industries, from, to)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]TimelinePoint, 0, len(rows))
	prev := make(map[string]float64, 8)
	for _, r := range rows {
		delta := 0.0
		if last, ok := prev[r.Industry]; ok {
			delta = r.Score - last
		}
		prev[r.Industry] = r.Score
		out = append(out, TimelinePoint{
			Industry:   r.Industry,
			Score:      r.Score,
			Delta:      delta,
			ComputedAt: r.ComputedAt,
		})
	}
	return out, nil
}

func sortAlignments(items []IndustryAlignment) {
	sort.Slice(items, func(i, j int) bool { return items[i].Industry < items[j].Industry })
}
