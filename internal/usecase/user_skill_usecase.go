package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skill-align/internal/repository"
)

type UpsertUserSkillInput struct {
	SkillID     uuid.UUID
	Proficiency float64
	Confidence  float64
	Source      string
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]repository.UserSkill, error)
	UpsertUserSkill(ctx context.Context, userID uuid.UUID, in UpsertUserSkillInput) (repository.UserSkill, error)
	DeleteUserSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type UserSkill struct {
	repo      repository.UserSkillRepository
	taxonomy  *TaxonomyProvider
	recompute *Recompute
	logger    *zap.Logger
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, taxonomy *TaxonomyProvider, recompute *Recompute, logger *zap.Logger) *UserSkill {
	return &UserSkill{repo: repo, taxonomy: taxonomy, recompute: recompute, logger: logger}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]repository.UserSkill, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// UpsertUserSkill writes one proficiency claim and triggers a recompute in
// the background. Last write wins on concurrent edits of the same skill.
func (u *UserSkill) UpsertUserSkill(ctx context.Context, userID uuid.UUID, in UpsertUserSkillInput) (repository.UserSkill, error) {
	if userID == uuid.Nil {
		return repository.UserSkill{}, ErrUnauthorized
	}
	if in.SkillID == uuid.Nil {
		return repository.UserSkill{}, ErrInvalidInput
	}
	if in.Proficiency < 0 || in.Proficiency > 1 || in.Confidence < 0 || in.Confidence > 1 {
		return repository.UserSkill{}, ErrInvalidInput
	}

	s, ok := u.taxonomy.Get().ByID(in.SkillID)
	if !ok {
		return repository.UserSkill{}, ErrSkillNotFound
	}

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = "manual"
	}

	saved, err := u.repo.Upsert(ctx, repository.UserSkill{
		UserID:      userID,
		SkillID:     in.SkillID,
		Proficiency: in.Proficiency,
		Confidence:  in.Confidence,
		Source:      source,
	})
	if err != nil {
		return repository.UserSkill{}, ErrInternal
	}
	saved.SkillName = s.Name

	u.triggerRecompute(userID)
	return saved, nil
}

func (u *UserSkill) DeleteUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := u.repo.Delete(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrUserSkillNotFound
		}
		return ErrInternal
	}

	u.triggerRecompute(userID)
	return nil
}

// triggerRecompute runs the pipeline detached from the request so a slow
// corpus sweep never delays the profile write response.
func (u *UserSkill) triggerRecompute(userID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := u.recompute.RecomputeUser(ctx, userID); err != nil && !errors.Is(err, ErrUserSkillProfileEmpty) {
			u.logger.Warn("background recompute failed",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
	}()
}
