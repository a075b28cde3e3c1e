package usecase

import (
	"context"
	"strings"

	"skill-align/internal/domain/skill"
	"skill-align/internal/repository"
)

type SkillImportEntry struct {
	Name     string
	Type     string
	Category string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	ImportSkills(ctx context.Context, entries []SkillImportEntry) (int, error)
	ReloadTaxonomy(ctx context.Context) (int, error)
}

type SkillCatalog struct {
	repo     repository.SkillRepository
	taxonomy *TaxonomyProvider
}

func NewSkillUsecase(repo repository.SkillRepository, taxonomy *TaxonomyProvider) *SkillCatalog {
	return &SkillCatalog{repo: repo, taxonomy: taxonomy}
}

// ListSkills serves from the in-memory taxonomy; it never hits the database.
func (u *SkillCatalog) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	return u.taxonomy.Get().All(), nil
}

// ImportSkills upserts catalog entries and reloads the taxonomy once at the
// end so lookups see the whole batch atomically.
func (u *SkillCatalog) ImportSkills(ctx context.Context, entries []SkillImportEntry) (int, error) {
	if len(entries) == 0 {
		return 0, ErrInvalidInput
	}

	imported := 0
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if !skill.ValidName(name) {
			continue
		}
		st := skill.TypeTechnical
		if strings.EqualFold(strings.TrimSpace(e.Type), string(skill.TypeSoft)) {
			st = skill.TypeSoft
		}
		if _, err := u.repo.UpsertSkill(ctx, skill.Skill{
			Name:     name,
			Type:     st,
			Category: strings.TrimSpace(e.Category),
		}); err != nil {
			return imported, ErrInternal
		}
		imported++
	}

	if imported > 0 {
		if err := u.taxonomy.Reload(ctx); err != nil {
			return imported, ErrInternal
		}
	}
	return imported, nil
}

func (u *SkillCatalog) ReloadTaxonomy(ctx context.Context) (int, error) {
	if err := u.taxonomy.Reload(ctx); err != nil {
		return 0, ErrInternal
	}
	return u.taxonomy.Get().Len(), nil
}
